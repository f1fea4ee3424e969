package stage

import (
	"testing"

	"github.com/milk9111/locomotion/common"
)

func TestLoadStage(t *testing.T) {
	t.Run("basin builds world and zones", func(t *testing.T) {
		s, err := LoadStage("basin.json")
		if err != nil {
			t.Fatalf("load basin: %v", err)
		}
		if s.Name != "basin" {
			t.Errorf("name = %q, want basin", s.Name)
		}

		w := s.BuildWorld()
		if got := len(w.Shapes()); got != len(s.Solids) {
			t.Errorf("world has %d shapes, want %d", got, len(s.Solids))
		}

		z := s.BuildZones()
		if len(z.Water) != 1 {
			t.Fatalf("water zones = %d, want 1", len(z.Water))
		}
		if z.Water[0].SurfaceHeight != z.Water[0].Bounds.Max.Y {
			t.Errorf("surface height = %v, want box top %v", z.Water[0].SurfaceHeight, z.Water[0].Bounds.Max.Y)
		}
		if z.Water[0].Current.X != 1.0 {
			t.Errorf("current X = %v, want 1", z.Water[0].Current.X)
		}
		if len(z.AirCurrents) != 1 || z.AirCurrents[0].VerticalForce != 45 {
			t.Errorf("air currents = %+v, want one with force 45", z.AirCurrents)
		}
		if len(z.Boosts) != 1 || z.Boosts[0].Cooldown != 2 {
			t.Errorf("boosts = %+v, want one with cooldown 2", z.Boosts)
		}
	})

	t.Run("towers keeps boost kick", func(t *testing.T) {
		s, err := LoadStage("towers.json")
		if err != nil {
			t.Fatalf("load towers: %v", err)
		}
		z := s.BuildZones()
		if len(z.Boosts) != 1 {
			t.Fatalf("boosts = %d, want 1", len(z.Boosts))
		}
		if z.Boosts[0].VerticalKick != 6 {
			t.Errorf("vertical kick = %v, want 6", z.Boosts[0].VerticalKick)
		}
		if got := s.SpawnPoint(); got != (common.Vec3{X: 0, Y: 2, Z: 8}) {
			t.Errorf("spawn = %v", got)
		}
	})

	t.Run("missing stage errors", func(t *testing.T) {
		if _, err := LoadStage("nope.json"); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestNames(t *testing.T) {
	names := Names()
	want := map[string]bool{"basin.json": false, "towers.json": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("missing embedded stage %s", n)
		}
	}
}
