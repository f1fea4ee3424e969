package locomotion

import "github.com/milk9111/locomotion/common"

//go:generate go run golang.org/x/tools/cmd/stringer -type=EventType -trimprefix=Event

// EventType identifies a controller event.
type EventType int

const (
	// EventJumpAnticipation fires when a ground jump is scheduled, at the
	// start of the squat window.
	EventJumpAnticipation EventType = iota
	// EventJumpExecuted fires when any jump actually applies velocity.
	EventJumpExecuted
	// EventLanded fires on touching down; Intensity is the fall speed and
	// Surface names what was hit.
	EventLanded
	// EventPoundStarted fires at the start of a ground pound windup.
	EventPoundStarted
	// EventPoundLanded fires when a ground pound dive reaches the ground.
	// It replaces the plain landed event for that touchdown.
	EventPoundLanded
	// EventLongJump fires when a long jump launches.
	EventLongJump
	// EventWallSlide fires on entering a wall slide; Direction is the wall
	// normal.
	EventWallSlide
	// EventWallJump fires when a wall jump launches; Direction is the
	// stored wall normal.
	EventWallJump
	// EventLedgeGrab fires on catching a ledge.
	EventLedgeGrab
	// EventWaterEnter fires once when swimming begins.
	EventWaterEnter
	// EventWaterExit fires once when swimming ends.
	EventWaterExit
	// EventSwimSplash fires on a fast water entry; Intensity is the entry
	// speed.
	EventSwimSplash
	// EventBoostTriggered fires when a boost pad applies its impulse.
	EventBoostTriggered
	// EventBoostActive fires every tick spent inside a boost zone.
	EventBoostActive
	// EventFootstep fires on the footstep cadence while moving on the
	// ground; Intensity is the horizontal speed.
	EventFootstep
)

// Event is one controller occurrence. Only the fields that make sense for
// the type are set; the rest stay zero.
type Event struct {
	Type      EventType
	Position  common.Vec3
	Direction common.Vec3
	Intensity float64
	Surface   string
}

// EventQueue is a simple FIFO queue of controller events.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
