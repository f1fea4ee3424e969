package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/locomotion/scenario"
	"github.com/milk9111/locomotion/stage"
	"github.com/milk9111/locomotion/tuning"
)

func main() {
	log.SetFlags(0)

	var (
		drill     = flag.String("drill", "", "run one embedded drill by name (default: all)")
		script    = flag.String("script", "", "run a script file from disk instead of an embedded drill")
		stageName = flag.String("stage", "", "stage for -script (defaults to the drill registry)")
		tuneName  = flag.String("tuning", "", "tuning profile to run against (default: built-ins)")
	)
	flag.Parse()

	var tune *tuning.Tuning
	if *tuneName != "" {
		t, err := tuning.LoadTuning(withExt(*tuneName, ".yaml"))
		if err != nil {
			log.Fatalf("tuning %s: %v", *tuneName, err)
		}
		tune = &t
	}

	var results []scenario.Result
	switch {
	case *script != "":
		res, err := runFile(*script, *stageName, tune)
		if err != nil {
			log.Fatal(err)
		}
		results = append(results, res)
	case *drill != "":
		res, err := runEmbedded(withExt(*drill, ".tengo"), tune)
		if err != nil {
			log.Fatal(err)
		}
		results = append(results, res)
	default:
		for _, name := range scenario.DrillNames() {
			res, err := runEmbedded(name, tune)
			if err != nil {
				log.Fatal(err)
			}
			results = append(results, res)
		}
	}

	failed := 0
	for _, res := range results {
		report(res)
		if !res.Passed() {
			failed++
		}
	}
	if len(results) > 1 {
		fmt.Printf("%d/%d drills passed\n", len(results)-failed, len(results))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runEmbedded(name string, tune *tuning.Tuning) (scenario.Result, error) {
	src, err := scenario.LoadDrill(name)
	if err != nil {
		return scenario.Result{}, err
	}
	st, err := stage.LoadStage(scenario.StageFor(name))
	if err != nil {
		return scenario.Result{}, err
	}
	return scenario.NewRunner(st, tune).Run(name, src)
}

func runFile(path, stageName string, tune *tuning.Tuning) (scenario.Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return scenario.Result{}, err
	}
	if stageName == "" {
		stageName = scenario.StageFor(filepath.Base(path))
	}
	st, err := stage.LoadStage(withExt(stageName, ".json"))
	if err != nil {
		return scenario.Result{}, err
	}
	return scenario.NewRunner(st, tune).Run(filepath.Base(path), src)
}

func report(res scenario.Result) {
	if res.Passed() {
		fmt.Printf("PASS  %-24s %4d ticks\n", res.Name, res.Ticks)
		return
	}
	fmt.Printf("FAIL  %-24s %4d ticks\n", res.Name, res.Ticks)
	for _, f := range res.Failures {
		fmt.Printf("      %s\n", f)
	}
}

func withExt(name, ext string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ext
}
