//go:build pprof

package main

import (
	"fmt"
	"os"
	"runtime/pprof"
)

// startProfiling writes a CPU profile to DISPLAYMODE_CPU_PROFILE, or
// cpu.pprof, until the returned func is called.
func startProfiling() func() {
	path := os.Getenv("DISPLAYMODE_CPU_PROFILE")
	if path == "" {
		path = "cpu.pprof"
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
		return func() {}
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
		_ = f.Close()
		return func() {}
	}

	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "could not close CPU profile: %v\n", err)
		}
	}
}
