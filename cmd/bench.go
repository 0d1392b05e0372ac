/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gospectral/spectral"
)

// BenchCmd times the generation of the whole operator library
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the generation of every cached spectral operator",
	Long: `
Generates every cached quantity of every basis and quadrature pair on a fresh
library, one goroutine per pair, and reports the elapsed time. Optionally
writes a cpu or memory profile to the current directory, or reads hardware
instruction and cycle counters (Linux only),

gospectral bench --profile cpu`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			profileMode string
			usePerf     bool
			ctx         = cmd.Context()
		)
		if profileMode, err = cmd.Flags().GetString("profile"); err != nil {
			return
		}
		if usePerf, err = cmd.Flags().GetBool("perf"); err != nil {
			return
		}
		switch profileMode {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile mode %q, choose cpu or mem", profileMode)
		}
		if ctx == nil {
			ctx = context.Background()
		}
		work := func() error {
			return spectral.NewLibrary().Warm(ctx)
		}
		if usePerf {
			var instructions, cycles uint64
			if instructions, cycles, err = hardwareCounters(work); err != nil {
				return
			}
			fmt.Printf("%d\t\t= CPU Instructions\n%d\t\t= CPU Cycles\n", instructions, cycles)
			return
		}
		var elapsed time.Duration
		if elapsed, err = timeWarm(work); err != nil {
			return
		}
		fmt.Printf("%v\t\t= Library generation time\n", elapsed)
		return
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().StringP("profile", "p", "", "write a profile: cpu or mem")
	BenchCmd.Flags().Bool("perf", false, "read hardware instruction and cycle counters")
}

func timeWarm(work func() error) (elapsed time.Duration, err error) {
	start := time.Now()
	err = work()
	elapsed = time.Since(start)
	return
}
