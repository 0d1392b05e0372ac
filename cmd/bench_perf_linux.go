//go:build linux

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
	perf "github.com/hodgesds/perf-utils"
)

// hardwareCounters runs work once under each counter.
func hardwareCounters(work func() error) (instructions, cycles uint64, err error) {
	var pv *perf.ProfileValue
	if pv, err = perf.CPUInstructions(work); err != nil {
		return
	}
	instructions = pv.Value
	if pv, err = perf.CPUCycles(work); err != nil {
		return
	}
	cycles = pv.Value
	return
}
