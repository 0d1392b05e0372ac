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
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/gospectral/InputParameters"
	"github.com/notargets/gospectral/interpolation"
	"github.com/notargets/gospectral/spectral"
)

// InterpolateCmd runs the interpolation pipeline on an analytic field
var InterpolateCmd = &cobra.Command{
	Use:   "interpolate",
	Short: "Interpolate an analytic field from elements to targets",
	Long: `
Samples a polynomial field on the collocation points of every element, sends
it through the interpolator and prints the values received by each target,

gospectral interpolate -I input.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			fileName string
			verbose  bool
			data     []byte
			ip       InputParameters.InterpolationParameters
			results  Results
		)
		if fileName, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		if verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
			return
		}
		if len(fileName) == 0 {
			exampleFile := `
########################################
Title: "Two elements"
Mesh: {Basis: legendre, Quadrature: gausslobatto, Extents: [5, 5]}
Elements:
  - {ID: 0, Lower: [-1, -1], Upper: [0, 1]}
  - {ID: 1, Lower: [0, -1], Upper: [1, 1]}
Targets:
  - Tag: diagonal
    LineSegment: {Begin: [-1, -1], End: [1, 1], NumberOfPoints: 5}
TemporalIDs: [0, 0.5]
Field:
  Terms: [{Coefficient: 1, Powers: [2, 1], TimePower: 1}]
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			return fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		}
		if data, err = os.ReadFile(fileName); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return
		}
		ip.Print()
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		if results, err = RunInterpolation(cmd.Context(), &ip, logger); err != nil {
			return
		}
		results.Print()
		return
	},
}

func init() {
	rootCmd.AddCommand(InterpolateCmd)
	InterpolateCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file with the mesh, elements, targets and field")
	InterpolateCmd.Flags().BoolP("verbose", "v", false, "debug logging of the interpolation actors")
}

// Results holds the values received by each target, by tag then temporal id
// then variable name.
type Results map[string]map[float64]map[string][]float64

func (r Results) Print() {
	for _, tag := range slices.Sorted(maps.Keys(r)) {
		for _, id := range slices.Sorted(maps.Keys(r[tag])) {
			for _, name := range slices.Sorted(maps.Keys(r[tag][id])) {
				fmt.Printf("Target[%s] t = %8.5f %s = %v\n", tag, id, name, r[tag][id][name])
			}
		}
	}
}

// RunInterpolation starts the actor system, asks every target for every
// temporal id, sends the sampled field of each element from its own
// goroutine and collects the results once the system is idle.
func RunInterpolation(ctx context.Context, ip *InputParameters.InterpolationParameters,
	logger *slog.Logger) (results Results, err error) {
	var (
		mesh    spectral.Mesh
		boxes   interpolation.BoxElements
		targets map[string]interpolation.TargetPoints
		s       *interpolation.System[float64]
		mu      sync.Mutex
	)
	if mesh, err = ip.BuildMesh(); err != nil {
		return
	}
	if boxes, err = ip.BuildElements(); err != nil {
		return
	}
	if targets, err = ip.BuildTargets(); err != nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	results = make(Results, len(targets))
	s, err = interpolation.NewSystem(interpolation.Config[float64]{
		Logger:  logger,
		Locator: boxes,
		Targets: targets,
		OnComplete: func(tag string, id float64, vars map[string][]float64) {
			mu.Lock()
			defer mu.Unlock()
			if results[tag] == nil {
				results[tag] = make(map[float64]map[string][]float64)
			}
			results[tag][id] = vars
		},
	})
	if err != nil {
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})
	for _, tag := range slices.Sorted(maps.Keys(targets)) {
		if err = s.AddTemporalIDs(tag, ip.TemporalIDs...); err != nil {
			s.Close()
			_ = g.Wait()
			return
		}
	}
	var senders errgroup.Group
	for _, b := range boxes {
		senders.Go(func() error {
			for _, id := range ip.TemporalIDs {
				data := sampleElement(mesh, b, func(x []float64) float64 {
					return ip.Field.Evaluate(x, id)
				})
				vd := interpolation.VolumeData{Mesh: mesh, Vars: map[string][]float64{ip.Field.Name: data}}
				if err := s.SendVolumeData(id, b.ID, vd); err != nil {
					return err
				}
			}
			return nil
		})
	}
	err = senders.Wait()
	if err == nil {
		err = s.Idle(gctx)
	}
	s.Close()
	if werr := g.Wait(); werr != nil {
		err = werr
	}
	if err != nil {
		return nil, err
	}
	for tag := range targets {
		if n := len(results[tag]); n != len(ip.TemporalIDs) {
			logger.Warn("target did not complete every temporal id", "tag", tag, "completed", n)
		}
	}
	return
}

// sampleElement evaluates f at the collocation points of mesh mapped onto
// box b, in mesh storage order.
func sampleElement(mesh spectral.Mesh, b interpolation.Box, f func(x []float64) float64) (data []float64) {
	var (
		dim    = mesh.Dim()
		coords = make([][]float64, dim)
		index  = make([]int, dim)
		x      = make([]float64, dim)
	)
	for d := 0; d < dim; d++ {
		xi := spectral.CollocationPoints(mesh.Slice(d)).Data()
		coords[d] = make([]float64, len(xi))
		for i, r := range xi {
			coords[d][i] = b.Lower[d] + 0.5*(r+1)*(b.Upper[d]-b.Lower[d])
		}
	}
	data = make([]float64, mesh.NumberOfGridPoints())
	for k := range data {
		for d := 0; d < dim; d++ {
			x[d] = coords[d][index[d]]
		}
		data[k] = f(x)
		for d := 0; d < dim; d++ {
			if index[d]++; index[d] < mesh.Extents(d) {
				break
			}
			index[d] = 0
		}
	}
	return
}
