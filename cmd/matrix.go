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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

type OperatorType uint8

const (
	Differentiation OperatorType = iota
	SpectralToGrid
	GridToSpectral
	LinearFilter
)

var (
	OperatorNames = map[string]OperatorType{
		"diff":   Differentiation,
		"s2g":    SpectralToGrid,
		"g2s":    GridToSpectral,
		"filter": LinearFilter,
	}
	OperatorPrintNames = []string{"Differentiation", "Spectral to Grid Points", "Grid Points to Spectral",
		"Linear Filter"}
)

func (ot OperatorType) String() string { return OperatorPrintNames[ot] }

func NewOperatorType(label string) (ot OperatorType, err error) {
	var ok bool
	if ot, ok = OperatorNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown operator %q, choose one of diff, s2g, g2s, filter", label)
	}
	return
}

// MatrixCmd prints one of the cached operator matrices
var MatrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print a spectral operator matrix",
	Long: `
Prints the differentiation (diff), spectral to grid points (s2g), grid points
to spectral (g2s) or linear filter (filter) matrix,

gospectral matrix -n 4 --operator diff`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			o     *spectral.Operators
			n     int
			label string
			ot    OperatorType
		)
		if o, err = configuredOperators(); err != nil {
			return
		}
		if n, err = cmd.Flags().GetInt("n"); err != nil {
			return
		}
		if err = checkPoints(o, n); err != nil {
			return
		}
		if label, err = cmd.Flags().GetString("operator"); err != nil {
			return
		}
		if ot, err = NewOperatorType(label); err != nil {
			return
		}
		fmt.Printf("%v %v matrix, %d points\n%v\n", o, ot, n, operatorMatrix(o, ot, n))
		return
	},
}

func init() {
	rootCmd.AddCommand(MatrixCmd)
	MatrixCmd.Flags().IntP("n", "n", 5, "number of collocation points")
	MatrixCmd.Flags().StringP("operator", "o", "diff", "operator: diff, s2g, g2s or filter")
}

func operatorMatrix(o *spectral.Operators, ot OperatorType, n int) utils.Matrix {
	switch ot {
	case Differentiation:
		return o.DifferentiationMatrix(n)
	case SpectralToGrid:
		return o.SpectralToGridPointsMatrix(n)
	case GridToSpectral:
		return o.GridPointsToSpectralMatrix(n)
	case LinearFilter:
		return o.LinearFilterMatrix(n)
	}
	panic(fmt.Errorf("missing operator case: %d", ot))
}
