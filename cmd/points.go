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

	"github.com/spf13/cobra"

	"github.com/notargets/gospectral/spectral"
)

// PointsCmd prints collocation points and quadrature weights
var PointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Collocation points and quadrature weights",
	Long: `
Prints the collocation points, quadrature weights and barycentric weights of
the configured basis and quadrature,

gospectral points -n 6 -b legendre -q gauss`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			o *spectral.Operators
			n int
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
		printPoints(o, n)
		return
	},
}

func init() {
	rootCmd.AddCommand(PointsCmd)
	PointsCmd.Flags().IntP("n", "n", 5, "number of collocation points")
}

func printPoints(o *spectral.Operators, n int) {
	var (
		x    = o.CollocationPoints(n)
		w    = o.QuadratureWeights(n)
		bary = o.BarycentricWeights(n)
	)
	fmt.Printf("%v, %d points\n", o, n)
	fmt.Printf("%4s %24s %24s %24s\n", "j", "x_j", "w_j", "barycentric")
	for j := 0; j < n; j++ {
		fmt.Printf("%4d %24.16e %24.16e %24.16e\n", j, x.AtVec(j), w.AtVec(j), bary.AtVec(j))
	}
	fmt.Printf("sum(w) = %.16e\n", w.Sum())
}
