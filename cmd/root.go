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
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gospectral/spectral"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gospectral",
	Short: "Spectral collocation operators and interpolation to target points",
	Long: `
Computes collocation points, quadrature weights and the spectral operator
matrices for Legendre and Chebyshev bases, and interpolates element volume
data to line and torus targets.

gospectral points -n 5 --basis chebyshev --quadrature gauss`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gospectral.yaml)")
	rootCmd.PersistentFlags().StringP("basis", "b", "legendre", "basis: legendre or chebyshev")
	rootCmd.PersistentFlags().StringP("quadrature", "q", "gausslobatto", "quadrature: gauss or gausslobatto")
	_ = viper.BindPFlag("basis", rootCmd.PersistentFlags().Lookup("basis"))
	_ = viper.BindPFlag("quadrature", rootCmd.PersistentFlags().Lookup("quadrature"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".gospectral" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gospectral")
	}
	viper.SetEnvPrefix("GOSPECTRAL")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// configuredOperators returns the operators of the basis and quadrature
// selected by flags, environment or config file.
func configuredOperators() (o *spectral.Operators, err error) {
	var (
		b spectral.Basis
		q spectral.Quadrature
	)
	if b, err = spectral.ParseBasis(viper.GetString("basis")); err != nil {
		return
	}
	if q, err = spectral.ParseQuadrature(viper.GetString("quadrature")); err != nil {
		return
	}
	o = spectral.Default.Operators(b, q)
	return
}

// checkPoints turns an out of range point count from the command line into
// an error instead of a panic.
func checkPoints(o *spectral.Operators, n int) error {
	if n < o.MinimumNumberOfPoints() || n > o.MaximumNumberOfPoints() {
		return fmt.Errorf("%v supports between %d and %d points, have %d",
			o, o.MinimumNumberOfPoints(), o.MaximumNumberOfPoints(), n)
	}
	return nil
}
