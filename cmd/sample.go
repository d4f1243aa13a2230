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

	"github.com/notargets/saltwedge/sampler"
)

// SampleCmd represents the sample command
var SampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the sampled parameter sets without evaluating them",
	Long: `
Draws the Latin hypercube design of the input file and prints each parameter set at the
precision used for evaluation, numbered in run order.

saltwedge sample -I input.yaml -s 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := processInput(cmd)
		if err != nil {
			return err
		}
		samples, err := sampler.Generate(ip.SampleCount, ip.SamplerBounds(), seedSource(ip.Seed))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-5s %10s %10s %10s %10s %10s\n", "Run", "a", "W", "K", "q0", "z0")
		for i, p := range toParams(samples) {
			fmt.Fprintf(out, "%-5d %10.3f %10.4f %10.3f %10.3f %10.3f\n", i+1, p.A, p.W, p.K, p.Q0, p.Z0)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(SampleCmd)
	addInputFlags(SampleCmd)
}
