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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/saltwedge/InputParameters"
	"github.com/notargets/saltwedge/aquifer"
	"github.com/notargets/saltwedge/sampler"
	"github.com/notargets/saltwedge/scenario"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample the aquifer parameters and evaluate every run across the sea-level rise steps",
	Long: `
Draws a Latin hypercube design over (a, W, K, q0, z0), then for every sample evaluates
the flux-controlled and head-controlled systems at the base sea level and at each
sea-level rise step. The inland head held by the head-controlled system is requested
once per run (TargetMode prompt), taken from the input file (fixed) or from the
baseline evaluation (baseline).

saltwedge run -I input.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip      *InputParameters.InputParameters
			samples [][]float64
			out     = cmd.OutOrStdout()
		)
		if ip, err = processInput(cmd); err != nil {
			return
		}
		cfg := ip.ScenarioConfig()
		if samples, err = sampler.Generate(ip.SampleCount, ip.SamplerBounds(), seedSource(ip.Seed)); err != nil {
			return
		}
		printSamples(out, samples)
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		sum, err := scenario.Batch(ctx, cfg, toParams(samples), targetProvider(cmd, ip), out)
		fmt.Fprintf(cmd.ErrOrStderr(), "%d runs: %d completed, %d aborted, %d steps with errors\n",
			sum.Runs, sum.Completed, sum.Aborted, sum.FailedSteps)
		return
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	addInputFlags(RunCmd)
	RunCmd.Flags().StringP("targetMode", "t", "", "how the inland head target is obtained: prompt, fixed or baseline (overrides the input file)")
	RunCmd.Flags().Duration("timeout", 0, "how long to wait for a prompted target before aborting the run, 0 waits indefinitely")
	_ = viper.BindPFlag("targetMode", RunCmd.Flags().Lookup("targetMode"))
	_ = viper.BindPFlag("timeout", RunCmd.Flags().Lookup("timeout"))
}

func addInputFlags(c *cobra.Command) {
	c.Flags().StringP("inputConditionsFile", "I", "", "YAML file for the scenario design like:\n\t- SampleCount\n\t- Bounds\n\t- SLRSteps")
	c.Flags().Uint64P("seed", "s", 0, "seed for the sampling design, 0 keeps the input file's seed")
}

// processInput reads the input file over the defaults, applies flag overrides and validates the design
func processInput(cmd *cobra.Command) (ip *InputParameters.InputParameters, err error) {
	ip = InputParameters.NewInputParameters()
	file, _ := cmd.Flags().GetString("inputConditionsFile")
	if len(file) != 0 {
		var data []byte
		if data, err = os.ReadFile(file); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
	}
	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		ip.Seed = seed
	}
	if cmd.Flags().Lookup("targetMode") != nil {
		if mode := viper.GetString("targetMode"); mode != "" {
			ip.TargetMode = mode
		}
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	ip.Print(cmd.ErrOrStderr())
	return
}

func seedSource(seed uint64) sampler.Source {
	if seed == 0 {
		return nil
	}
	return sampler.Seeded(seed)
}

func toParams(samples [][]float64) (params []aquifer.Params) {
	params = make([]aquifer.Params, len(samples))
	for i, row := range samples {
		params[i] = sampler.ToParams(row, sampler.DefaultRounding())
	}
	return
}

func printSamples(w io.Writer, samples [][]float64) {
	m := mat.NewDense(len(samples), sampler.NumDims, nil)
	for i, row := range samples {
		m.SetRow(i, row)
	}
	fmt.Fprintf(w, "%v\n", sampler.DimNames)
	fmt.Fprintf(w, "%.6g\n\n", mat.Formatted(m, mat.Squeeze()))
}

func targetProvider(cmd *cobra.Command, ip *InputParameters.InputParameters) scenario.TargetProvider {
	prec := ip.ScenarioConfig().Precision
	switch ip.TargetMode {
	case InputParameters.TargetFixed:
		return scenario.FixedTargets(ip.Targets)
	case InputParameters.TargetBaseline:
		return scenario.BaselineTarget{Precision: prec}
	default:
		return &scenario.Prompt{
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
			Timeout:   viper.GetDuration("timeout"),
			Precision: prec,
		}
	}
}
