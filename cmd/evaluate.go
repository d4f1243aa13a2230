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

	"github.com/notargets/saltwedge/aquifer"
	"github.com/notargets/saltwedge/scenario"
)

// EvaluateCmd represents the evaluate command
var EvaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate the flux-controlled model for a single parameter set",
	Long: `
Computes the toe of the seawater wedge, the water table at the toe and the inland head
for one parameter set.

saltwedge evaluate --a 40 --W 0.00015 --K 40 --q0 0.9 --z0 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, g := modelFlags(cmd)
		o := scenario.Evaluate(p, g)
		scenario.WriteOutcome(cmd.OutOrStdout(), o, aquifer.DefaultPrecision(), g)
		return o.Err
	},
}

// DischargeCmd represents the discharge command
var DischargeCmd = &cobra.Command{
	Use:   "discharge",
	Short: "Solve the seaward discharge that holds a target inland head",
	Long: `
Inverts the model of a head-controlled system: finds q0 such that the inland head equals
--target, then evaluates the model with it. The --q0 flag is ignored.

saltwedge discharge --a 40 --W 0.00015 --K 40 --z0 10.25 --target 3.323`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			p, g      = modelFlags(cmd)
			target, _ = cmd.Flags().GetFloat64("target")
			prec      = aquifer.DefaultPrecision()
			s         = aquifer.DefaultSolverSettings()
			out       = cmd.OutOrStdout()
		)
		s.InitialGuess, _ = cmd.Flags().GetFloat64("initialGuess")
		q0, err := aquifer.SolveDischarge(p, g, target, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "q0: %.*fm^2/day\n", prec.Discharge, prec.RoundDischarge(q0))
		o := scenario.Evaluate(p.WithQ0(q0), g)
		scenario.WriteOutcome(out, o, prec, g)
		return o.Err
	},
}

func init() {
	rootCmd.AddCommand(EvaluateCmd)
	rootCmd.AddCommand(DischargeCmd)
	for _, c := range []*cobra.Command{EvaluateCmd, DischargeCmd} {
		g := aquifer.DefaultGeometry()
		c.Flags().Float64("a", 40, "density ratio")
		c.Flags().Float64("W", 0.00015, "uniform net recharge (m/day)")
		c.Flags().Float64("K", 40, "hydraulic conductivity (m/day)")
		c.Flags().Float64("q0", 0.9, "discharge to the sea per unit length of coastline (m^2/day)")
		c.Flags().Float64("z0", 10, "depth of the aquifer bottom below mean sea level (m)")
		c.Flags().Float64("length", g.Length, "aquifer length (m)")
		c.Flags().Float64("inland", g.Inland, "distance of the inland head from the coast (m)")
	}
	DischargeCmd.Flags().Float64("target", 0, "inland head to hold (m)")
	DischargeCmd.Flags().Float64("initialGuess", aquifer.DefaultSolverSettings().InitialGuess, "starting discharge for the solver")
	_ = DischargeCmd.MarkFlagRequired("target")
}

func modelFlags(cmd *cobra.Command) (p aquifer.Params, g aquifer.Geometry) {
	f := cmd.Flags()
	p.A, _ = f.GetFloat64("a")
	p.W, _ = f.GetFloat64("W")
	p.K, _ = f.GetFloat64("K")
	p.Q0, _ = f.GetFloat64("q0")
	p.Z0, _ = f.GetFloat64("z0")
	g.Length, _ = f.GetFloat64("length")
	g.Inland, _ = f.GetFloat64("inland")
	return
}
