package cmd

import (
	"github.com/spf13/cobra"

	"github.com/born-ml/solvers/internal/adam"
	"github.com/born-ml/solvers/internal/config"
	"github.com/born-ml/solvers/internal/problems"
)

func minimizeCmd(a *app) *cobra.Command {
	var (
		problemName string
		x0          []float64
		noise       float64
		seed        uint64
		output      string
	)

	cmd := &cobra.Command{
		Use:   "minimize",
		Short: "Minimize a benchmark problem with Adam from one starting point",
		Example: `  solvers minimize --problem booth --x0 0 --x0 0 --alpha 0.1 --max-iter 2000
  solvers minimize --problem sphere --x0 3,-2,1 --noise 0.5 --seed 7 --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := problems.Lookup(problemName)
			if err != nil {
				return err
			}
			if err := p.CheckDim(len(x0)); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}

			grad := adam.GradientFunc(p.Gradient)
			if noise > 0 {
				grad = problems.WithNoise(grad, noise, seed)
			}
			report, err := adam.Minimize(p.Objective, grad, x0, adam.Args{}, cfg, adam.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return writeSummary(a.out, output, p.Name, report)
		},
	}

	cmd.Flags().StringVar(&problemName, "problem", "sphere", "benchmark problem to minimize")
	cmd.Flags().Float64SliceVar(&x0, "x0", nil, "starting point (repeat or comma-separate for each coordinate)")
	cmd.Flags().Float64Var(&noise, "noise", 0, "standard deviation of Gaussian noise added to the gradient")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for gradient noise")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cobra.CheckErr(cmd.MarkFlagRequired("x0"))

	return cmd
}
