package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/born-ml/solvers/internal/adam"
	"github.com/born-ml/solvers/internal/config"
	"github.com/born-ml/solvers/internal/metrics"
	"github.com/born-ml/solvers/internal/problems"
)

func batchCmd(a *app) *cobra.Command {
	var (
		problemName string
		starts      int
		dim         int
		low, high   float64
		noise       float64
		seed        uint64
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Minimize a benchmark problem from many random starting points in parallel",
		Example: `  solvers batch --problem rosenbrock --starts 16 --workers 4 --alpha 0.01 --max-iter 5000
  solvers batch --problem sphere --dim 10 --noise 0.1 --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := problems.Lookup(problemName)
			if err != nil {
				return err
			}
			if p.Dim > 0 && !cmd.Flags().Changed("dim") {
				dim = p.Dim
			}
			if err := p.CheckDim(dim); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			workers, err := config.LoadWorkers(a.v)
			if err != nil {
				return err
			}
			points, err := problems.RandomStarts(starts, dim, low, high, seed)
			if err != nil {
				return err
			}

			batch := make([]adam.Problem, len(points))
			for i, x0 := range points {
				grad := adam.GradientFunc(p.Gradient)
				if noise > 0 {
					grad = problems.WithNoise(grad, noise, seed+uint64(i)+1)
				}
				batch[i] = adam.Problem{
					Objective: p.Objective,
					Gradient:  grad,
					X0:        x0,
					Config:    cfg,
				}
			}

			recorder := metrics.NewRecorder()
			registry := prometheus.NewRegistry()
			if err := registry.Register(recorder); err != nil {
				return err
			}
			reports, err := adam.RunAll(context.Background(), batch, workers,
				adam.WithLogger(a.logger), adam.WithRecorder(recorder))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 1, 1, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tSTATE\tN_ITER\tFX\tX")
			for i, r := range reports {
				fmt.Fprintf(w, "%d\t%s\t%d\t%g\t%s\n", i, r.State, r.Result.NIter(), r.Result.Fx(), r.Result.X())
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if showMetrics {
				fmt.Fprintln(a.out)
				return metrics.WriteText(a.out, registry)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&problemName, "problem", "rosenbrock", "benchmark problem to minimize")
	cmd.Flags().IntVar(&starts, "starts", 8, "number of random starting points")
	cmd.Flags().IntVar(&dim, "dim", 2, "dimension for problems defined in any dimension")
	cmd.Flags().Float64Var(&low, "low", -2, "lower bound of the starting point box")
	cmd.Flags().Float64Var(&high, "high", 2, "upper bound of the starting point box")
	cmd.Flags().Float64Var(&noise, "noise", 0, "standard deviation of Gaussian noise added to the gradient")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for starting points and gradient noise")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print Prometheus metrics after the runs")
	cobra.CheckErr(config.BindWorkerFlags(a.v, cmd.Flags()))

	return cmd
}
