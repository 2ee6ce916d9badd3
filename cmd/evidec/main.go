package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"evidec/adapters/excel"
	"evidec/adapters/render"
	"evidec/app"
	"evidec/domain/bayes"
	"evidec/domain/decision"
	"evidec/domain/stats"
	"evidec/internal"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "evidec",
		Short: "Evidence-based A/B test evaluation",
	}
	rootCmd.AddCommand(newEvaluateCmd(), newSweepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEvaluateCmd() *cobra.Command {
	var (
		name, metric, goal, policy, format string
		file, controlCol, treatmentCol     string
		controlSuccess, controlTotal       int
		treatmentSuccess, treatmentTotal   int
		alpha, minLift, margin, tolerance  float64
		draws                              int
		seed                               int64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one experiment from counts or a data file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := app.EvaluationRequest{Name: name, Metric: metric}

			switch {
			case file != "":
				reader := excel.NewDataReader(file)
				control, treatment, err := reader.ReadArms(controlCol, treatmentCol)
				if err != nil {
					return err
				}
				req.Control = app.ArmData{Samples: control}
				req.Treatment = app.ArmData{Samples: treatment}
			case controlTotal > 0 && treatmentTotal > 0:
				req.Control = app.ArmData{Counts: &stats.Counts{Success: controlSuccess, Total: controlTotal}}
				req.Treatment = app.ArmData{Counts: &stats.Counts{Success: treatmentSuccess, Total: treatmentTotal}}
			default:
				return fmt.Errorf("provide either --file or all four count flags")
			}

			req.Policy = buildPolicy(policy, goal, alpha, minLift, margin, tolerance, draws, cmd.Flags().Changed("seed"), seed)

			logger := internal.NewDefaultLogger()
			eval := app.NewEvaluationService(logger)
			rep, err := eval.Evaluate(context.Background(), req)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			case "html":
				_, err := cmd.OutOrStdout().Write(render.HTML(rep))
				return err
			default:
				fmt.Fprintln(cmd.OutOrStdout(), render.Markdown(rep))
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "experiment", "experiment name")
	cmd.Flags().StringVar(&metric, "metric", "metric", "metric name")
	cmd.Flags().StringVar(&file, "file", "", "xlsx or csv file with raw observations")
	cmd.Flags().StringVar(&controlCol, "control-col", "control", "control column header")
	cmd.Flags().StringVar(&treatmentCol, "treatment-col", "treatment", "treatment column header")
	cmd.Flags().IntVar(&controlSuccess, "control-success", 0, "control arm successes")
	cmd.Flags().IntVar(&controlTotal, "control-total", 0, "control arm total")
	cmd.Flags().IntVar(&treatmentSuccess, "treatment-success", 0, "treatment arm successes")
	cmd.Flags().IntVar(&treatmentTotal, "treatment-total", 0, "treatment arm total")
	cmd.Flags().StringVar(&policy, "policy", app.PolicyThreshold, "threshold, non_inferiority or bayesian")
	cmd.Flags().StringVar(&goal, "goal", string(decision.GoalIncrease), "metric goal: increase or decrease")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level")
	cmd.Flags().Float64Var(&minLift, "min-lift", 0.0, "practical significance floor")
	cmd.Flags().Float64Var(&margin, "margin", 0.01, "non-inferiority margin")
	cmd.Flags().Float64Var(&tolerance, "tolerance", -0.005, "bayesian non-inferiority lift floor")
	cmd.Flags().IntVar(&draws, "draws", 20000, "posterior draw count")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible posterior draws")
	cmd.Flags().StringVar(&format, "format", "markdown", "output: markdown, json or html")

	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		file    string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a batch of experiments from a JSON request file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var reqs []app.EvaluationRequest
			if err := json.Unmarshal(raw, &reqs); err != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}

			logger := internal.NewDefaultLogger()
			eval := app.NewEvaluationService(logger)
			sweep := app.NewSweepService(eval, workers, logger)
			reps, err := sweep.EvaluateBatch(context.Background(), reqs)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reps)
		},
	}

	cmd.Flags().StringVar(&file, "file", "experiments.json", "JSON file with evaluation requests")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent evaluations")

	return cmd
}

func buildPolicy(kind, goal string, alpha, minLift, margin, tolerance float64, draws int, seedSet bool, seed int64) app.PolicyConfig {
	cfg := app.PolicyConfig{Kind: kind}
	switch kind {
	case app.PolicyNonInferiority:
		cfg.NonInferiority = &decision.NonInferiorityRule{
			Alpha:      alpha,
			Margin:     margin,
			MetricGoal: decision.Goal(goal),
		}
	case app.PolicyBayesian:
		rule := decision.DefaultBayesianRule()
		rule.MinLift = minLift
		cfg.Bayesian = &rule
		opts := bayes.DefaultBetaBinomialOptions()
		opts.NDraws = draws
		opts.Tolerance = tolerance
		if seedSet {
			opts.Seed = &seed
		}
		cfg.Sampling = &opts
	default:
		cfg.Threshold = &decision.ThresholdRule{
			Alpha:      alpha,
			MinLift:    minLift,
			MetricGoal: decision.Goal(goal),
		}
	}
	return cfg
}
