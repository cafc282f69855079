package main

import (
	"fmt"
	"os"

	"github.com/GeorgeHategan/position-sizing-calculator/internal/config"
	"github.com/GeorgeHategan/position-sizing-calculator/internal/logger"
	"github.com/GeorgeHategan/position-sizing-calculator/internal/montecarlo"
	"github.com/GeorgeHategan/position-sizing-calculator/internal/report"
	"github.com/spf13/cobra"
)

var (
	simProb       float64
	simTrades     int
	simTrials     int
	simCapital    float64
	simRiskReward float64
	simSizes      []float64
	simSeed       int64
	simWorkers    int
	simFormat     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Monte Carlo position sizing simulation",
	Long: `Run repeated randomized trials across every candidate position size
and report which size performs best under each selection criterion.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&simProb, "prob", 0, "win probability in (0, 1)")
	simulateCmd.Flags().IntVar(&simTrades, "trades", 0, "trades per trial")
	simulateCmd.Flags().IntVar(&simTrials, "trials", 0, "number of Monte Carlo trials")
	simulateCmd.Flags().Float64Var(&simCapital, "capital", 0, "initial capital")
	simulateCmd.Flags().Float64Var(&simRiskReward, "risk-reward", 0, "risk/reward ratio")
	simulateCmd.Flags().Float64SliceVar(&simSizes, "sizes", nil, "candidate position sizes, percent")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 for time-based)")
	simulateCmd.Flags().IntVar(&simWorkers, "workers", 0, "parallel workers (0 for all CPUs)")
	simulateCmd.Flags().StringVar(&simFormat, "format", "", "report format: text or markdown")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Must(debug)
	defer log.Sync()

	runner := montecarlo.NewRunner(cfg.Simulation.Params(), log)
	res, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	switch cfg.Report.Format {
	case "markdown":
		fmt.Fprint(os.Stdout, report.RenderMarkdown(res, cfg.Report.TableStep))
	default:
		report.Render(os.Stdout, res, cfg.Report.TableStep)
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Defaults(), nil
	}
	return config.Load(cfgFile)
}

// applyOverrides copies any explicitly-set flags over the loaded config.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("prob") {
		cfg.Simulation.WinProbability = simProb
	}
	if flags.Changed("trades") {
		cfg.Simulation.Trades = simTrades
	}
	if flags.Changed("trials") {
		cfg.Simulation.Trials = simTrials
	}
	if flags.Changed("capital") {
		cfg.Simulation.InitialCapital = simCapital
	}
	if flags.Changed("risk-reward") {
		cfg.Simulation.RiskReward = simRiskReward
	}
	if flags.Changed("sizes") {
		cfg.Simulation.Sizes = simSizes
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = simSeed
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers = simWorkers
	}
	if flags.Changed("format") {
		cfg.Report.Format = simFormat
	}
}
