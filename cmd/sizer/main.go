package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "sizer",
	Short: "Monte Carlo position sizing calculator",
	Long: `sizer evaluates fixed-fractional position sizing for a repeated
binary-outcome trading process. It finds the capital fraction that
maximizes long-run compounded growth purely through simulation, and
reports how that choice trades off against drawdown and ruin risk.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
