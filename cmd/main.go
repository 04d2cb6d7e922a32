package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "invest-advisor",
	Short: "A CLI for managing the investment advisor services",
	Long:  `Investment advisor is a Telegram and REST service that forecasts prices, assesses risk and produces personalized recommendations.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
