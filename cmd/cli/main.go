package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	userID int64
)

var rootCmd = &cobra.Command{
	Use:   "hoopstats-cli",
	Short: "A CLI to interact with the hoopstats server",
	Long: `A command-line interface for making requests to the various endpoints
of the hoopstats application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().Int64Var(&userID, "user", 1, "The user id to act as")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
