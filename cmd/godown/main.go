package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "godown",
	Short: "godown — product catalog backend",
	Long:  "godown serves a product catalog over REST and GraphQL, backed by MongoDB.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}
