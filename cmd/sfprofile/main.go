package main

import (
	"os"
)

const version = "0.1.0"

func main() {
	rootCmd := newRootCmd()

	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
