package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "sebnf",
	Short:         "sebnf analyzes an EBNF application data model and emits backend-ready specification files",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(describeCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
