package main

import (
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process INPUT_ID",
	Short: "Run the classification pipeline on a captured input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		run, err := env.Service.Process(ctx, args[0])
		if err != nil {
			return err
		}
		printRunSummary(run)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
