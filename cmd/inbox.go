package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List captured inputs awaiting processing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		inputs, err := env.Service.ListInputs(ctx)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			fmt.Println("inbox is empty")
			return nil
		}

		for _, inp := range inputs {
			preview := inp.Content
			if len(preview) > 60 {
				preview = preview[:60] + "..."
			}
			fmt.Printf("%s  [%s]  %s\n", inp.ID, inp.Type, preview)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inboxCmd)
}
