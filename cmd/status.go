package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mempocket/mempocket/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the store: entry counts, pending proposals, inbox",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		status, err := env.Service.Status(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("home: %s\n", status.Home)
		fmt.Printf("entries: %d\n", status.TotalEntries)
		for _, e := range model.AllEntities() {
			fmt.Printf("  #%s: %d\n", e, status.ByEntity[e])
		}
		for _, c := range model.AllContexts() {
			fmt.Printf("  @%s: %d\n", c, status.ByContext[c])
		}
		fmt.Printf("pending proposals: %d\n", status.PendingProposals)
		fmt.Printf("inbox items: %d (%d unprocessed)\n", status.InboxItems, status.UnprocessedInputs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
