package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rejectReason string

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List proposals awaiting review",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		proposals, err := env.Service.PendingProposals(ctx)
		if err != nil {
			return err
		}
		if len(proposals) == 0 {
			fmt.Println("no pending proposals")
			return nil
		}
		for _, p := range proposals {
			fmt.Printf("%s  #%s @%s  %.0f%%  %s\n",
				p.ID, p.Suggested.Entity, p.Suggested.Context, p.Confidence*100, p.Suggested.Title)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show PROPOSAL_ID",
	Short: "Show a proposal in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		proposal, err := env.Service.GetProposal(ctx, args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(proposal)
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve PROPOSAL_ID",
	Short: "Approve a proposal and create the entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		entry, err := env.Service.Approve(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("approved: created entry %s\n", entry.ID)
		return nil
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject PROPOSAL_ID",
	Short: "Reject a proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		if err := env.Service.Reject(ctx, args[0], rejectReason); err != nil {
			return err
		}
		fmt.Printf("rejected %s\n", args[0])
		return nil
	},
}

func init() {
	rejectCmd.Flags().StringVar(&rejectReason, "reason", "", "why the proposal was rejected")
	rootCmd.AddCommand(pendingCmd, showCmd, approveCmd, rejectCmd)
}
