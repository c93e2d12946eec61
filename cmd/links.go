package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linksCmd = &cobra.Command{
	Use:   "links ID_OR_TITLE",
	Short: "List the entries an entry links to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		entry, err := env.Service.GetEntry(ctx, args[0])
		if err != nil {
			return err
		}
		linked, err := env.Service.Links(ctx, entry.ID)
		if err != nil {
			return err
		}
		printEntries(linked)
		return nil
	},
}

var backlinksCmd = &cobra.Command{
	Use:   "backlinks ID_OR_TITLE",
	Short: "List the entries linking to an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		entry, err := env.Service.GetEntry(ctx, args[0])
		if err != nil {
			return err
		}
		linked, err := env.Service.Backlinks(ctx, entry.ID)
		if err != nil {
			return err
		}
		printEntries(linked)
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the link index from all entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		index, err := env.Service.Reindex(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("reindexed: %d entries with links, %d with backlinks\n",
			len(index.Links), len(index.Backlinks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linksCmd, backlinksCmd, reindexCmd)
}
