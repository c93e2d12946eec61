package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/internal/store"
)

var (
	filterEntity  string
	filterContext string
)

func entryFilter() store.EntryFilter {
	return store.EntryFilter{
		Entity:  model.Entity(filterEntity),
		Context: model.Context(filterContext),
	}
}

func printEntries(entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Println("no entries")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  #%s @%s  %s\n", e.ID, e.Entity, e.Context, e.Title)
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, most recently updated first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		entries, err := env.Service.ListEntries(ctx, entryFilter())
		if err != nil {
			return err
		}
		printEntries(entries)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search entries by substring across title, content, and links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		entries, err := env.Service.SearchEntries(ctx, args[0], entryFilter())
		if err != nil {
			return err
		}
		printEntries(entries)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{listCmd, searchCmd} {
		c.Flags().StringVar(&filterEntity, "entity", "", "filter by entity: project, library, or people")
		c.Flags().StringVar(&filterContext, "context", "", "filter by context: work or life")
	}
	rootCmd.AddCommand(listCmd, searchCmd)
}
