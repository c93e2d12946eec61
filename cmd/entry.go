package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mempocket/mempocket/internal/model"
)

var (
	newEntity  string
	newContext string
	newContent string
)

var newCmd = &cobra.Command{
	Use:   "new TITLE",
	Short: "Manually create an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		entry, err := env.Service.CreateEntry(ctx, args[0],
			model.Entity(newEntity), model.Context(newContext), newContent)
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", entry.ID)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get ID_OR_TITLE",
	Short: "Show an entry by id or title",
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
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	},
}

var appendCmd = &cobra.Command{
	Use:   "append ID CONTENT",
	Short: "Append content to an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		entry, err := env.Service.AppendEntry(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("appended to %s\n", entry.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit ID CONTENT",
	Short: "Replace an entry's content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		entry, err := env.Service.UpdateEntry(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", entry.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		if err := env.Service.DeleteEntry(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newEntity, "entity", "", "entity category: project, library, or people")
	newCmd.Flags().StringVar(&newContext, "context", "", "context category: work or life")
	newCmd.Flags().StringVar(&newContent, "content", "", "entry content")
	_ = newCmd.MarkFlagRequired("entity")
	_ = newCmd.MarkFlagRequired("context")

	rootCmd.AddCommand(newCmd, getCmd, appendCmd, editCmd, deleteCmd)
}
