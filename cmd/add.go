package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mempocket/mempocket/internal/model"
)

var (
	addFile    string
	addProcess bool
)

var addCmd = &cobra.Command{
	Use:   "add [TEXT]",
	Short: "Capture raw text or a file into the inbox",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}

		var inp *model.Input
		switch {
		case addFile != "":
			inp, err = env.Service.AddFile(ctx, addFile)
		case len(args) == 1 && args[0] != "":
			inp, err = env.Service.AddText(ctx, args[0], model.InputTypeText)
		default:
			return eris.New("add: provide TEXT or --file")
		}
		if err != nil {
			return err
		}
		fmt.Printf("captured %s\n", inp.ID)

		if !addProcess {
			fmt.Println("run 'mem process' to classify it, or use --process next time")
			return nil
		}

		run, err := env.Service.Process(ctx, inp.ID)
		if err != nil {
			return err
		}
		printRunSummary(run)
		return nil
	},
}

func printRunSummary(run *model.RunReport) {
	fmt.Printf("run %s\n", run.ID)
	for _, step := range run.Steps {
		fmt.Printf("  %-11s %s\n", step.Stage, step.Result)
	}
	for _, flag := range run.Flags {
		fmt.Printf("  flag: %s\n", flag)
	}
	if len(run.Proposals) > 0 {
		fmt.Printf("review with 'mem show %s'\n", run.Proposals[0])
	}
}

func init() {
	addCmd.Flags().StringVar(&addFile, "file", "", "capture a file instead of text")
	addCmd.Flags().BoolVar(&addProcess, "process", false, "run the pipeline immediately after capture")
	rootCmd.AddCommand(addCmd)
}
