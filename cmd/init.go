package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mempocket/mempocket/internal/config"
	"github.com/mempocket/mempocket/internal/store"
)

var (
	initPath  string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the store directory layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		home := cfg.Home
		if initPath != "" {
			home = initPath
			if err := config.SetHome(initPath); err != nil {
				return err
			}
		}

		fsys := afero.NewOsFs()
		if _, err := fsys.Stat(home); err == nil && !initForce {
			return eris.New(fmt.Sprintf("already initialized at %s (use --force to reinitialize)", home))
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return eris.Wrap(err, "stat home")
		}

		st := store.NewFileStore(fsys, home)
		if err := st.Init(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("initialized mempocket at %s\n", home)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "", "store home directory (persisted to ~/.mempocketrc.yaml)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "reinitialize even if the store exists")
	rootCmd.AddCommand(initCmd)
}
