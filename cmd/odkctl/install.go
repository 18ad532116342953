package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/incatools/odkctl/internal/catalog"
	"github.com/incatools/odkctl/internal/platform"
	"github.com/incatools/odkctl/internal/provision"
)

func newInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install TARGET_DIR",
		Short: "Install the native tool environment into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plat, err := platform.Resolve()
			if err != nil {
				return err
			}
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			env, err := provision.NewProvisioner(nil).Install(cmd.Context(), args[0], cat, plat)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %d tools under %s\n", len(env.Installed), env.Root)
			fmt.Fprintf(cmd.OutOrStdout(), "Activate with: . %s\n", env.Activation)
			return nil
		},
	}
}
