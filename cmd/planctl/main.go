// Command planctl: офлайн-инструмент для планов: импорт SVG, группы стен, контуры и 3D-сцена.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"floorplan/internal/common/config"
	"floorplan/internal/common/logging"
	"floorplan/internal/planner/models"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOpts struct {
	verbose        bool
	tolerancesFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "planctl",
		Short:        "Floor plan geometry tools",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel.String()
			if opts.verbose {
				level = log.DebugLevel.String()
			}
			logger := logging.New(cmd.ErrOrStderr(), "planctl", level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.tolerancesFile, "tolerances", "", "TOML file with geometry tolerances")

	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newGroupsCmd(opts))
	root.AddCommand(newOutlineCmd(opts))
	root.AddCommand(newSceneCmd())

	return root
}

func (o *rootOpts) tolerances() (models.Tolerances, error) {
	return config.LoadTolerances(o.tolerancesFile)
}
