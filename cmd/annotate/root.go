package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/annotate"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	configFile string
	verbose    bool
	cfg        *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: viper.New()}
	root := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate screenshots from a replay script",
		Long: `annotate applies a YAML script of annotation steps (strokes, shapes,
blur regions, text, crops, undo and redo) to a screenshot and renders the
result, driving the same document model an interactive editor uses.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if a.verbose {
				annotate.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return loadConfig(a.cfg, a.configFile)
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./annotate.yaml if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log document diagnostics to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newRenderCmd(a))
	return root
}
