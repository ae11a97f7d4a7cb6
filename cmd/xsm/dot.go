package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anggasct/xsm/internal/cliconfig"
	"github.com/anggasct/xsm/pkg/log"
	"github.com/anggasct/xsm/visualization"
)

func newDotCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath, output, rankDir string
	var svg, lastStates bool

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Render the platformer tree as Graphviz DOT",
		Long:  "Render the platformer tree as Graphviz DOT. With --frames the script runs first so the live state is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			frames := 0
			if cmd.Flags().Changed("frames") {
				frames = cfg.Frames
			}

			game, err := newGame(&cfg, log.NewNoopLogger())
			if err != nil {
				return err
			}
			game.Run(frames, cfg.Delta, nil)

			opts := visualization.DefaultDOTOptions()
			opts.RankDirection = strings.ToUpper(rankDir)
			opts.ShowLastState = lastStates
			gen := visualization.ForMachine(game.Machine, opts)

			if output != "" && !svg {
				return gen.GenerateToFile(output)
			}

			var content string
			if svg {
				content, err = gen.GenerateSVG()
			} else {
				content, err = gen.Generate()
			}
			if err != nil {
				return err
			}
			if output != "" {
				return os.WriteFile(output, []byte(content), 0644)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	addMachineFlags(cmd.Flags(), &cfg, &cfgPath)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG with the Graphviz dot command")
	cmd.Flags().StringVar(&rankDir, "rankdir", "TB", "graph direction (TB, LR, BT, RL)")
	cmd.Flags().BoolVar(&lastStates, "last-states", false, "draw an edge from the state that requested each entry")
	return cmd
}

func newStatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List the registered state names of the platformer tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cliconfig.DefaultConfig()
			game, err := newGame(&cfg, log.NewNoopLogger())
			if err != nil {
				return err
			}
			for _, name := range game.Machine.StateNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
