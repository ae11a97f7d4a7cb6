package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const helpDescription = `
Run hierarchical per-frame state trees from the command line.

The bundled platformer character is driven by a scripted input timeline:
  - run   steps the tree frame by frame and prints the active states
  - dot   renders the state tree as Graphviz DOT or SVG
  - states lists the registered state names
`

var exampleUsage = strings.TrimSpace(`
  xsm run --script jump.yaml --frames 300
  xsm run --config $HOME/.xsm/config.toml --watch
  xsm dot --frames 40 --svg -o tree.svg
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "xsm",
		Short:         "Run hierarchical per-frame state trees",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newRunCmd(), newDotCmd(), newStatesCmd())
	return root
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xsm:", err)
		os.Exit(1)
	}
}
