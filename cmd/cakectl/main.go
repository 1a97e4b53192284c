// Command cakectl is a host of the dataflow engine's public API, not part
// of it: it loads a graph from a TOML file, resolves Function transforms
// against a registry seeded with the builtins library, computes a named
// sink, and prints the result. A second subcommand exports the graph's
// structure as Graphviz DOT (and, optionally, a rendered SVG) for human
// inspection of the DAG shape.
//
// Usage:
//
//	cakectl run -f graph.toml --sink 0
//	cakectl dot -f graph.toml [--svg out.svg]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cakectl",
		Short: "Load and run a serialized cake dataflow graph",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newDotCmd())
	return root
}
