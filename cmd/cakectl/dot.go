package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cakeflow/cake/pkg/builtins"
	"github.com/cakeflow/cake/pkg/registry"
	"github.com/cakeflow/cake/pkg/serialize"
)

func newDotCmd() *cobra.Command {
	var file string
	var svgOut string

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Export a serialized graph's structure as Graphviz DOT",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportDot(file, svgOut)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a TOML graph document (required)")
	cmd.Flags().StringVar(&svgOut, "svg", "", "also render an SVG to this path")
	cmd.MarkFlagRequired("file")
	return cmd
}

func exportDot(file, svgOut string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("cakectl: opening %s: %w", file, err)
	}
	defer f.Close()

	doc, err := serialize.Read(f)
	if err != nil {
		return fmt.Errorf("cakectl: reading %s: %w", file, err)
	}

	reg := registry.New()
	if err := builtins.RegisterArithmetic(reg); err != nil {
		return fmt.Errorf("cakectl: seeding registry: %w", err)
	}

	g, err := serialize.Import(doc, reg)
	if err != nil {
		return fmt.Errorf("cakectl: importing graph: %w", err)
	}

	fmt.Print(serialize.ToDOT(g))

	if svgOut == "" {
		return nil
	}
	svg, err := serialize.RenderSVG(g)
	if err != nil {
		return fmt.Errorf("cakectl: rendering SVG: %w", err)
	}
	if err := os.WriteFile(svgOut, svg, 0o644); err != nil {
		return fmt.Errorf("cakectl: writing %s: %w", svgOut, err)
	}
	return nil
}
