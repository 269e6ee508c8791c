package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condakit/envmerge/pkg/merge"
	"github.com/condakit/envmerge/pkg/render"
)

// Output formats for the graph command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output string // output file path (stdout if empty)
	format string // "dot" or "svg"
}

// graphCommand creates the graph command, which exports the channel
// priority DAG accumulated from the input files. Useful for seeing why a
// merge conflict is a conflict.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph <files...>",
		Short: "Export the channel priority graph as DOT or SVG",
		Long: `Export the channel priority graph accumulated from the input files.

Each file's channel list contributes a chain of priority edges. The graph
shows every constraint the merge would have to satisfy, which makes
contradictory orderings easy to spot.

Examples:
  envmerge graph base.yml dev.yml                   # DOT on stdout
  envmerge graph base.yml dev.yml --format svg -o channels.svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot or svg")

	return cmd
}

// runGraph builds the channel DAG from the input files and writes it in
// the requested format.
func (c *CLI) runGraph(cmd *cobra.Command, opts graphOpts, files []string) error {
	envs, err := importAll(files, c.Logger)
	if err != nil {
		return err
	}

	lists := make([][]string, len(envs))
	for i, env := range envs {
		lists[i] = env.Channels
	}

	g, err := merge.ChannelGraph(lists)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Channel graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	dot := render.ToDOT(g)
	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		data, err = render.SVG(cmd.Context(), dot)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (available: %s, %s)", opts.format, formatDOT, formatSVG)
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote %s", opts.output)
	}
	return nil
}
