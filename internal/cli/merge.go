package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/condakit/envmerge/pkg/envfile"
	"github.com/condakit/envmerge/pkg/merge"
)

// mergeOpts holds the command-line flags for the merge command.
type mergeOpts struct {
	output       string // output file path (stdout if empty)
	name         string // override the merged environment name
	removeBuilds bool   // strip build strings from fully pinned specs
}

// mergeCommand creates the merge command.
// Flag defaults come from the config file when present.
func (c *CLI) mergeCommand() *cobra.Command {
	opts := mergeOpts{
		output:       c.Config.Output,
		removeBuilds: c.Config.RemoveBuilds,
	}

	cmd := &cobra.Command{
		Use:   "merge <files...>",
		Short: "Merge environment files into one unified definition",
		Long: `Merge multiple conda environment files into one unified definition.

The environment name is taken from the last file that sets one. Channel
lists are combined into a single priority order consistent with every
input file; contradictory priorities abort the merge. Dependencies are
deduplicated and sorted, with pip requirements collected into a single
pip block at the end.

Examples:
  envmerge merge base.yml dev.yml                  # merged file on stdout
  envmerge merge base.yml dev.yml -o environment.yml
  envmerge merge --remove-builds linux.yml osx.yml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMerge(opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "name for the merged environment (overrides input files)")
	cmd.Flags().BoolVar(&opts.removeBuilds, "remove-builds", opts.removeBuilds, "strip build strings from fully pinned specs")

	return cmd
}

// runMerge reads the input files, merges them, and writes the unified
// definition to opts.output (or stdout).
func (c *CLI) runMerge(opts mergeOpts, files []string) error {
	prog := newProgress(c.Logger)

	envs, err := importAll(files, c.Logger)
	if err != nil {
		return err
	}

	merged, err := merge.Environments(envs, merge.Options{RemoveBuilds: opts.removeBuilds})
	if err != nil {
		var conflict *merge.ConflictError
		if errors.As(err, &conflict) {
			printError("Channel priorities conflict: %s before %s in one file, the reverse in another",
				conflict.From, conflict.To)
		}
		return err
	}

	if opts.name != "" {
		merged.Name = opts.name
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := envfile.Write(merged, out); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Merged %d files: %d channels, %d dependencies",
		len(files), len(merged.Channels), len(merged.Dependencies)))
	if opts.output != "" {
		printSuccess("Wrote %s", opts.output)
	}
	return nil
}

// importAll reads every environment file in order. Order matters: the
// merge rules for names and channels are position-sensitive.
func importAll(files []string, logger interface{ Debugf(string, ...any) }) ([]*envfile.Environment, error) {
	envs := make([]*envfile.Environment, 0, len(files))
	for _, path := range files {
		env, err := envfile.ImportFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debugf("Read %s: %d channels, %d dependencies", path, len(env.Channels), len(env.Dependencies))
		envs = append(envs, env)
	}
	return envs, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
