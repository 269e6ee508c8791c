package merge

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/condakit/envmerge/pkg/dag"
	"github.com/condakit/envmerge/pkg/envfile"
)

// ConflictError reports that two or more input files impose contradictory
// relative orderings of the same channel pair. From and To name the edge
// that could not be committed.
type ConflictError struct {
	From  string
	To    string
	cause error
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot satisfy channel priority %s -> %s", e.From, e.To)
}

// Unwrap returns the underlying graph error for errors.Is compatibility.
func (e *ConflictError) Unwrap() error { return e.cause }

// Options controls dependency merging.
type Options struct {
	// RemoveBuilds strips the trailing build string from fully pinned
	// specs ("name=version=build" becomes "name=version"). Useful when
	// merging files exported on different platforms.
	RemoveBuilds bool
}

// Names merges environment names by keeping the last non-blank one.
// Returns the empty string when no file names its environment.
func Names(names []string) string {
	merged := ""
	for _, name := range names {
		if name != "" {
			merged = name
		}
	}
	return merged
}

// Channels merges the channel lists of all input files into one priority
// order consistent with each of them.
//
// Each list is a chain of local preferences: every channel must appear
// before the one that follows it. The chains are accumulated as directed
// edges and linearized; when the same pair is ordered both ways by
// different files, Channels fails with a *ConflictError naming the pair
// and no partial ordering is returned.
//
// Nil or empty lists contribute nothing. If every list is empty the result
// is an empty slice, not an error.
func Channels(lists [][]string) ([]string, error) {
	g, err := ChannelGraph(lists)
	if err != nil {
		return nil, err
	}
	return g.TopologicalSort()
}

// ChannelGraph accumulates the channel lists into a priority DAG without
// linearizing it. Used by Channels and by the graph export command.
func ChannelGraph(lists [][]string) (*dag.DAG, error) {
	g := dag.New()
	for _, channels := range lists {
		for i, channel := range channels {
			g.AddNode(channel)
			if i > 0 {
				if err := g.AddEdge(channels[i-1], channel); err != nil {
					var cerr *dag.CycleError
					if errors.As(err, &cerr) {
						return nil, &ConflictError{From: cerr.From, To: cerr.To, cause: err}
					}
					return nil, err
				}
			}
		}
	}
	return g, nil
}

// Dependencies merges the dependency lists of all input files.
//
// Plain specs are deduplicated and sorted lexically. Pip blocks are
// collected across all files and merged into a single sorted pip entry
// appended after the plain specs. No attempt is made to reconcile version
// constraints: "numpy" and "numpy=1.21" are distinct entries and both
// survive the merge.
func Dependencies(lists [][]envfile.Dependency, opts Options) []envfile.Dependency {
	var specs []string
	var pips []string
	for _, deps := range lists {
		for _, dep := range deps {
			if dep.IsPip() {
				pips = append(pips, dep.Pip...)
				continue
			}
			spec := dep.Spec
			if opts.RemoveBuilds {
				spec = stripBuild(spec)
			}
			if !slices.Contains(specs, spec) {
				specs = append(specs, spec)
			}
		}
	}
	slices.Sort(specs)

	merged := make([]envfile.Dependency, 0, len(specs)+1)
	for _, spec := range specs {
		merged = append(merged, envfile.Dependency{Spec: spec})
	}
	if pips != nil {
		slices.Sort(pips)
		merged = append(merged, envfile.Dependency{Pip: pips})
	}
	return merged
}

// stripBuild removes the build string from a fully pinned spec.
// "certifi=2020.6.20=py38_0" becomes "certifi=2020.6.20"; specs without a
// build string ("xz", "xz=5.2.5") pass through unchanged.
func stripBuild(spec string) string {
	parts := strings.Split(spec, "=")
	if len(parts) < 3 {
		return spec
	}
	return parts[0] + "=" + parts[1]
}

// Environments merges the given environment definitions into one unified
// definition: last non-blank name, priority-consistent channels, and
// deduplicated sorted dependencies.
//
// A channel ordering conflict aborts the whole merge with a
// *ConflictError; nothing is partially merged.
func Environments(envs []*envfile.Environment, opts Options) (*envfile.Environment, error) {
	names := make([]string, len(envs))
	channelLists := make([][]string, len(envs))
	depLists := make([][]envfile.Dependency, len(envs))
	for i, env := range envs {
		if env == nil {
			continue
		}
		names[i] = env.Name
		channelLists[i] = env.Channels
		depLists[i] = env.Dependencies
	}

	channels, err := Channels(channelLists)
	if err != nil {
		return nil, err
	}

	merged := &envfile.Environment{Name: Names(names)}
	if len(channels) > 0 {
		merged.Channels = channels
	}
	if deps := Dependencies(depLists, opts); len(deps) > 0 {
		merged.Dependencies = deps
	}
	return merged, nil
}
