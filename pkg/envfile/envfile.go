package envfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment is a conda environment definition document. Empty sections
// are omitted on output, matching the behavior of hand-written files.
type Environment struct {
	Name         string       `yaml:"name,omitempty"`
	Channels     []string     `yaml:"channels,omitempty"`
	Dependencies []Dependency `yaml:"dependencies,omitempty"`
}

// Dependency is one entry of the dependencies list. Conda allows two shapes:
// a plain package spec string ("numpy=1.21") or a pip block
// ({pip: [requests==2.28]}). Exactly one of Spec and Pip is set.
type Dependency struct {
	Spec string   // plain conda package spec
	Pip  []string // pip requirements when this entry is a pip block
}

// IsPip reports whether the entry is a pip block rather than a plain spec.
func (d Dependency) IsPip() bool { return d.Pip != nil }

// UnmarshalYAML decodes either a scalar spec or a {pip: [...]} mapping.
func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&d.Spec)
	case yaml.MappingNode:
		var block struct {
			Pip []string `yaml:"pip"`
		}
		if err := value.Decode(&block); err != nil {
			return err
		}
		if block.Pip == nil {
			return fmt.Errorf("line %d: mapping dependency must have a pip key", value.Line)
		}
		d.Pip = block.Pip
		return nil
	default:
		return fmt.Errorf("line %d: dependency must be a string or a pip mapping", value.Line)
	}
}

// MarshalYAML emits a scalar for plain specs and a {pip: [...]} mapping
// for pip blocks.
func (d Dependency) MarshalYAML() (any, error) {
	if d.IsPip() {
		return map[string][]string{"pip": d.Pip}, nil
	}
	return d.Spec, nil
}

// Read decodes an environment definition from r.
// Read does not close r and returns decode errors unmodified apart from
// a "decode:" prefix for context.
func Read(r io.Reader) (*Environment, error) {
	var env Environment
	if err := yaml.NewDecoder(r).Decode(&env); err != nil {
		if err == io.EOF {
			// An empty file is a valid, empty definition.
			return &Environment{}, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &env, nil
}

// ImportFile reads the environment definition file at path.
func ImportFile(path string) (*Environment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	env, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}

// Write encodes the environment definition as YAML to w using two-space
// indentation. The output can be re-imported with [Read].
func Write(env *Environment, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportFile writes the environment definition to a YAML file at path.
// This is a convenience wrapper around [Write] for file-based output.
func ExportFile(env *Environment, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(env, f)
}
