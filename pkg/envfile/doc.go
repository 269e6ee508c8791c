// Package envfile provides YAML import and export for conda environment
// definition files (environment.yml).
//
// # Overview
//
// An environment definition has up to three sections:
//
//	name: science
//	channels:
//	  - conda-forge
//	  - defaults
//	dependencies:
//	  - numpy=1.21
//	  - pandas
//	  - pip:
//	      - requests==2.28.0
//
// The dependencies list mixes two shapes: plain package spec strings and a
// pip block carrying pip requirements. [Dependency] models this union with
// custom YAML marshaling, so documents round-trip without losing the pip
// block.
//
// The package makes no attempt to interpret package specs or version
// constraints - entries are opaque strings to everything above it.
package envfile
