package envfile

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Environment
		wantErr bool
	}{
		{
			name: "Full",
			input: `name: science
channels:
  - conda-forge
  - defaults
dependencies:
  - numpy=1.21
  - pandas
  - pip:
      - requests==2.28.0
      - flask
`,
			want: Environment{
				Name:     "science",
				Channels: []string{"conda-forge", "defaults"},
				Dependencies: []Dependency{
					{Spec: "numpy=1.21"},
					{Spec: "pandas"},
					{Pip: []string{"requests==2.28.0", "flask"}},
				},
			},
		},
		{
			name:  "NameOnly",
			input: "name: minimal\n",
			want:  Environment{Name: "minimal"},
		},
		{
			name:  "Empty",
			input: "",
			want:  Environment{},
		},
		{
			name:    "SequenceDependency",
			input:   "dependencies:\n  - [not, valid]\n",
			wantErr: true,
		},
		{
			name:    "MappingWithoutPip",
			input:   "dependencies:\n  - {conda: [nope]}\n",
			wantErr: true,
		},
		{
			name:    "MalformedYAML",
			input:   "name: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Read: %v", err)
			}

			if got.Name != tt.want.Name {
				t.Errorf("Name = %q, want %q", got.Name, tt.want.Name)
			}
			if !slices.Equal(got.Channels, tt.want.Channels) {
				t.Errorf("Channels = %v, want %v", got.Channels, tt.want.Channels)
			}
			if len(got.Dependencies) != len(tt.want.Dependencies) {
				t.Fatalf("Dependencies = %v, want %v", got.Dependencies, tt.want.Dependencies)
			}
			for i, dep := range tt.want.Dependencies {
				if got.Dependencies[i].Spec != dep.Spec || !slices.Equal(got.Dependencies[i].Pip, dep.Pip) {
					t.Errorf("dep[%d] = %+v, want %+v", i, got.Dependencies[i], dep)
				}
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	env := &Environment{
		Name:     "roundtrip",
		Channels: []string{"conda-forge", "defaults"},
		Dependencies: []Dependency{
			{Spec: "numpy"},
			{Pip: []string{"requests==2.28.0"}},
		},
	}

	var buf bytes.Buffer
	if err := Write(env, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Name != env.Name {
		t.Errorf("Name = %q, want %q", got.Name, env.Name)
	}
	if !slices.Equal(got.Channels, env.Channels) {
		t.Errorf("Channels = %v, want %v", got.Channels, env.Channels)
	}
	if len(got.Dependencies) != 2 || got.Dependencies[0].Spec != "numpy" {
		t.Fatalf("Dependencies = %v", got.Dependencies)
	}
	if !slices.Equal(got.Dependencies[1].Pip, []string{"requests==2.28.0"}) {
		t.Errorf("pip block = %v, want [requests==2.28.0]", got.Dependencies[1].Pip)
	}
}

func TestWriteOmitsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&Environment{Name: "lean"}, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "channels") {
		t.Errorf("output mentions channels for empty section:\n%s", out)
	}
	if strings.Contains(out, "dependencies") {
		t.Errorf("output mentions dependencies for empty section:\n%s", out)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "environment.yml")
	content := "name: fromfile\nchannels:\n  - defaults\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if env.Name != "fromfile" {
		t.Errorf("Name = %q, want fromfile", env.Name)
	}
}

func TestImportFileNotFound(t *testing.T) {
	if _, err := ImportFile("nonexistent.yml"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yml")

	env := &Environment{Name: "exported", Channels: []string{"defaults"}}
	if err := ExportFile(env, path); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}

	got, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if got.Name != "exported" || !slices.Equal(got.Channels, []string{"defaults"}) {
		t.Errorf("round-trip = %+v", got)
	}
}
