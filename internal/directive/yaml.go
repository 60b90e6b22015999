package directive

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpecFile represents the root of a YAML mirror specification file.
// It is a thin textual front end over the raw directive model: every
// entry is lowered to the same Arg lists the programmatic API accepts.
type SpecFile struct {
	// Version of the spec schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Converters declares converter capabilities available to `via`,
	// with their accepted source type and archived representation.
	Converters []ConverterDecl `yaml:"converters,omitempty"`

	// Mirrors lists the mirror type specifications.
	Mirrors []MirrorSpec `yaml:"mirrors"`
}

// ConverterDecl declares one converter capability for registry checks.
type ConverterDecl struct {
	// Name is the converter type reference (e.g., "pkg.AsOctal").
	Name string `yaml:"name"`
	// From is the source type the converter accepts, if declared.
	From string `yaml:"from,omitempty"`
	// Repr overrides the converter's archived representation type.
	// Defaults to "<Name>Repr" in the converter's package.
	Repr string `yaml:"repr,omitempty"`
}

// MirrorSpec is one mirror type entry in the spec file.
type MirrorSpec struct {
	// Mirror is the mirror type reference.
	Mirror string `yaml:"mirror"`
	// Remotes lists the remote types this mirror stands in for.
	Remotes []string `yaml:"remotes,omitempty"`
	// Fields lists per-field directives; fields without an entry get
	// the identity defaults.
	Fields []FieldEntry `yaml:"fields,omitempty"`
}

// FieldEntry is one field's directives in the spec file.
type FieldEntry struct {
	Name        string `yaml:"name"`
	From        string `yaml:"from,omitempty"`
	Via         string `yaml:"via,omitempty"`
	Getter      string `yaml:"getter,omitempty"`
	GetterOwned bool   `yaml:"getter_owned,omitempty"`
}

// LoadFile loads and parses a YAML spec file from the given path.
func LoadFile(path string) (*SpecFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a SpecFile.
func Parse(data []byte) (*SpecFile, error) {
	var sf SpecFile

	err := yaml.Unmarshal(data, &sf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse spec YAML: %w", err)
	}

	if sf.Version == "" {
		sf.Version = "1"
	}

	return &sf, nil
}

// Marshal serializes a SpecFile to YAML.
func Marshal(sf *SpecFile) ([]byte, error) {
	return yaml.Marshal(sf)
}

// Raw lowers one mirror entry into the raw directive model.
func (ms *MirrorSpec) Raw() *RawType {
	raw := &RawType{Mirror: ms.Mirror}

	if len(ms.Remotes) > 0 {
		raw.Args = append(raw.Args, Arg{Key: KeyRemotes, Vals: ms.Remotes})
	}

	for _, fe := range ms.Fields {
		rf := RawField{Name: fe.Name}

		if fe.From != "" {
			rf.Args = append(rf.Args, Arg{Key: KeyFrom, Vals: []string{fe.From}})
		}

		if fe.Via != "" {
			rf.Args = append(rf.Args, Arg{Key: KeyVia, Vals: []string{fe.Via}})
		}

		if fe.Getter != "" {
			rf.Args = append(rf.Args, Arg{Key: KeyGetter, Vals: []string{fe.Getter}})
		}

		if fe.GetterOwned {
			rf.Args = append(rf.Args, Arg{Key: KeyGetterOwned})
		}

		raw.Fields = append(raw.Fields, rf)
	}

	return raw
}
