package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Document formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// CurrentAPIVersion is written by `metalca scenario` templates and assumed
// when a document omits apiVersion.
const CurrentAPIVersion = "1.0"

// supportedAPIVersions is the range of scenario document versions this
// build reads.
const supportedAPIVersions = "^1"

// ErrUnsupportedVersion is returned for documents outside supportedAPIVersions.
const ErrUnsupportedVersion = constError("unsupported scenario apiVersion")

// File is a scenario document holding one or more scenarios.
type File struct {
	APIVersion string `json:"apiVersion" yaml:"apiVersion"`
	Scenarios  []Spec `json:"scenarios"  yaml:"scenarios"`
}

// Named is a scenario with a stable display name, ready for evaluation.
type Named struct {
	Name string
	Spec Spec
}

// Named returns the scenarios of f with names filled in. Unnamed scenarios
// are called origin#N, counting from 1.
func (f *File) Named(origin string) []Named {
	out := make([]Named, 0, len(f.Scenarios))
	for i, s := range f.Scenarios {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", origin, i+1)
		}
		out = append(out, Named{Name: name, Spec: s})
	}
	return out
}

// Load reads a scenario document, picking the format from the extension
// (.json means JSON, anything else YAML).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scenario document. A document with a top-level
// "scenarios" key is a File; any other mapping is a single scenario. An
// empty format sniffs JSON from a leading '{'.
func Parse(data []byte, format string) (*File, error) {
	if format == "" {
		format = FormatYAML
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
			format = FormatJSON
		}
	}

	var header map[string]any
	if err := decode(data, format, &header); err != nil {
		return nil, fmt.Errorf("parsing scenario document: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
	}

	version, err := checkAPIVersion(header["apiVersion"])
	if err != nil {
		return nil, err
	}

	if _, ok := header["scenarios"]; ok {
		var f File
		if err = decode(data, format, &f); err != nil {
			return nil, fmt.Errorf("parsing scenario document: %w", err)
		}
		if len(f.Scenarios) == 0 {
			return nil, fmt.Errorf("%w: no scenarios", ErrInvalidScenario)
		}
		f.APIVersion = version
		return &f, nil
	}

	var s Spec
	if err = decode(data, format, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &File{APIVersion: version, Scenarios: []Spec{s}}, nil
}

func decode(data []byte, format string, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unknown scenario format %q", format)
	}
}

// checkAPIVersion validates raw against supportedAPIVersions. A missing
// version means CurrentAPIVersion.
func checkAPIVersion(raw any) (string, error) {
	if raw == nil {
		return CurrentAPIVersion, nil
	}
	version := strings.TrimPrefix(fmt.Sprint(raw), "v")

	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a version", ErrUnsupportedVersion, version)
	}
	constraint, err := semver.NewConstraint(supportedAPIVersions)
	if err != nil {
		return "", fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return "", fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedVersion, version, supportedAPIVersions)
	}
	return version, nil
}

// Marshal encodes f in format.
func Marshal(f *File, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	case FormatYAML:
		return yaml.Marshal(f)
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}
}
