package sources

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yml
var defaultSourcesYAML []byte

// Registry holds the static feed source list and the filtering rules.
type Registry struct {
	sources []Source
	rules   Rules
}

// Load reads the registry from the given YAML file. An empty path loads the
// embedded default source list.
func Load(path string) (*Registry, error) {
	data := defaultSourcesYAML
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sources file: %w", err)
		}
		data = fileData
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources YAML: %w", err)
	}

	if err := validate(&file); err != nil {
		return nil, fmt.Errorf("invalid sources configuration: %w", err)
	}

	slog.Debug("Source registry loaded", "sources", len(file.Sources),
		"blocked_labels", len(file.Rules.BlockedLabels), "strip_patterns", len(file.Rules.StripPatterns))

	return &Registry{sources: file.Sources, rules: file.Rules}, nil
}

func (r *Registry) Sources() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

func (r *Registry) SourceCount() int {
	return len(r.sources)
}

func (r *Registry) BlockedLabels() []string {
	return r.rules.BlockedLabels
}

func (r *Registry) StripPatterns() []string {
	return r.rules.StripPatterns
}

func validate(file *File) error {
	if len(file.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	seen := make(map[string]bool, len(file.Sources))
	for i, src := range file.Sources {
		if src.Name == "" {
			return fmt.Errorf("source at index %d has no name", i)
		}
		if src.URL == "" {
			return fmt.Errorf("source %q has no URL", src.Name)
		}
		if seen[src.Name] {
			return fmt.Errorf("duplicate source name: %s", src.Name)
		}
		seen[src.Name] = true
	}

	return nil
}
