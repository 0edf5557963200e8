package sources

// Source is one named external feed endpoint. The list is loaded once at
// process start and immutable during a run.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// Rules holds the data-driven filtering configuration: provider names that
// must never be shown to readers, and attribution substrings stripped from
// titles and bodies.
type Rules struct {
	BlockedLabels []string `yaml:"blocked_labels"`
	StripPatterns []string `yaml:"strip_patterns"`
}

type File struct {
	Sources []Source `yaml:"sources"`
	Rules   Rules    `yaml:"rules"`
}
