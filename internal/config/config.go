package config

// CurrentVersion is the only configuration schema version understood by this build.
const CurrentVersion = "1.0"

// Config is the docxbuilder configuration file.
type Config struct {
	Version   string          `yaml:"version"`
	Documents DocumentsConfig `yaml:"documents"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DocumentsConfig controls where documents are resolved.
type DocumentsConfig struct {
	// Root is the base directory for relative document paths and for
	// list_available_documents.
	Root string `yaml:"root"`
}

// ExportConfig configures the Pandoc bridge.
type ExportConfig struct {
	PandocPath string `yaml:"pandoc_path"`
	PDFEngine  string `yaml:"pdf_engine"`
	TOC        *bool  `yaml:"toc,omitempty"`
}

// IncludeTOC reports whether exports request a table of contents (default true).
func (e ExportConfig) IncludeTOC() bool {
	return e.TOC == nil || *e.TOC
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}
