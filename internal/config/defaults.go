package config

// Default values applied when a field is left empty.
const (
	DefaultConfigPath     = "docxbuilder.yaml"
	DefaultDocumentsRoot  = "."
	DefaultPandocPath     = "pandoc"
	DefaultPDFEngine      = "xelatex"
	DefaultMetricsAddress = ":9090"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

type documentsDefaults struct{}

func (documentsDefaults) Domain() string { return "documents" }

func (documentsDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Documents.Root == "" {
		cfg.Documents.Root = DefaultDocumentsRoot
	}
}

type exportDefaults struct{}

func (exportDefaults) Domain() string { return "export" }

func (exportDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Export.PandocPath == "" {
		cfg.Export.PandocPath = DefaultPandocPath
	}
	if cfg.Export.PDFEngine == "" {
		cfg.Export.PDFEngine = DefaultPDFEngine
	}
	if cfg.Export.TOC == nil {
		toc := true
		cfg.Export.TOC = &toc
	}
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

type metricsDefaults struct{}

func (metricsDefaults) Domain() string { return "metrics" }

func (metricsDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = DefaultMetricsAddress
	}
}

var defaultAppliers = []DefaultApplier{
	documentsDefaults{},
	exportDefaults{},
	loggingDefaults{},
	metricsDefaults{},
}

// ApplyDefaults fills every empty field with its default.
func ApplyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
