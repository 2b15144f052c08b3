package config

import "strings"

// NormalizeResult collects non-fatal adjustments made while normalizing.
type NormalizeResult struct {
	Warnings []string
}

// NormalizeConfig case-folds enumerations and trims string fields. It runs
// before defaults are applied so defaults see canonical values.
func NormalizeConfig(c *Config) *NormalizeResult {
	res := &NormalizeResult{}
	if c == nil {
		return res
	}

	if raw := string(c.Logging.Level); raw != "" {
		if w := logLevelNormalizer.Warning("logging.level", raw); w != "" {
			res.Warnings = append(res.Warnings, w)
		}
		if !logLevelNormalizer.Known(raw) {
			res.Warnings = append(res.Warnings, "unknown logging.level '"+raw+"', using info")
		}
		c.Logging.Level = NormalizeLogLevel(raw)
	}
	if raw := string(c.Logging.Format); raw != "" {
		if w := logFormatNormalizer.Warning("logging.format", raw); w != "" {
			res.Warnings = append(res.Warnings, w)
		}
		if !logFormatNormalizer.Known(raw) {
			res.Warnings = append(res.Warnings, "unknown logging.format '"+raw+"', using text")
		}
		c.Logging.Format = NormalizeLogFormat(raw)
	}

	c.Version = strings.TrimSpace(c.Version)
	c.Documents.Root = strings.TrimSpace(c.Documents.Root)
	c.Export.PandocPath = strings.TrimSpace(c.Export.PandocPath)
	c.Export.PDFEngine = strings.TrimSpace(c.Export.PDFEngine)
	c.Metrics.Address = strings.TrimSpace(c.Metrics.Address)
	return res
}
