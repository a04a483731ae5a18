package shaker

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-shaker/internal/logging"
	"github.com/goliatone/go-shaker/internal/source"
	"github.com/goliatone/go-shaker/internal/store"
)

// LoggingConfig selects the log level and output format for a run.
type LoggingConfig = logging.Config

// Config describes a full ingest-and-render run.
type Config struct {
	// Input is the source tree root holding one directory per ordinal.
	Input string
	// Output is the directory the rendered tree is written into. One
	// subdirectory is created per section slug.
	Output string
	// Cache locates the relational cache: ":memory:" or a SQLite file path.
	Cache string
	// Languages is the ordered language resolution chain for ingestion.
	Languages []string
	// Exclude lists source tree entries that are not content units.
	Exclude []string
	// Workers caps how many section trees render concurrently. The store is
	// fully populated before rendering starts, so concurrent walks only read.
	Workers int
	// HTMLPreview writes a goldmark-rendered .html next to every document.
	HTMLPreview bool

	Logging LoggingConfig
}

// DefaultConfig returns the baseline configuration: in-memory cache, English
// content, sequential rendering.
func DefaultConfig() Config {
	return Config{
		Cache:     store.MemorySentinel,
		Languages: []string{"en"},
		Exclude:   source.DefaultExclude,
		Workers:   1,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate ensures the configuration can drive a run.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Input, validation.Required),
		validation.Field(&c.Output, validation.Required),
		validation.Field(&c.Languages, validation.Required, validation.Each(validation.Required)),
		validation.Field(&c.Workers, validation.Required, validation.Min(1)),
	)
}
