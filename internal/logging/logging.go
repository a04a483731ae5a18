package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Module namespaces used across the pipeline so log output can be filtered
// per stage.
const (
	RootModule   = "shaker"
	SourceModule = "shaker.source"
	StoreModule  = "shaker.store"
	SinkModule   = "shaker.sink"
)

// Config captures the logging options exposed to the CLI.
type Config struct {
	Level     string
	Format    string
	AddSource bool
}

// Provider hands out module-scoped child loggers backed by go-logger.
type Provider struct {
	root *glog.BaseLogger
}

// GetLogger returns the child logger for the given module namespace.
func (p *Provider) GetLogger(module string) glog.Logger {
	if p == nil || p.root == nil {
		return glog.NewLogger()
	}
	if strings.TrimSpace(module) == "" || module == RootModule {
		return p.root
	}
	return p.root.GetLogger(module)
}

// NewProvider builds the root logger for a run. Child loggers are obtained
// with GetLogger using the module constants above.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return ""
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}
