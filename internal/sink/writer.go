package sink

import (
	"context"
	"os"
)

// Writer abstracts filesystem specifics for rendered outputs so tests can
// capture documents without touching disk.
type Writer interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, data []byte) error
}

// NewOSWriter returns the default Writer backed by the local filesystem.
func NewOSWriter() Writer {
	return osWriter{}
}

type osWriter struct{}

func (osWriter) EnsureDir(_ context.Context, path string) error {
	return os.MkdirAll(path, 0o755)
}

func (osWriter) WriteFile(_ context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
