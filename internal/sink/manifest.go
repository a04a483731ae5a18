package sink

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-shaker/catalog"
)

const (
	manifestFileName    = ".shaker-manifest.json"
	manifestFileVersion = 1
)

// runManifest records what a render run produced so downstream tooling can
// diff outputs between runs.
type runManifest struct {
	Version     int                         `json:"version"`
	RunID       string                      `json:"run_id"`
	GeneratedAt time.Time                   `json:"generated_at"`
	Documents   map[string]manifestDocument `json:"documents"`
}

type manifestDocument struct {
	Ordinal  string `json:"ordinal"`
	Slug     string `json:"slug"`
	Output   string `json:"output"`
	Checksum string `json:"checksum"`
}

// track records a rendered document for the run manifest. Safe for
// concurrent section walks.
func (r *Renderer) track(record *catalog.Record, path string, doc []byte) {
	sum := sha256.Sum256(doc)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[path] = manifestDocument{
		Ordinal:  record.Ordinal,
		Slug:     record.Slug,
		Output:   path,
		Checksum: hex.EncodeToString(sum[:]),
	}
}

// WriteManifest persists the run manifest at the output root. Call it once,
// after every section tree has been written.
func (r *Renderer) WriteManifest(ctx context.Context, outputDir string) error {
	r.mu.Lock()
	manifest := runManifest{
		Version:     manifestFileVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Documents:   make(map[string]manifestDocument, len(r.documents)),
	}
	for path, doc := range r.documents {
		manifest.Documents[path] = doc
	}
	r.mu.Unlock()

	blob, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("sink: marshal manifest: %w", err)
	}

	path := filepath.Join(outputDir, manifestFileName)
	if err := r.writer.WriteFile(ctx, path, blob); err != nil {
		return fmt.Errorf("sink: write manifest: %w", err)
	}
	return nil
}
