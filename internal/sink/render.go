package sink

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-shaker/catalog"
	"github.com/goliatone/go-shaker/internal/store"
)

const (
	indexFileName     = "index.md"
	metadataDelimiter = "---\n"
)

// RendererConfig encapsulates the collaborators the renderer depends on.
type RendererConfig struct {
	Store  *store.Store
	Writer Writer
	Logger glog.Logger
	// HTMLPreview additionally writes a goldmark-rendered .html next to
	// every Markdown document.
	HTMLPreview bool
}

// Renderer walks the record store from each section root and produces one
// cross-linked Markdown document per record. The store is read-only by the
// time rendering starts, so a single renderer can serve concurrent section
// walks; the manifest collection is the only shared mutable state.
type Renderer struct {
	store       *store.Store
	writer      Writer
	logger      glog.Logger
	htmlPreview bool

	mu        sync.Mutex
	documents map[string]manifestDocument
}

// NewRenderer builds a Renderer from the supplied configuration.
func NewRenderer(cfg RendererConfig) *Renderer {
	writer := cfg.Writer
	if writer == nil {
		writer = NewOSWriter()
	}
	return &Renderer{
		store:       cfg.Store,
		writer:      writer,
		logger:      cfg.Logger,
		htmlPreview: cfg.HTMLPreview,
		documents:   map[string]manifestDocument{},
	}
}

// Build renders a single record into its document and returns the record's
// children so callers can continue the walk. A record with children gets a
// table of contents; a childless record gets prev/next navigation.
func (r *Renderer) Build(ctx context.Context, record *catalog.Record) ([]byte, []*catalog.Record, error) {
	children, err := r.store.ChildrenOf(ctx, record.Ordinal)
	if err != nil {
		return nil, nil, err
	}

	if len(children) == 0 {
		prev, next, err := r.store.SiblingsOf(ctx, record.Ordinal)
		if err != nil {
			return nil, nil, err
		}
		doc, err := buildLeaf(record, prev, next)
		return doc, children, err
	}

	doc, err := buildNode(record, children)
	return doc, children, err
}

// WriteTree renders the record into index.md under dir, then renders every
// descendant into the same directory via WriteNode. Used for section roots.
func (r *Renderer) WriteTree(ctx context.Context, record *catalog.Record, dir string) error {
	doc, children, err := r.Build(ctx, record)
	if err != nil {
		return err
	}
	if err := r.emit(ctx, record, filepath.Join(dir, indexFileName), doc); err != nil {
		return err
	}

	for _, child := range children {
		if err := r.WriteNode(ctx, child, dir); err != nil {
			return err
		}
	}
	return nil
}

// WriteNode renders the record into <slug>.md under dir and recurses into its
// children in the same directory: everything below a section root is
// deliberately flattened into sibling files distinguished by slug.
func (r *Renderer) WriteNode(ctx context.Context, record *catalog.Record, dir string) error {
	doc, children, err := r.Build(ctx, record)
	if err != nil {
		return err
	}
	if err := r.emit(ctx, record, filepath.Join(dir, record.Slug+".md"), doc); err != nil {
		return err
	}

	for _, child := range children {
		if err := r.WriteNode(ctx, child, dir); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) emit(ctx context.Context, record *catalog.Record, path string, doc []byte) error {
	if err := r.writer.WriteFile(ctx, path, doc); err != nil {
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	r.track(record, path, doc)

	if r.logger != nil {
		r.logger.Debug("rendered document", "ordinal", record.Ordinal, "path", path)
	}

	if !r.htmlPreview {
		return nil
	}
	preview, err := renderHTML(documentBody(doc))
	if err != nil {
		return fmt.Errorf("sink: preview %s: %w", path, err)
	}
	previewPath := strings.TrimSuffix(path, ".md") + ".html"
	if err := r.writer.WriteFile(ctx, previewPath, preview); err != nil {
		return fmt.Errorf("sink: write %s: %w", previewPath, err)
	}
	return nil
}

// documentBody strips the metadata header so previews start at the title.
func documentBody(doc []byte) []byte {
	if idx := bytes.Index(doc, []byte(metadataDelimiter)); idx >= 0 {
		return doc[idx+len(metadataDelimiter):]
	}
	return doc
}

// buildMetadata serializes the record's metadata header: key/value lines
// terminated by a line containing exactly "---". The content body is excluded
// and re-emitted separately.
func buildMetadata(b *bytes.Buffer, record *catalog.Record) error {
	blob, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("sink: marshal metadata for %q: %w", record.Ordinal, err)
	}
	b.Write(blob)
	b.WriteString(metadataDelimiter)
	return nil
}

// buildNode renders an internal node: heading, body, then a table of
// contents linking every direct child in ordinal order.
func buildNode(record *catalog.Record, children []*catalog.Record) ([]byte, error) {
	var b bytes.Buffer
	if err := buildMetadata(&b, record); err != nil {
		return nil, err
	}

	fmt.Fprintf(&b, "# %s\n\n", record.Title)
	b.WriteString(record.Content)
	b.WriteString("\n\n")
	b.WriteString("## Table of contents\n\n")

	for _, child := range children {
		fmt.Fprintf(&b, "- [%s](./%s.md)\n", child.Title, child.Slug)
	}

	return b.Bytes(), nil
}

// buildLeaf renders a childless record: heading, body, then prev/next
// navigation. Either bullet is omitted when the sibling is absent; the
// section header stays even when both are.
func buildLeaf(record *catalog.Record, prev, next *catalog.Record) ([]byte, error) {
	var b bytes.Buffer
	if err := buildMetadata(&b, record); err != nil {
		return nil, err
	}

	var nav []string
	if prev != nil {
		nav = append(nav, fmt.Sprintf("- Previous: [%s](%s.md)", prev.Title, prev.Slug))
	}
	if next != nil {
		nav = append(nav, fmt.Sprintf("- Next: [%s](%s.md)", next.Title, next.Slug))
	}

	fmt.Fprintf(&b, "# %s\n\n", record.Title)
	b.WriteString(record.Content)
	b.WriteString("\n\n")
	b.WriteString("## Navigation\n\n")
	b.WriteString(strings.Join(nav, "\n"))

	return b.Bytes(), nil
}
