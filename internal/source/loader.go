package source

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-shaker/catalog"
)

const metadataFileName = "metadata.json"

// DefaultExclude lists source tree entries that never hold a content unit.
var DefaultExclude = []string{"assets", "temario.md"}

// LoaderConfig configures how unit directories are discovered and resolved.
type LoaderConfig struct {
	// Languages is the ordered resolution chain. The first language with a
	// metadata entry wins; a unit with none of them is skipped.
	Languages []string
	// Exclude names directory entries to ignore (defaults to DefaultExclude).
	Exclude []string
	// Logger receives skip warnings. Optional.
	Logger glog.Logger
}

// Loader turns a source tree of per-unit directories into catalog records.
//
// The expected layout is one directory per ordinal, each holding a
// metadata.json and, for units without an inline description, a
// theory/<lang>.md body:
//
//	src/
//	├── 1/metadata.json
//	├── 1.1/metadata.json
//	└── 1.1.2/
//	   ├── metadata.json
//	   └── theory/{ca,en,es}.md
type Loader struct {
	fsys      fs.FS
	languages []string
	exclude   []string
	logger    glog.Logger
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(fsys fs.FS, cfg LoaderConfig) *Loader {
	exclude := cfg.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}
	return &Loader{
		fsys:      fsys,
		languages: append([]string(nil), cfg.Languages...),
		exclude:   append([]string(nil), exclude...),
		logger:    cfg.Logger,
	}
}

// LoadAll reads every unit directory at the root of the source tree. Excluded
// names are ignored; units without content in any requested language are
// skipped with a warning. Any malformed unit aborts the walk.
func (l *Loader) LoadAll(ctx context.Context) ([]*catalog.Record, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("source: read tree root: %w", err)
	}

	var records []*catalog.Record
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if slices.Contains(l.exclude, entry.Name()) || !entry.IsDir() {
			continue
		}

		record, err := l.LoadEntry(ctx, entry.Name())
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

// LoadEntry reads a single unit directory into a record. It returns
// (nil, nil) when the unit has no entry for any requested language.
func (l *Loader) LoadEntry(ctx context.Context, dir string) (*catalog.Record, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(l.fsys, path.Join(dir, metadataFileName))
	if err != nil {
		return nil, fmt.Errorf("source: read %s/%s: %w", dir, metadataFileName, err)
	}

	meta, err := ParseMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("source: unit %s: %w", dir, err)
	}

	item, lang, ok := l.resolveItem(meta)
	if !ok {
		if l.logger != nil {
			l.logger.Warn("skipping unit, no content for requested languages",
				"ordinal", meta.Number,
				"languages", l.languages,
			)
		}
		return nil, nil
	}

	ancestor, err := catalog.Ancestor(meta.Number)
	if err != nil {
		return nil, fmt.Errorf("source: unit %s: %w", dir, err)
	}

	content, err := l.resolveContent(dir, item, lang)
	if err != nil {
		return nil, err
	}

	return &catalog.Record{
		Ordinal:    meta.Number,
		Parent:     meta.Parent,
		Ancestor:   ancestor,
		Slug:       catalog.Slugify(item.Name),
		Title:      item.Name,
		Difficulty: meta.Difficulty,
		Content:    content,
	}, nil
}

// resolveItem walks the configured language chain and returns the first
// metadata entry that matches.
func (l *Loader) resolveItem(meta *Metadata) (MetaItem, string, bool) {
	for _, lang := range l.languages {
		if item, ok := meta.Item(lang); ok {
			return item, lang, true
		}
	}
	return MetaItem{}, "", false
}

// resolveContent applies the per-unit body precedence: an inline description
// wins; otherwise the language's theory file is loaded.
func (l *Loader) resolveContent(dir string, item MetaItem, lang string) (string, error) {
	if item.Desc != nil {
		return *item.Desc, nil
	}

	theoryPath := path.Join(dir, "theory", lang+".md")
	data, err := fs.ReadFile(l.fsys, theoryPath)
	if err != nil {
		return "", fmt.Errorf("source: read %s: %w", theoryPath, err)
	}
	return string(data), nil
}
