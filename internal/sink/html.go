package sink

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// previewEngine renders Markdown previews with GFM niceties enabled. The
// engine is stateless and safe to share across concurrent section walks.
var previewEngine = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

func renderHTML(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := previewEngine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
