package catalog

import (
	"github.com/uptrace/bun"
)

// Record is one entry in the ordinal hierarchy. The ordinal string is the
// primary key and encodes the record's position and lineage; every other
// hierarchy relation (parent, siblings, ancestor) is derived from it.
type Record struct {
	bun.BaseModel `bun:"table:entries,alias:e" yaml:"-"`

	Ordinal    string  `bun:"ordinal,pk"           yaml:"ordinal"`
	Parent     *string `bun:"parent"               yaml:"parent,omitempty"`
	Ancestor   int     `bun:"ancestor,notnull"     yaml:"-"`
	Slug       string  `bun:"slug,notnull"         yaml:"slug"`
	Title      string  `bun:"title,notnull"        yaml:"title"`
	Difficulty *int    `bun:"difficulty"           yaml:"difficulty,omitempty"`
	Content    string  `bun:"content,notnull"      yaml:"-"`
}

// IsSection reports whether the record is a top-level section.
func (r *Record) IsSection() bool {
	return r.Parent == nil
}
