package store

// MemorySentinel selects an in-memory cache when passed as the cache location.
const MemorySentinel = ":memory:"

// Strategy selects where the cache lives for the duration of a run: an
// in-memory SQLite database, or a database file on disk that can be reused
// across runs.
type Strategy struct {
	path string
}

// ParseStrategy interprets a cache location string. ":memory:" selects the
// in-memory cache; anything else is treated as a file path.
func ParseStrategy(location string) Strategy {
	if location == "" || location == MemorySentinel {
		return Strategy{}
	}
	return Strategy{path: location}
}

// IsMemory reports whether the strategy targets an in-memory database.
func (s Strategy) IsMemory() bool {
	return s.path == ""
}

// DSN returns the SQLite connection string for the strategy. Memory databases
// use a shared cache so a fresh connection still sees the populated store.
func (s Strategy) DSN() string {
	if s.IsMemory() {
		return "file::memory:?cache=shared"
	}
	return s.path
}

func (s Strategy) String() string {
	if s.IsMemory() {
		return MemorySentinel
	}
	return s.path
}
