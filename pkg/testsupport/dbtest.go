package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var dbSequence atomic.Int64

// NewSQLiteMemoryDB opens an isolated in-memory SQLite database. Each call
// gets a uniquely named shared-cache database so concurrent tests never
// observe each other's rows. Callers should cap the pool at one connection.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("testdb%d", dbSequence.Add(1))
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}
