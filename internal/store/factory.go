package store

import (
	"fmt"

	"go-stockbook/pkg/database"
)

// NewStore constructs a Store by kind: "memory", "file" or "postgres".
// The file kind needs a path; the postgres kind needs a DSN.
func NewStore(kind, path, dsn string) (Store, error) {
	switch kind {
	case "memory", "mem":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(path)
	case "postgres", "pg":
		db, err := database.Connect(dsn)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db)
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}
