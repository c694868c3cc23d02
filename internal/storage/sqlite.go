package storage

import (
	"github.com/Binaergewitter/datefinder/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteProvider struct {
	SQLProvider
}

func NewSQLiteProvider(config *config.Storage) (provider *SQLiteProvider) {
	// Foreign keys are off by default in sqlite; availability and
	// confirmation rows reference users. The busy timeout covers writers
	// on distinct keys arriving on separate pool connections.
	dsn := config.SQLite.Path + "?_foreign_keys=1&_busy_timeout=5000"

	sql := NewSQLProvider("sqlite3", dsn)
	if sql == nil {
		return nil
	}

	return &SQLiteProvider{
		SQLProvider: *sql,
	}
}
