package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Connect opens a Postgres connection pool and verifies it.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
