// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for
// github.com/sdgym/sdgym/storage/db. It must be imported instead of
// go-sqlite3 to ensure the database is configured correctly.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sdgym/sdgym/storage/db"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// Every connection to ":memory:" opens a separate database.
		db.SetMaxOpenConns(1)
		return nil
	})
}
