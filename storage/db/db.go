// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db archives benchmark result sets in a SQL database so that
// results from separate runs can be summarized together.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/sdgym/sdgym/results"
)

// DB is a high-level interface to a results archive. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	deleteEntries *sql.Stmt
	insertEntry   *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to limit in-memory databases to
// a single connection. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Entries (
	Model VARCHAR(255) NOT NULL,
	Dataset VARCHAR(255) NOT NULL,
	Step INTEGER NOT NULL,
	Seq INTEGER NOT NULL,
	Performance BLOB,
{{if not .sqlite3}}
	Index (Dataset),
{{end}}
	PRIMARY KEY (Model, Dataset, Step, Seq)
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS EntriesDataset ON Entries(Dataset);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.deleteEntries, err = db.sql.Prepare("DELETE FROM Entries WHERE Model = ? AND Dataset = ? AND Step = ?")
	if err != nil {
		return err
	}
	db.insertEntry, err = db.sql.Prepare("INSERT INTO Entries(Model, Dataset, Step, Seq, Performance) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

type entryKey struct {
	dataset string
	step    int
}

// ImportSet stores the entries of set under set.Model. For every
// (dataset, step) pair that set reports, the previously archived
// entries of that model are replaced; other archived entries of the
// model are kept. The import is atomic.
func (db *DB) ImportSet(ctx context.Context, set results.Set) (err error) {
	if set.Model == "" {
		return fmt.Errorf("import: result set has no model name")
	}
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	del := tx.StmtContext(ctx, db.deleteEntries)
	ins := tx.StmtContext(ctx, db.insertEntry)
	seq := make(map[entryKey]int)
	for _, e := range set.Entries {
		k := entryKey{e.Dataset, e.Step}
		n, seen := seq[k]
		if !seen {
			if _, err := del.ExecContext(ctx, set.Model, e.Dataset, e.Step); err != nil {
				return err
			}
		}
		perf, err := json.Marshal(e.Performance)
		if err != nil {
			return fmt.Errorf("%s/%s: %w", set.Model, e.Dataset, err)
		}
		if _, err := ins.ExecContext(ctx, set.Model, e.Dataset, e.Step, n, perf); err != nil {
			return err
		}
		seq[k] = n + 1
	}
	return nil
}

// Sets returns every archived result set, ordered by model. Entries
// within a set are ordered by dataset, then step, then the order in
// which they were imported.
func (db *DB) Sets(ctx context.Context) ([]results.Set, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Model, Dataset, Step, Performance FROM Entries ORDER BY Model, Dataset, Step, Seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []results.Set
	for rows.Next() {
		var model string
		var e results.Entry
		var perf []byte
		if err := rows.Scan(&model, &e.Dataset, &e.Step, &perf); err != nil {
			return nil, err
		}
		if len(perf) > 0 {
			if err := json.Unmarshal(perf, &e.Performance); err != nil {
				return nil, fmt.Errorf("%s/%s: %w", model, e.Dataset, err)
			}
		}
		if len(sets) == 0 || sets[len(sets)-1].Model != model {
			sets = append(sets, results.Set{Model: model})
		}
		last := &sets[len(sets)-1]
		last.Entries = append(last.Entries, e)
	}
	return sets, rows.Err()
}

// CountEntries returns the number of archived entries.
func (db *DB) CountEntries() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Entries").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.deleteEntries.Close(); err != nil {
		return err
	}
	if err := db.insertEntry.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
