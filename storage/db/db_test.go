// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"math"
	"testing"

	"github.com/sdgym/sdgym/results"
	. "github.com/sdgym/sdgym/storage/db"
	"github.com/sdgym/sdgym/storage/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(dataset string, step int, name, metric string, v float64) results.Entry {
	return results.Entry{
		Dataset: dataset,
		Step:    step,
		Performance: []results.Score{
			{Name: name, Metrics: []results.Metric{{Name: metric, Value: v}}},
		},
	}
}

func TestImportSets(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	gaussian := results.Set{Model: "gaussian", Entries: []results.Entry{
		entry("census", 1, "DecisionTree", "accuracy", 0.9),
		entry("adult", 0, "DecisionTree", "accuracy", 0.8),
		entry("adult", 0, "DecisionTree", "accuracy", 0.7),
	}}
	identity := results.Set{Model: "identity", Entries: []results.Entry{
		entry("adult", 0, "DecisionTree", "f1", 1),
	}}
	// Import out of model order.
	require.NoError(t, db.ImportSet(ctx, identity))
	require.NoError(t, db.ImportSet(ctx, gaussian))

	n, err := db.CountEntries()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	sets, err := db.Sets(ctx)
	require.NoError(t, err)
	want := []results.Set{
		{Model: "gaussian", Entries: []results.Entry{gaussian.Entries[1], gaussian.Entries[2], gaussian.Entries[0]}},
		identity,
	}
	assert.Equal(t, want, sets)

	var raw string
	err = DBSQL(db).QueryRow("SELECT Performance FROM Entries WHERE Model = ?", "identity").Scan(&raw)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "DecisionTree", "f1": 1}]`, raw)
}

func TestImportReplaces(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	require.NoError(t, db.ImportSet(ctx, results.Set{Model: "gaussian", Entries: []results.Entry{
		entry("adult", 0, "DecisionTree", "accuracy", 0.5),
		entry("adult", 0, "DecisionTree", "accuracy", 0.6),
		entry("census", 0, "DecisionTree", "accuracy", 0.9),
	}}))
	require.NoError(t, db.ImportSet(ctx, results.Set{Model: "gaussian", Entries: []results.Entry{
		entry("adult", 0, "DecisionTree", "accuracy", 0.75),
		entry("adult", 1, "DecisionTree", "accuracy", 0.25),
	}}))

	sets, err := db.Sets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, []results.Entry{
		entry("adult", 0, "DecisionTree", "accuracy", 0.75),
		entry("adult", 1, "DecisionTree", "accuracy", 0.25),
		entry("census", 0, "DecisionTree", "accuracy", 0.9),
	}, sets[0].Entries)
}

func TestImportAtomic(t *testing.T) {
	ctx := context.Background()
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	old := entry("adult", 0, "DecisionTree", "accuracy", 0.5)
	require.NoError(t, db.ImportSet(ctx, results.Set{Model: "gaussian", Entries: []results.Entry{old}}))

	// NaN cannot be encoded, so the second entry fails and the
	// replacement of the first must be rolled back.
	err := db.ImportSet(ctx, results.Set{Model: "gaussian", Entries: []results.Entry{
		entry("adult", 0, "DecisionTree", "accuracy", 0.9),
		entry("census", 0, "DecisionTree", "accuracy", math.NaN()),
	}})
	require.Error(t, err)

	sets, err := db.Sets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []results.Set{{Model: "gaussian", Entries: []results.Entry{old}}}, sets)
}

func TestImportNoModel(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	assert.Error(t, db.ImportSet(context.Background(), results.Set{Entries: []results.Entry{entry("adult", 0, "x", "y", 1)}}))
}

func TestSetsEmpty(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	sets, err := db.Sets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sets)
}
