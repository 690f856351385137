// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/saisaranya2005/SmartLabAI/lab"
)

func TestUnavailableStore(t *testing.T) {
	t.Parallel()

	store := Unavailable()
	ctx := testContext()

	if store.Available() {
		t.Fatal("unavailable store reports itself available")
	}

	if err := store.Save(ctx, visit("CBC-1", "Ann", day(2025, 1, 1))); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	history, err := store.History(ctx, "CBC-1")
	if err != nil || len(history) != 0 {
		t.Fatalf("History = %v, %v; want empty", history, err)
	}

	results, err := store.Search(ctx, "")
	if err != nil || len(results) != 0 {
		t.Fatalf("Search = %v, %v; want empty", results, err)
	}

	exists, err := store.PatientExists(ctx, "CBC-1")
	if err != nil || exists {
		t.Fatalf("PatientExists = %v, %v; want false", exists, err)
	}
}

func TestOpenDegradesToUnavailable(t *testing.T) {
	t.Parallel()

	store := Open(testContext(), Config{Backend: BackendMongo}, lab.PanelCBC)
	if store.Available() {
		t.Fatal("expected mongo without URI to degrade to the unavailable store")
	}

	store = Open(testContext(), Config{Backend: "sqlite"}, lab.PanelCBC)
	if store.Available() {
		t.Fatal("expected unknown backend to degrade to the unavailable store")
	}
}

func TestOpenMigrationsRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := OpenMigrations(testContext(), ""); !errors.Is(err, ErrDatabaseURLEnvVarNotSet) {
		t.Fatalf("expected %v, got %v", ErrDatabaseURLEnvVarNotSet, err)
	}

	if err := SyncSchema(testContext(), ""); !errors.Is(err, ErrDatabaseURLEnvVarNotSet) {
		t.Fatalf("expected %v, got %v", ErrDatabaseURLEnvVarNotSet, err)
	}
}

func TestOpenMemoryIsInstrumented(t *testing.T) {
	t.Parallel()

	store := Open(testContext(), Config{Backend: BackendMemory}, lab.PanelLFT)
	if _, ok := store.(*instrumentedStore); !ok {
		t.Fatalf("expected instrumented store, got %T", store)
	}

	exerciseStore(t, store)
}

func TestParseBackend(t *testing.T) {
	t.Parallel()

	tests := map[string]Backend{
		"":          BackendMongo,
		"mongo":     BackendMongo,
		"Postgres":  BackendPostgres,
		" memory ":  BackendMemory,
	}

	for input, want := range tests {
		got, err := ParseBackend(input)
		if err != nil {
			t.Fatalf("ParseBackend(%q) failed: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseBackend(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseBackend("redis"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestMongoDatabaseName(t *testing.T) {
	t.Parallel()

	if got := MongoDatabaseName(lab.PanelLFT); got != "lft_analyzer" {
		t.Fatalf("MongoDatabaseName(LFT) = %q", got)
	}
	if got := MongoDatabaseName(lab.PanelCBC); got != "cbc_analyzer" {
		t.Fatalf("MongoDatabaseName(CBC) = %q", got)
	}
}

func TestSearchFilterTrimsQuery(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"", "   ", "\t"} {
		if got := searchFilter(q); len(got) != 0 {
			t.Fatalf("searchFilter(%q) = %v, want empty filter", q, got)
		}
	}

	filter := searchFilter("  jo.e ")
	clauses, ok := filter["$or"].(bson.A)
	if !ok || len(clauses) != 2 {
		t.Fatalf("unexpected filter: %v", filter)
	}

	for _, clause := range clauses {
		m, ok := clause.(bson.M)
		if !ok {
			t.Fatalf("unexpected clause: %v", clause)
		}

		for field, value := range m {
			pattern, ok := value.(bson.Regex)
			if !ok || pattern.Pattern != `jo\.e` || pattern.Options != "i" {
				t.Fatalf("%s: unexpected pattern %v", field, value)
			}
		}
	}
}

// Not parallel: swaps the package pool.
func TestPostgresStoreCloseKeepsSharedPool(t *testing.T) {
	if postgresReady {
		t.Skip("shared pool belongs to the integration tests")
	}

	p, err := pgxpool.New(testContext(), "postgres://smartlab@127.0.0.1:1/smartlab")
	if err != nil {
		t.Fatalf("failed to build pool: %v", err)
	}

	pool = p
	defer Close()

	cbc := NewPostgresStore(lab.PanelCBC)
	lft := NewPostgresStore(lab.PanelLFT)

	if err := cbc.Close(testContext()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if !lft.Available() || !cbc.Available() {
		t.Fatal("closing one panel store must not release the shared pool")
	}

	Close()
	if lft.Available() {
		t.Fatal("expected db.Close to release the pool")
	}
}
