// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"fmt"
	"os"
	"testing"
	"time"
)

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	database := fmt.Sprintf("smartlab_test_%d", time.Now().UnixNano())

	store, err := openMongo(testContext(), uri, database)
	if err != nil {
		t.Fatalf("openMongo failed: %v", err)
	}

	t.Cleanup(func() {
		if err := store.collection.Database().Drop(testContext()); err != nil {
			t.Logf("failed to drop test database: %v", err)
		}
		if err := store.Close(testContext()); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})

	exerciseStore(t, store)
}
