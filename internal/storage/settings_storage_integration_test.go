//go:build integration
// +build integration

package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestPostgresSettingsStorage_Bool(t *testing.T) {
	pool := getTestDBPool(t)
	defer pool.Close()

	storage := NewPostgresSettingsStorage(pool)
	ctx := context.Background()
	key := "test_flag_" + uuid.New().String()[:8]

	t.Run("missing key returns fallback", func(t *testing.T) {
		got, err := storage.GetBool(ctx, key, true)
		if err != nil {
			t.Fatalf("GetBool() error = %v", err)
		}
		if !got {
			t.Error("expected fallback value true")
		}
	})

	t.Run("stored value wins", func(t *testing.T) {
		if err := storage.SetBool(ctx, key, false); err != nil {
			t.Fatalf("SetBool() error = %v", err)
		}
		got, err := storage.GetBool(ctx, key, true)
		if err != nil {
			t.Fatalf("GetBool() error = %v", err)
		}
		if got {
			t.Error("expected stored value false")
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := storage.SetBool(ctx, key, true); err != nil {
			t.Fatalf("SetBool() error = %v", err)
		}
		got, _ := storage.GetBool(ctx, key, false)
		if !got {
			t.Error("expected overwritten value true")
		}
	})
}

func TestPostgresSettingsStorage_InitBool(t *testing.T) {
	pool := getTestDBPool(t)
	defer pool.Close()

	storage := NewPostgresSettingsStorage(pool)
	ctx := context.Background()
	key := "test_seed_" + uuid.New().String()[:8]

	created, err := storage.InitBool(ctx, key, false)
	if err != nil {
		t.Fatalf("InitBool() error = %v", err)
	}
	if !created {
		t.Error("expected first InitBool to write the value")
	}

	created, err = storage.InitBool(ctx, key, true)
	if err != nil {
		t.Fatalf("InitBool() error = %v", err)
	}
	if created {
		t.Error("InitBool must not overwrite an existing value")
	}

	got, err := storage.GetBool(ctx, key, true)
	if err != nil {
		t.Fatalf("GetBool() error = %v", err)
	}
	if got {
		t.Error("expected seeded value false")
	}
}
