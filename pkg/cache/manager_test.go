package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/webapi-methods/pkg/pagination"
)

// setupTestRedis connects to a local Redis and skips the test when none is
// running. manager_integration_test.go covers the same ground against a
// container.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewManager(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	manager := NewManager(client)
	if manager == nil {
		t.Fatal("NewManager returned nil")
	}
	if manager.redis != client {
		t.Error("Manager redis client not set correctly")
	}
}

func TestNewManager_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewManager should panic with nil redis client")
		}
	}()
	NewManager(nil)
}

func TestManager_SetAndGet(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()

	key := CacheKey{
		Operation: "users.list",
		Args:      pagination.Args{"limit": 100},
	}
	entry := &CacheEntry{
		Operation: "users.list",
		Data:      []byte(`{"ok":true,"members":[]}`),
		Expires:   time.Now().Add(5 * time.Minute),
		CachedAt:  time.Now(),
	}

	if err := manager.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	retrieved, err := manager.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(retrieved.Data) != string(entry.Data) {
		t.Errorf("Data mismatch: got %s, want %s", retrieved.Data, entry.Data)
	}
	if retrieved.Operation != entry.Operation {
		t.Errorf("Operation mismatch: got %s, want %s", retrieved.Operation, entry.Operation)
	}
}

func TestManager_Get_CacheMiss(t *testing.T) {
	manager := NewManager(setupTestRedis(t))

	_, err := manager.Get(context.Background(), CacheKey{Operation: "users.list"})
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestManager_Get_ExpiredEntry(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()
	key := CacheKey{Operation: "users.list"}

	entry := &CacheEntry{
		Data:    []byte(`{"ok":true}`),
		Expires: time.Now().Add(-1 * time.Hour),
	}

	// Set should not cache expired entries
	if err := manager.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, err := manager.Get(ctx, key)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss for expired entry, got %v", err)
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()
	key := CacheKey{Operation: "users.list"}

	entry := &CacheEntry{
		Data:    []byte(`{"ok":true}`),
		Expires: time.Now().Add(5 * time.Minute),
	}
	if err := manager.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := manager.Get(ctx, key); err != nil {
		t.Fatalf("Get after Set failed: %v", err)
	}

	if err := manager.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := manager.Get(ctx, key)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after Delete, got %v", err)
	}
}

func TestManager_Invalidate(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()

	entry := &CacheEntry{
		Data:    []byte(`{"ok":true}`),
		Expires: time.Now().Add(5 * time.Minute),
	}
	keys := []CacheKey{
		{Operation: "files.list", Args: pagination.Args{"page": 1}},
		{Operation: "files.list", Args: pagination.Args{"page": 2}},
		{Operation: "users.list"},
	}
	for _, key := range keys {
		if err := manager.Set(ctx, key, entry); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	deleted, err := manager.Invalidate(ctx, "files.list")
	if err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Invalidate deleted %d keys, want 2", deleted)
	}
	if _, err := manager.Get(ctx, keys[2]); err != nil {
		t.Errorf("users.list entry should survive, got %v", err)
	}
}

func TestManager_Set_NilEntry(t *testing.T) {
	manager := NewManager(setupTestRedis(t))

	err := manager.Set(context.Background(), CacheKey{Operation: "users.list"}, nil)
	if err == nil {
		t.Error("Set with nil entry should return error")
	}
}
