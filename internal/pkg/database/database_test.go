package database

import (
	"context"
	"os"
	"testing"
)

func TestNewPostgresEmptyURL(t *testing.T) {
	db, err := NewPostgres(context.Background(), "", DefaultPool)
	if err != nil || db != nil {
		t.Fatalf("expected nil pool without error, got %v %v", db, err)
	}
	ClosePostgres(nil)
}

func TestNewRedisEmptyURL(t *testing.T) {
	client, err := NewRedis(context.Background(), "")
	if err != nil || client != nil {
		t.Fatalf("expected nil client without error, got %v %v", client, err)
	}
	CloseRedis(nil)
}

func TestNewRedisInvalidURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "not-a-url"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewPostgresLive(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skipf("db not available")
	}
	db, err := NewPostgres(context.Background(), dsn, DefaultPool)
	if err != nil {
		t.Skipf("db not available: %v", err)
	}
	defer ClosePostgres(db)
}
