package storage

import (
	"context"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "invoices/2024/07/INV-202407-0001.pdf", []byte("%PDF-1.3"), "application/pdf"); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, err := store.Get(ctx, "invoices/2024/07/INV-202407-0001.pdf")
	if err != nil || string(data) != "%PDF-1.3" {
		t.Fatalf("get = %q, %v", data, err)
	}
}

func TestLocalStoreStaysInRoot(t *testing.T) {
	root := t.TempDir()
	store, _ := NewLocalStore(root)
	p, err := store.Put(context.Background(), "../../etc/passwd", []byte("x"), "text/plain")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if len(p) < len(root) || p[:len(root)] != root {
		t.Fatalf("path %q escaped root %q", p, root)
	}
}
