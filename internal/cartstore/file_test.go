package cartstore

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"marketplace-companion/internal/domain"
)

func fileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFile(filepath.Join(t.TempDir(), "cart.json"), zerolog.Nop())
}

func TestFileStore_LoadMissingIsEmpty(t *testing.T) {
	store := fileStore(t)
	lines, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := fileStore(t)
	stock := 5
	want := []domain.CartLine{
		{ProductID: 1, Quantity: 2, Name: "Lamp", UnitPriceCents: 2500, LastKnownStock: &stock},
		{ProductID: 2, Quantity: 1, Name: "Chair", UnitPriceCents: 9900},
	}

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestFileStore_CorruptBlobReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	store := NewFile(path, zerolog.Nop())

	lines, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart from corrupt blob, got %d lines", len(lines))
	}
}

func TestFileStore_ClearEmptiesAndNotifies(t *testing.T) {
	store := fileStore(t)
	if err := store.Save(context.Background(), []domain.CartLine{{ProductID: 1, Quantity: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var notified [][]domain.CartLine
	cancel := store.Subscribe(func(lines []domain.CartLine) {
		notified = append(notified, lines)
	})
	defer cancel()

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	lines, _ := store.Load(context.Background())
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(lines))
	}
	if len(notified) != 1 || len(notified[0]) != 0 {
		t.Fatalf("expected one empty notification, got %+v", notified)
	}
}

func TestFileStore_SubscribeNotifiedOncePerSave(t *testing.T) {
	store := fileStore(t)

	count := 0
	cancel := store.Subscribe(func(_ []domain.CartLine) { count++ })

	if err := store.Save(context.Background(), []domain.CartLine{{ProductID: 1, Quantity: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 notification, got %d", count)
	}

	cancel()
	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("save after cancel: %v", err)
	}
	if count != 1 {
		t.Fatalf("cancelled subscriber must not fire, got %d", count)
	}
}
