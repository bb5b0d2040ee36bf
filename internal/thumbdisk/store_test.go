package thumbdisk_test

import (
	"context"
	"image"
	"path/filepath"
	"testing"
	"time"

	"cutboard/internal/thumbdisk"
)

func openStore(t *testing.T) *thumbdisk.Store {
	t.Helper()
	store, err := thumbdisk.Open(filepath.Join(t.TempDir(), "thumbs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testTile(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	return img
}

func TestStoreAndLoadRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	mtime := time.Unix(1700000000, 0)

	if err := store.StoreThumb(ctx, "art/cel01.png", mtime, testTile(160, 90)); err != nil {
		t.Fatalf("StoreThumb failed: %v", err)
	}

	img, ok, err := store.Load(ctx, "art/cel01.png", mtime, 160)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got := img.Bounds(); got.Dx() != 160 || got.Dy() != 90 {
		t.Fatalf("loaded bounds = %v, want 160x90", got)
	}
}

func TestLoadMissIsNotAnError(t *testing.T) {
	store := openStore(t)
	_, ok, err := store.Load(context.Background(), "never/stored.png", time.Now(), 160)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unknown resource")
	}
}

func TestMtimeChangeInvalidates(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	mtime := time.Unix(1700000000, 0)

	if err := store.StoreThumb(ctx, "art/cel01.png", mtime, testTile(160, 90)); err != nil {
		t.Fatalf("StoreThumb failed: %v", err)
	}

	_, ok, err := store.Load(ctx, "art/cel01.png", mtime.Add(time.Hour), 160)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Fatal("a re-exported resource must not hit the stale thumbnail")
	}
}

func TestStoreThumbUpserts(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	mtime := time.Unix(1700000000, 0)

	if err := store.StoreThumb(ctx, "art/cel01.png", mtime, testTile(160, 90)); err != nil {
		t.Fatalf("first store: %v", err)
	}
	if err := store.StoreThumb(ctx, "art/cel01.png", mtime, testTile(160, 120)); err != nil {
		t.Fatalf("second store: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("upsert should keep one row, got %d", count)
	}

	img, ok, _ := store.Load(ctx, "art/cel01.png", mtime, 160)
	if !ok || img.Bounds().Dy() != 120 {
		t.Fatal("load should return the replacement thumbnail")
	}
}

func TestPruneByAge(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.StoreThumb(ctx, "art/old.png", time.Unix(1, 0), testTile(16, 16)); err != nil {
		t.Fatalf("StoreThumb failed: %v", err)
	}

	// Entries were just written, so a generous age budget removes nothing.
	removed, err := store.Prune(ctx, 24*time.Hour, 0)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 0 {
		t.Fatalf("fresh entries pruned: %d", removed)
	}

	// A zero-ish age budget removes everything seen before now.
	time.Sleep(1100 * time.Millisecond)
	removed, err = store.Prune(ctx, time.Second, 0)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned entry, got %d", removed)
	}
}

func TestPruneBySize(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		path := filepath.Join("art", "cel", string(rune('a'+i%26))+".png")
		mtime := time.Unix(int64(1700000000+i), 0)
		if err := store.StoreThumb(ctx, path, mtime, testTile(64, 64)); err != nil {
			t.Fatalf("StoreThumb %d failed: %v", i, err)
		}
	}

	before, err := store.TotalBytes(ctx)
	if err != nil {
		t.Fatalf("TotalBytes failed: %v", err)
	}
	budget := before / 2

	if _, err := store.Prune(ctx, 0, budget); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	after, err := store.TotalBytes(ctx)
	if err != nil {
		t.Fatalf("TotalBytes failed: %v", err)
	}
	if after > budget {
		t.Fatalf("cache still holds %d bytes, budget %d", after, budget)
	}
	count, _ := store.Count(ctx)
	if count == 0 {
		t.Fatal("prune should stop once under budget, not empty the cache")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "thumbs.db")
	ctx := context.Background()
	mtime := time.Unix(1700000000, 0)

	store, err := thumbdisk.Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.StoreThumb(ctx, "art/persist.png", mtime, testTile(32, 32)); err != nil {
		t.Fatalf("StoreThumb failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := thumbdisk.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	_, ok, err := reopened.Load(ctx, "art/persist.png", mtime, 32)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("entries must survive reopen")
	}
}
