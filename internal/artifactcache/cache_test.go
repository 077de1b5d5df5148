package artifactcache_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lingoreel/internal/artifactcache"
	"lingoreel/internal/logging"
)

func openCache(t *testing.T, dir string, opts ...artifactcache.Option) *artifactcache.Cache {
	t.Helper()
	cache, err := artifactcache.Open(dir, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestPutThenLookup(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t, t.TempDir())

	if _, ok := cache.Lookup(ctx, "images", "a.jpg"); ok {
		t.Fatal("expected miss on empty cache")
	}
	path, err := cache.Put(ctx, "images", "a.jpg", []byte("jpeg"), "https://example.com/a.jpg")
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if path != cache.Path("images", "a.jpg") {
		t.Fatalf("unexpected path %s", path)
	}
	got, ok := cache.Lookup(ctx, "images", "a.jpg")
	if !ok || got != path {
		t.Fatalf("expected hit at %s, got %s %v", path, got, ok)
	}
	data, err := os.ReadFile(got)
	if err != nil || string(data) != "jpeg" {
		t.Fatalf("unexpected content %q (%v)", data, err)
	}
}

func TestPutKeepsFirstWriter(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t, t.TempDir())

	if _, err := cache.Put(ctx, "tts", "k.mp3", []byte("first"), ""); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	path, err := cache.Put(ctx, "tts", "k.mp3", []byte("second"), "")
	if err != nil {
		t.Fatalf("second Put returned error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "first" {
		t.Fatalf("expected winner bytes, got %q", data)
	}
	leftovers, _ := filepath.Glob(filepath.Join(cache.Dir(), "tts", ".tmp-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestPutRejectsBadKeys(t *testing.T) {
	cache := openCache(t, t.TempDir())
	for _, name := range []string{"", "../x", "a/b", ".hidden"} {
		if _, err := cache.Put(context.Background(), "images", name, []byte("x"), ""); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}
	if _, err := cache.Put(context.Background(), "images", "empty.jpg", nil, ""); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestGetOrCreateFetchesOnce(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t, t.TempDir())

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("payload"), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	paths := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], _, errs[i] = cache.GetOrCreate(ctx, "images", "same.jpg", "src", fetch)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("expected one fetch, got %d", n)
	}
	for i := range paths {
		if errs[i] != nil {
			t.Fatalf("worker %d error: %v", i, errs[i])
		}
		if paths[i] != paths[0] {
			t.Fatalf("workers disagree on path: %s vs %s", paths[i], paths[0])
		}
	}

	_, hit, err := cache.GetOrCreate(ctx, "images", "same.jpg", "src", fetch)
	if err != nil || !hit {
		t.Fatalf("expected cache hit, got hit=%v err=%v", hit, err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("hit must not fetch, got %d calls", n)
	}
}

func TestGetOrCreatePropagatesFetchError(t *testing.T) {
	cache := openCache(t, t.TempDir())
	boom := errors.New("download failed")
	_, _, err := cache.GetOrCreate(context.Background(), "images", "x.jpg", "", func(context.Context) ([]byte, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if _, ok := cache.Lookup(context.Background(), "images", "x.jpg"); ok {
		t.Fatal("failed fetch must not populate the cache")
	}
}

func TestTwoHandlesShareDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a := openCache(t, dir)
	b := openCache(t, dir)

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i, c := range []*artifactcache.Cache{a, b} {
		wg.Add(1)
		go func(i int, c *artifactcache.Cache) {
			defer wg.Done()
			payload := bytes.Repeat([]byte{byte('a' + i)}, 1024)
			path, err := c.Put(ctx, "images", "race.jpg", payload, "")
			if err != nil {
				t.Errorf("Put %d: %v", i, err)
				return
			}
			data, _ := os.ReadFile(path)
			results[i] = string(data)
		}(i, c)
	}
	wg.Wait()
	if results[0] != results[1] {
		t.Fatal("writers observed different artifacts for one key")
	}
}

func TestLookupDropsMissingFile(t *testing.T) {
	ctx := context.Background()
	cache := openCache(t, t.TempDir())
	path, err := cache.Put(ctx, "images", "gone.jpg", []byte("x"), "")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := cache.Lookup(ctx, "images", "gone.jpg"); ok {
		t.Fatal("expected miss when file is gone")
	}
	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected index row removed, got %+v", stats)
	}
}

func TestStatsPruneAndClear(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	cache := openCache(t, t.TempDir(), artifactcache.WithClock(clock))

	if _, err := cache.Put(ctx, "images", "old.jpg", []byte("12345"), ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	now = now.Add(48 * time.Hour)
	if _, err := cache.Put(ctx, "images", "new.jpg", []byte("123"), ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := cache.Put(ctx, "tts", "a.mp3", []byte("1"), ""); err != nil {
		t.Fatalf("Put: %v", err)
	}

	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 2 || stats[0].Namespace != "images" || stats[0].Entries != 2 || stats[0].Bytes != 8 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	res, err := cache.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if res.Removed != 1 || res.Bytes != 5 {
		t.Fatalf("unexpected prune result %+v", res)
	}
	if _, ok := cache.Lookup(ctx, "images", "old.jpg"); ok {
		t.Fatal("old entry should be pruned")
	}
	if _, ok := cache.Lookup(ctx, "images", "new.jpg"); !ok {
		t.Fatal("recent entry should survive prune")
	}

	res, err = cache.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if res.Removed != 2 {
		t.Fatalf("expected 2 cleared entries, got %+v", res)
	}
	if _, err := os.Stat(cache.IndexPath()); err != nil {
		t.Fatalf("index must survive clear: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cache.Dir(), "images")); !os.IsNotExist(err) {
		t.Fatalf("namespace dir should be removed, stat err=%v", err)
	}
}

func TestPruneRequiresPositiveAge(t *testing.T) {
	cache := openCache(t, t.TempDir())
	if _, err := cache.Prune(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero age")
	}
}

func TestDirectoryLocks(t *testing.T) {
	dir := t.TempDir()
	shared1, err := artifactcache.AcquireShared(dir)
	if err != nil {
		t.Fatalf("AcquireShared: %v", err)
	}
	shared2, err := artifactcache.AcquireShared(dir)
	if err != nil {
		t.Fatalf("second AcquireShared: %v", err)
	}
	if _, err := artifactcache.AcquireExclusive(dir); !errors.Is(err, artifactcache.ErrBusy) {
		t.Fatalf("expected ErrBusy while shared locks held, got %v", err)
	}
	_ = shared1.Release()
	_ = shared2.Release()

	excl, err := artifactcache.AcquireExclusive(dir)
	if err != nil {
		t.Fatalf("AcquireExclusive after release: %v", err)
	}
	if _, err := artifactcache.AcquireShared(dir); !errors.Is(err, artifactcache.ErrBusy) {
		t.Fatalf("expected ErrBusy while exclusive lock held, got %v", err)
	}
	if err := excl.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	var nilLock *artifactcache.Lock
	if err := nilLock.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
}
