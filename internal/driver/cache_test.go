package driver

import (
	"testing"
)

func TestCache(t *testing.T) {
	cache, err := OpenCacheDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	hash := digestOf([]byte("x = 1\n"))
	if hit, err := cache.Formatted("/p/a.lua", "fp", hash); err != nil || hit {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}
	if err := cache.Record("/p/a.lua", "fp", hash); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Formatted("/p/a.lua", "fp", hash); !hit {
		t.Fatal("recorded entry missed")
	}
	for _, miss := range []struct{ path, fp string }{{"/p/b.lua", "fp"}, {"/p/a.lua", "other"}} {
		if hit, _ := cache.Formatted(miss.path, miss.fp, hash); hit {
			t.Fatalf("unexpected hit for %+v", miss)
		}
	}
	if hit, _ := cache.Formatted("/p/a.lua", "fp", digestOf([]byte("x=1"))); hit {
		t.Fatal("hit for different content")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Formatted("/p/a.lua", "fp", hash); hit {
		t.Fatal("entry survived DropAll")
	}
	if err := cache.Record("/p/a.lua", "fp", hash); err != nil {
		t.Fatalf("Record after DropAll: %v", err)
	}
}

func TestNilCache(t *testing.T) {
	var cache *Cache
	if hit, err := cache.Formatted("a", "b", Digest{}); hit || err != nil {
		t.Fatal("nil cache hit")
	}
	if err := cache.Record("a", "b", Digest{}); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
}
