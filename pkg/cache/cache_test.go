package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/tutte/pkg/core/planar"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want a clean miss", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get(key) = %q, %v, %v; want value, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of a missing key should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry returned as a hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)

	path := fc.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want a clean miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, "")
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	if _, ok := c.(*NullCache); !ok {
		t.Errorf("Open(\"\") = %T, want *NullCache", c)
	}

	c, err = Open(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("Open(dir) error: %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(dir) = %T, want *FileCache", c)
	}

	if _, err := Open(ctx, "redis://:bad port"); err == nil {
		t.Error("Open accepted a malformed redis URL")
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("TUTTE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TUTTE_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	key := "tutte-test:" + Hash([]byte(t.Name()))
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Errorf("Get before Set = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func testGraph(t *testing.T) *planar.Graph {
	t.Helper()
	g, err := planar.New(3, []planar.Edge{planar.NewEdge(0, 1), planar.NewEdge(1, 2), planar.NewEdge(0, 2)})
	if err != nil {
		t.Fatal(err)
	}
	for i := range g.Vertices {
		g.Vertices[i].Pos.X = float64(i)
		g.Vertices[i].Boundary = true
	}
	g.Vertices[2].Pos.Y = 1
	return g
}

func TestGraphHash(t *testing.T) {
	base := testGraph(t)
	h := GraphHash(base)
	if h != GraphHash(base.Clone()) {
		t.Error("clones should hash the same")
	}

	tests := []struct {
		name   string
		mutate func(g *planar.Graph)
		same   bool
	}{
		{"velocity is ignored", func(g *planar.Graph) { g.Vertices[0].Vel.X = 3 }, true},
		{"position", func(g *planar.Graph) { g.Vertices[1].Pos.Y += 1e-12 }, false},
		{"boundary flag", func(g *planar.Graph) { g.Vertices[2].Boundary = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base.Clone()
			tt.mutate(g)
			if got := GraphHash(g) == h; got != tt.same {
				t.Errorf("hash unchanged = %v, want %v", got, tt.same)
			}
		})
	}
}

func TestArtifactKey(t *testing.T) {
	planarTrue := true
	k1 := ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800})
	k2 := ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Width: 800})
	k3 := ArtifactKey("hash456", ArtifactKeyOpts{Format: "svg", Width: 800})
	k4 := ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800, Planar: &planarTrue})

	if k1 == k2 || k1 == k3 || k1 == k4 {
		t.Error("different inputs should produce different keys")
	}
	if k1 != ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800}) {
		t.Error("ArtifactKey should be deterministic")
	}
	if len(k1) != len("artifact:")+64 {
		t.Errorf("unexpected key shape: %s", k1)
	}
}
