package catalogue

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/atomicstack/menagerie/internal/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithLogging(m, "menagerie-catalogue"))
}

const twoAnimals = `[
	// comments are tolerated
	{"id": "lion", "name": "Lion", "emoji": "🦁", "image": "lion.jpg", "description": "d", "habitat": "h"},
	{"id": "tigre", "name": "Tigre", "emoji": "🐅", "image": "tigre.jpg", "description": "d", "habitat": "h"},
]`

func TestLoadDefaultLocationFromFS(t *testing.T) {
	fsys := fstest.MapFS{DefaultLocation: &fstest.MapFile{Data: []byte(twoAnimals)}}
	cat := NewLoader(fsys, nil).Load(context.Background(), "")
	if got := cat.IDs(); len(got) != 2 || got[0] != "lion" || got[1] != "tigre" {
		t.Fatalf("expected [lion tigre] in order, got %v", got)
	}
}

func TestLoadMissingSourceDegradesToEmpty(t *testing.T) {
	cat := NewLoader(fstest.MapFS{}, nil).Load(context.Background(), "")
	if cat.Len() != 0 {
		t.Fatalf("expected empty catalogue, got %d records", cat.Len())
	}
	cat = NewLoader(nil, nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if cat.Len() != 0 {
		t.Fatalf("expected empty catalogue for missing file, got %d records", cat.Len())
	}
}

func TestLoadMalformedDegradesToEmpty(t *testing.T) {
	fsys := fstest.MapFS{DefaultLocation: &fstest.MapFile{Data: []byte(`{"id": "lion"`)}}
	cat := NewLoader(fsys, nil).Load(context.Background(), "")
	if cat.Len() != 0 {
		t.Fatalf("expected empty catalogue for malformed document, got %d", cat.Len())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.json")
	if err := os.WriteFile(path, []byte(twoAnimals), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cat := NewLoader(nil, nil).Load(context.Background(), path)
	if cat.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", cat.Len())
	}
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/animals.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoAnimals))
	}))
	defer srv.Close()

	loader := NewLoader(nil, srv.Client())
	cat := loader.Load(context.Background(), srv.URL+"/data/animals.json")
	if cat.Len() != 2 {
		t.Fatalf("expected 2 records over http, got %d", cat.Len())
	}
	missing := loader.Load(context.Background(), srv.URL+"/nope.json")
	if missing.Len() != 0 {
		t.Fatalf("expected empty catalogue on 404, got %d", missing.Len())
	}
}

func TestDecodeDropsRecordsWithoutID(t *testing.T) {
	records, err := Decode("animals.json", []byte(`[{"id": ""}, {"name": "x"}, {"id": "lion"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 || records[0].ID != "lion" {
		t.Fatalf("expected only lion, got %#v", records)
	}
}

func TestDecodeRejectsEmptyDocument(t *testing.T) {
	if _, err := Decode("animals.json", []byte("  // nothing\n")); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestDecodeCompressed(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	zstdData := enc.EncodeAll([]byte(twoAnimals), nil)
	_ = enc.Close()

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write([]byte(twoAnimals)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	cases := map[string][]byte{
		"animals.json.zst":        zstdData,
		"animals.json.gz":         gz.Bytes(),
		"https://x/a.json.gz?v=2": gz.Bytes(),
		"animals.json":            []byte(twoAnimals),
	}
	for name, data := range cases {
		records, err := Decode(name, data)
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if len(records) != 2 {
			t.Fatalf("decode %s: expected 2 records, got %d", name, len(records))
		}
	}
}

func TestBundledRoundTripOrder(t *testing.T) {
	cat := NewLoader(Bundled(), nil).Load(context.Background(), "")
	want := []string{"lion", "elephant", "pingouin", "tigre", "girafe", "dauphin"}
	got := cat.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestLoadDataFileFromDisk(t *testing.T) {
	path := filepath.Join(testutil.RepoRoot(t), "internal", "catalogue", "data", "animals.json")
	cat := NewLoader(nil, nil).Load(context.Background(), path)
	if cat.Len() != 6 {
		t.Fatalf("expected 6 records from %s, got %d", path, cat.Len())
	}
}
