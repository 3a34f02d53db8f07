package catalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/atomicstack/menagerie/internal/logging/events"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/jsonc"
)

// zstdDecoder is shared; zstd.Decoder is safe for concurrent DecodeAll.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("catalogue: zstd decoder initialization failed: " + err.Error())
	}
}

// Decode parses a catalogue document. name selects decompression by suffix
// (".zst" or ".gz"); the payload is JSONC holding an array of records.
// Records without an id are dropped.
func Decode(name string, data []byte) ([]Record, error) {
	raw, err := decompress(name, data)
	if err != nil {
		return nil, err
	}
	stripped := jsonc.ToJSON(raw)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, fmt.Errorf("decode %s: empty document", name)
	}

	var records []Record
	if err := json.Unmarshal(stripped, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	kept := records[:0]
	for i, r := range records {
		if strings.TrimSpace(r.ID) == "" {
			events.Catalogue.Dropped(i, "missing id")
			continue
		}
		kept = append(kept, r)
	}
	return kept, nil
}

func decompress(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(stripQuery(name))) {
	case ".zst":
		out, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress %s: %w", name, err)
		}
		return out, nil
	case ".gz":
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip open %s: %w", name, err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("gzip decompress %s: %w", name, err)
		}
		return out, nil
	default:
		return data, nil
	}
}

func stripQuery(name string) string {
	if idx := strings.IndexAny(name, "?#"); idx >= 0 {
		return name[:idx]
	}
	return name
}
