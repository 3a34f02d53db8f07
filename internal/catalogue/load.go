package catalogue

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/atomicstack/menagerie/internal/logging"
	"github.com/atomicstack/menagerie/internal/logging/events"
)

// DefaultLocation is the fixed relative path of the bundled catalogue.
const DefaultLocation = "data/animals.json"

//go:embed data/animals.json
var bundled embed.FS

// Bundled exposes the catalogue document compiled into the binary.
func Bundled() fs.FS {
	return bundled
}

// Loader reads the catalogue document once and decodes it.
type Loader struct {
	fsys   fs.FS
	client *http.Client
}

// NewLoader builds a loader. fsys serves the default location; a nil client
// falls back to http.DefaultClient.
func NewLoader(fsys fs.FS, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{fsys: fsys, client: client}
}

// Load fetches and decodes the catalogue at location. Any failure is logged
// and yields an empty catalogue so the browser stays usable.
func (l *Loader) Load(ctx context.Context, location string) Catalogue {
	name := location
	if strings.TrimSpace(name) == "" {
		name = DefaultLocation
	}
	events.Catalogue.Fetch(name)
	data, err := l.Fetch(ctx, location)
	if err != nil {
		logging.Error(fmt.Errorf("load catalogue: %w", err))
		events.Catalogue.LoadFailed(name, err)
		return Empty()
	}
	records, err := Decode(name, data)
	if err != nil {
		logging.Error(fmt.Errorf("load catalogue: %w", err))
		events.Catalogue.LoadFailed(name, err)
		return Empty()
	}
	cat := New(records)
	if dups := cat.Duplicates(); len(dups) > 0 {
		events.Catalogue.Duplicate(dups)
	}
	events.Catalogue.Loaded(name, cat.Len())
	return cat
}

// Fetch returns the raw document at location: the default location inside
// the loader's filesystem when empty, an HTTP(S) resource, or a file on disk.
func (l *Loader) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		if l.fsys == nil {
			return nil, fmt.Errorf("read %s: no bundled filesystem", DefaultLocation)
		}
		data, err := fs.ReadFile(l.fsys, DefaultLocation)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", DefaultLocation, err)
		}
		return data, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return l.fetchHTTP(ctx, location)
	default:
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}
