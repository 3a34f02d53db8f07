// Package artwork turns an animal's image reference into terminal art made of
// 24-bit coloured half blocks.
package artwork

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/menagerie/internal/logging"
	"github.com/atomicstack/menagerie/internal/logging/events"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"github.com/zeebo/blake3"
)

// maxImageBytes bounds a single download.
const maxImageBytes = 16 << 20

// ErrNoImage is returned for an empty reference.
var ErrNoImage = errors.New("no image reference")

// Renderer fetches, scales and converts images. The zero value fetches with
// http.DefaultClient and does not cache.
type Renderer struct {
	client   *http.Client
	cacheDir string
}

// New builds a renderer caching under cacheDir/art. An empty cacheDir
// disables caching.
func New(cacheDir string, client *http.Client) *Renderer {
	if client == nil {
		client = http.DefaultClient
	}
	dir := ""
	if cacheDir != "" {
		dir = filepath.Join(cacheDir, "art")
	}
	return &Renderer{client: client, cacheDir: dir}
}

// Render returns art for ref that is width cells wide. height is the number
// of text rows; zero derives it from the image's aspect ratio.
func (r *Renderer) Render(ctx context.Context, ref string, width, height int) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoImage
	}
	if width <= 0 {
		return "", fmt.Errorf("render %s: width must be positive, got %d", ref, width)
	}

	cachePath := r.cachePath(ref, width, height)
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			events.Image.CacheHit(ref, cachePath)
			return string(data), nil
		}
	}

	data, err := r.fetch(ctx, ref)
	if err != nil {
		return "", err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", ref, err)
	}
	art := ToANSI(img, width, height)

	if cachePath != "" {
		if err := writeCache(cachePath, art); err != nil {
			logging.Error(err)
		}
	}
	return art, nil
}

func (r *Renderer) cachePath(ref string, width, height int) string {
	if r == nil || r.cacheDir == "" {
		return ""
	}
	sum := blake3.Sum256([]byte(ref + "|" + strconv.Itoa(width) + "|" + strconv.Itoa(height)))
	return filepath.Join(r.cacheDir, hex.EncodeToString(sum[:])+".ansi")
}

func writeCache(path, art string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create art cache: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(art), 0o644); err != nil {
		return fmt.Errorf("write art cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write art cache: %w", err)
	}
	return nil
}

func (r *Renderer) fetch(ctx context.Context, ref string) ([]byte, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		path := strings.TrimPrefix(ref, "file://")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, nil
	}

	client := http.DefaultClient
	if r != nil && r.client != nil {
		client = r.client
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", ref, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", ref, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", ref, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// ToANSI converts img to width x height cells of '▀' with the upper pixel
// pair as foreground and the lower pair as background. A non-positive
// height keeps the image's aspect ratio.
func ToANSI(img image.Image, width, height int) string {
	if width <= 0 {
		return ""
	}
	if height <= 0 {
		height = rowsFor(img.Bounds(), width)
	}
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var b strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			top := average(colourAt(resized, x, y), colourAt(resized, x+1, y))
			bottom := average(colourAt(resized, x, y+1), colourAt(resized, x+1, y+1))
			tr, tg, tb := top.RGB255()
			br, bg, bb := bottom.RGB255()
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		b.WriteString("\x1b[0m\n")
	}
	return b.String()
}

// rowsFor keeps the aspect ratio; a terminal cell is about twice as tall as
// it is wide, and each row holds two pixel rows.
func rowsFor(bounds image.Rectangle, width int) int {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return 1
	}
	rows := (width*h + w) / (2 * w)
	if rows < 1 {
		rows = 1
	}
	return rows
}

func colourAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	px := x + bounds.Min.X
	py := y + bounds.Min.Y
	if px >= bounds.Max.X || py >= bounds.Max.Y {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(px, py))
	if !ok {
		return colorful.Color{}
	}
	return c
}

func average(colours ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colours {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colours))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

