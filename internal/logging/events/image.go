package events

import "github.com/atomicstack/menagerie/internal/logging"

type ImageTracer struct{}

var Image = ImageTracer{}

func (ImageTracer) Request(id, ref string, seq int) {
	logging.Trace("image.request", map[string]interface{}{"id": id, "ref": ref, "seq": seq})
}

func (ImageTracer) CacheHit(ref, path string) {
	logging.Trace("image.cache.hit", map[string]interface{}{"ref": ref, "path": path})
}

func (ImageTracer) Loaded(id string, lines int) {
	logging.Trace("image.loaded", map[string]interface{}{"id": id, "lines": lines})
}

func (ImageTracer) Failed(id, ref string, err error) {
	payload := map[string]interface{}{"id": id, "ref": ref}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("image.failed", payload)
}

func (ImageTracer) Stale(id string, seq int) {
	logging.Trace("image.stale", map[string]interface{}{"id": id, "seq": seq})
}
