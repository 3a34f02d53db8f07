package events

import "github.com/atomicstack/menagerie/internal/logging"

type CatalogueTracer struct{}

var Catalogue = CatalogueTracer{}

func (CatalogueTracer) Fetch(location string) {
	logging.Trace("catalogue.fetch", map[string]interface{}{"location": location})
}

func (CatalogueTracer) Loaded(location string, records int) {
	logging.Trace("catalogue.loaded", map[string]interface{}{"location": location, "records": records})
}

func (CatalogueTracer) LoadFailed(location string, err error) {
	payload := map[string]interface{}{"location": location}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("catalogue.load.failed", payload)
}

func (CatalogueTracer) Dropped(index int, reason string) {
	logging.Trace("catalogue.record.dropped", map[string]interface{}{"index": index, "reason": reason})
}

func (CatalogueTracer) Duplicate(ids []string) {
	logging.Trace("catalogue.duplicate", map[string]interface{}{"ids": ids})
}
