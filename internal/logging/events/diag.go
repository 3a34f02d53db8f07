package events

import "github.com/atomicstack/menagerie/internal/logging"

type DiagTracer struct{}

var Diag = DiagTracer{}

func (DiagTracer) Serve(addr string) {
	logging.Trace("diag.serve", map[string]interface{}{"addr": addr})
}

func (DiagTracer) Shutdown(addr string, err error) {
	payload := map[string]interface{}{"addr": addr}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("diag.shutdown", payload)
}
