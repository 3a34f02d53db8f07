package events

import "github.com/atomicstack/menagerie/internal/logging"

type SelectionTracer struct{}

type RenderTracer struct{}

var (
	Selection = SelectionTracer{}
	Render    = RenderTracer{}
)

func (SelectionTracer) Select(previous, id string) {
	logging.Trace("selection.select", map[string]interface{}{"previous": previous, "id": id})
}

func (SelectionTracer) Reject(id string, suggestions []string) {
	logging.Trace("selection.reject", map[string]interface{}{"id": id, "suggestions": suggestions})
}

func (RenderTracer) Buttons(mount string, count, active int) {
	logging.Trace("render.buttons", map[string]interface{}{"mount": mount, "count": count, "active": active})
}

func (RenderTracer) Detail(mount, kind, id string) {
	logging.Trace("render.detail", map[string]interface{}{"mount": mount, "kind": kind, "id": id})
}
