package events

import "github.com/atomicstack/menagerie/internal/logging"

type UITracer struct{}

type JumpTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Jump    = JumpTracer{}
	Command = CommandTracer{}
)

func (UITracer) Activate(id, source string) {
	logging.Trace("ui.activate", map[string]interface{}{"id": id, "source": source})
}

func (UITracer) Focus(cursor int) {
	logging.Trace("ui.focus", map[string]interface{}{"cursor": cursor})
}

func (UITracer) Layout(width, height int, side bool) {
	logging.Trace("ui.layout", map[string]interface{}{"width": width, "height": height, "side": side})
}

func (JumpTracer) Query(query string, cursor int) {
	logging.Trace("jump.query", map[string]interface{}{"query": query, "cursor": cursor})
}

func (JumpTracer) Cleared() {
	logging.Trace("jump.clear", nil)
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
