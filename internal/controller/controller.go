// Package controller turns activation events into selection transitions and
// re-renders the view after every accepted one.
package controller

import (
	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/diag"
	"github.com/atomicstack/menagerie/internal/logging"
	"github.com/atomicstack/menagerie/internal/logging/events"
	"github.com/atomicstack/menagerie/internal/metrics"
	"github.com/atomicstack/menagerie/internal/render"
	"github.com/atomicstack/menagerie/internal/selection"
)

const suggestionLimit = 3

// Options carries optional collaborators. Both fields may be nil.
type Options struct {
	Probe   *diag.Probe
	Metrics *metrics.Metrics
}

// Controller owns the catalogue and the selection state. It is not safe for
// concurrent use; activations are expected one at a time.
type Controller struct {
	cat     catalogue.Catalogue
	state   selection.State
	out     render.Writer
	view    render.View
	probe   *diag.Probe
	metrics *metrics.Metrics
}

// New builds a controller and immediately renders the unselected view to out.
func New(cat catalogue.Catalogue, out render.Writer, opts Options) *Controller {
	c := &Controller{
		cat:     cat,
		state:   selection.Unselected(),
		out:     out,
		probe:   opts.Probe,
		metrics: opts.Metrics,
	}
	c.metrics.SetRecords(cat.Len())
	c.render()
	return c
}

// OnActivate handles one activation of the button carrying id. It reports
// whether the selection was accepted. Rejected ids are logged and leave both
// the state and the rendered output untouched.
func (c *Controller) OnActivate(id string) bool {
	previous, _ := c.state.Selected()
	next, err := c.state.Select(c.cat, id)
	if err != nil {
		logging.Error(err)
		events.Selection.Reject(id, catalogue.Suggest(c.cat, id, suggestionLimit))
		c.metrics.IncRejection()
		return false
	}
	c.state = next
	events.Selection.Select(previous, id)
	c.metrics.IncActivation()
	c.render()
	return true
}

func (c *Controller) render() {
	c.view = render.Render(c.out, c.cat, c.state)
	c.probe.Publish(c.cat, c.state)
}

// View returns the most recently rendered projection.
func (c *Controller) View() render.View {
	return c.view
}

// State returns the current selection.
func (c *Controller) State() selection.State {
	return c.state
}

// Catalogue returns the catalogue the controller was built with.
func (c *Controller) Catalogue() catalogue.Catalogue {
	return c.cat
}

// Diagnostics returns the published snapshot, or diag.ErrDisabled when the
// controller was built without an enabled probe.
func (c *Controller) Diagnostics() (diag.Snapshot, error) {
	return c.probe.Snapshot()
}
