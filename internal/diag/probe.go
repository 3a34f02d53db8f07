// Package diag exposes a read-only view of the browser's catalogue and
// selection for development builds.
//
// The probe is constructed with an explicit enabled flag. When disabled it
// stores nothing and every read returns ErrDisabled, so production builds
// expose no introspection surface.
package diag

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/selection"
)

// ErrDisabled is returned by reads on a disabled probe.
var ErrDisabled = errors.New("diagnostics disabled")

// Snapshot is the published view of the browser state.
type Snapshot struct {
	Environment string             `json:"environment"`
	Records     []catalogue.Record `json:"records"`
	Selected    bool               `json:"selected"`
	SelectedID  string             `json:"selected_id,omitempty"`
	State       string             `json:"state"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Probe holds the most recent snapshot. Publish runs on the UI goroutine;
// Snapshot may be called from any goroutine.
type Probe struct {
	enabled     bool
	environment string
	now         func() time.Time
	current     atomic.Pointer[Snapshot]
}

// NewProbe builds a probe. environment is reported verbatim in snapshots.
func NewProbe(enabled bool, environment string) *Probe {
	return &Probe{enabled: enabled, environment: environment, now: time.Now}
}

// Enabled reports whether the probe exposes anything. A nil probe is
// disabled.
func (p *Probe) Enabled() bool {
	return p != nil && p.enabled
}

// Publish replaces the snapshot with the given catalogue and selection.
func (p *Probe) Publish(cat catalogue.Catalogue, st selection.State) {
	if !p.Enabled() {
		return
	}
	id, ok := st.Selected()
	snap := &Snapshot{
		Environment: p.environment,
		Records:     cat.Records(),
		Selected:    ok,
		SelectedID:  id,
		State:       st.String(),
		UpdatedAt:   p.now().UTC(),
	}
	p.current.Store(snap)
}

// Snapshot returns a copy of the latest published snapshot.
func (p *Probe) Snapshot() (Snapshot, error) {
	if !p.Enabled() {
		return Snapshot{}, ErrDisabled
	}
	snap := p.current.Load()
	if snap == nil {
		return Snapshot{Environment: p.environment, Records: []catalogue.Record{}, State: selection.Unselected().String()}, nil
	}
	out := *snap
	out.Records = append([]catalogue.Record(nil), snap.Records...)
	return out, nil
}
