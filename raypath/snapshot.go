// SPDX-License-Identifier: MIT

package raypath

import (
	"fmt"
	"math"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/structure"
	"github.com/katalvlaran/raytime/woodhouse"
)

// Snapshot is the persisted form of a computed raypath. Memoized partial
// integrals are not kept; they are recomputed deterministically.
type Snapshot struct {
	P     float64
	Waves []WaveSnapshot
}

// WaveSnapshot is the persisted state of one wave type.
type WaveSnapshot struct {
	Turning float64
	State   uint8
	Lowest  float64
	ZoneTop float64
	Zone    Integral
	Cum     []Integral
}

// Snapshot computes the raypath if needed and returns its state.
func (rp *Raypath) Snapshot() Snapshot {
	rp.Compute()
	s := Snapshot{P: rp.p, Waves: make([]WaveSnapshot, len(rp.waves))}
	for i := range rp.waves {
		ws := &rp.waves[i]
		s.Waves[i] = WaveSnapshot{
			Turning: ws.turning,
			State:   uint8(ws.state),
			Lowest:  ws.lowest,
			ZoneTop: ws.zoneTop,
			Zone:    ws.zone,
			Cum:     append([]Integral(nil), ws.cum...),
		}
	}
	return s
}

// Restore rebuilds a computed raypath from a snapshot taken on the same
// structure and mesh.
func Restore(snap Snapshot, k *woodhouse.Kernel, m *mesh.Mesh) (*Raypath, error) {
	rp, err := New(snap.P, k, m)
	if err != nil {
		return nil, fmt.Errorf("Restore: %w", err)
	}
	if len(snap.Waves) != len(rp.waves) {
		return nil, fmt.Errorf("Restore: %d waves: %w", len(snap.Waves), ErrSnapshotMismatch)
	}
	for i, w := range phase.WaveTypes {
		ws := rp.geometry(w)
		in := snap.Waves[i]
		ws.turning, ws.state = in.Turning, structure.TurningState(in.State)
		if ws.state == structure.Evanescent {
			continue
		}
		if len(in.Cum) != len(ws.layers) || math.IsNaN(in.Lowest) {
			return nil, fmt.Errorf("Restore: wave %s: %w", w, ErrSnapshotMismatch)
		}
		ws.lowest, ws.zoneTop, ws.zone = in.Lowest, in.ZoneTop, in.Zone
		ws.home = ws.layerOf(ws.lowest)
		ws.zoneK = ws.layerOf(ws.zoneTop)
		ws.cum = append([]Integral(nil), in.Cum...)
	}
	rp.once.Do(func() {})
	return rp, nil
}
