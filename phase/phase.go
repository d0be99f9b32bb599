// SPDX-License-Identifier: MIT

package phase

import (
	"fmt"
	"strings"
)

// Phase is an immutable parsed phase name.
type Phase struct {
	name     string
	expanded string
	display  string
	psv      bool
	parts    []PathPart
}

// Key identifies a phase for equality and map lookups.
type Key struct {
	Expanded string
	PSV      bool
}

// Frequently used phases.
var (
	P      = MustParse("P")
	PcP    = MustParse("PcP")
	PKP    = MustParse("PKP")
	PKiKP  = MustParse("PKiKP")
	PKIKP  = MustParse("PKIKP")
	Pdiff  = MustParse("Pdiff")
	S      = MustParse("S")
	SV     = MustCreate("S", true)
	ScS    = MustParse("ScS")
	SVcS   = MustCreate("ScS", true)
	SKS    = MustParse("SKS")
	SKiKS  = MustParse("SKiKS")
	SKIKS  = MustParse("SKIKS")
	SKJKS  = MustParse("SKJKS")
	Sdiff  = MustParse("Sdiff")
	SHdiff = Sdiff
	SVdiff = MustCreate("Sdiff", true)
)

// Parse is Create(name, false).
func Parse(name string) (Phase, error) { return Create(name, false) }

// Create parses name. The phase is P-SV when the name contains P or K, or
// when forcePSV is set; otherwise S legs are SH.
//
// Stage 1: expand repetition groups.
// Stage 2: run the validity rules.
// Stage 3: walk the expanded name.
func Create(name string, forcePSV bool) (Phase, error) {
	expanded, err := expand(name)
	if err != nil {
		return Phase{}, fmt.Errorf("Create %q: %w", name, err)
	}
	if err = check(expanded); err != nil {
		return Phase{}, fmt.Errorf("Create %q: %w", name, err)
	}
	psv := forcePSV || strings.ContainsAny(name, "PK")
	parts, err := walk(expanded, psv)
	if err != nil {
		return Phase{}, fmt.Errorf("Create %q: %w", name, err)
	}
	return Phase{
		name:     name,
		expanded: expanded,
		display:  simplify(name),
		psv:      psv,
		parts:    parts,
	}, nil
}

// MustParse is Parse that panics on error. Use it for constants.
func MustParse(name string) Phase { return MustCreate(name, false) }

// MustCreate is Create that panics on error.
func MustCreate(name string, forcePSV bool) Phase {
	ph, err := Create(name, forcePSV)
	if err != nil {
		panic(err)
	}
	return ph
}

// Name returns the name as given, e.g. S(2K)S.
func (p Phase) Name() string { return p.name }

// ExpandedName returns the name with repetitions unrolled, e.g. SKKS.
func (p Phase) ExpandedName() string { return p.expanded }

// DisplayName returns the name without diffraction angles.
func (p Phase) DisplayName() string { return p.display }

// IsPSV reports P-SV (true) or SH (false) polarity.
func (p Phase) IsPSV() bool { return p.psv }

// IsDiffracted reports whether the phase contains a diffraction.
func (p Phase) IsDiffracted() bool { return strings.Contains(p.expanded, "diff") }

// IsZero reports whether p is the zero Phase.
func (p Phase) IsZero() bool { return p.parts == nil }

// Parts returns a copy of the path parts, starting with Emission.
func (p Phase) Parts() []PathPart {
	out := make([]PathPart, len(p.parts))
	copy(out, p.parts)
	return out
}

// Key returns the equality key of p.
func (p Phase) Key() Key { return Key{Expanded: p.expanded, PSV: p.psv} }

// Equal reports whether p and o have the same expanded name and polarity.
func (p Phase) Equal(o Phase) bool { return p.Key() == o.Key() }

// Diffraction returns the diffraction part, if any.
func (p Phase) Diffraction() (LocatedDiffracted, bool) {
	for _, part := range p.parts {
		if d, ok := part.(LocatedDiffracted); ok {
			return d, true
		}
	}
	return LocatedDiffracted{}, false
}

// String returns the name as given.
func (p Phase) String() string { return p.name }
