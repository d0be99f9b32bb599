// SPDX-License-Identifier: MIT

package phase

import (
	"fmt"
	"math"
	"strconv"
)

// state is the walker state, derived from the last emitted part.
type state uint8

const (
	stEmission state = iota
	stTransmission
	stTopside
	stBottomside
	stCMBPenetration
	stICBPenetration
	stArrived // the last leg reached the receiver, nothing may follow
)

// symbol is the class of the letter being consumed.
type symbol uint8

const (
	symUpgoing symbol = iota // p s
	symMantle                // P S
	symOuter                 // K
	symInner                 // I J
)

// modifier is what follows a letter: ^ or v flags, a depth, and the next
// letter (0 at the end of the name).
type modifier struct {
	hat, v bool
	depth  float64
	next   byte
}

func (m modifier) hasDepth() bool { return !math.IsNaN(m.depth) }

type transition struct {
	sym symbol
	st  state
}

type handler func(w *walker, c byte, m modifier) error

// transitions is the complete automaton. A pair absent from the table is an
// internal inconsistency.
var transitions = map[transition]handler{
	{symUpgoing, stEmission}:     (*walker).upgoing,
	{symUpgoing, stTransmission}: (*walker).upgoing,
	{symUpgoing, stTopside}:      (*walker).upgoing,

	{symMantle, stEmission}:       (*walker).mantleDown,
	{symMantle, stTransmission}:   (*walker).mantleAfterTransmission,
	{symMantle, stBottomside}:     (*walker).mantleDown,
	{symMantle, stTopside}:        (*walker).mantleUp,
	{symMantle, stCMBPenetration}: (*walker).mantleUp,

	{symInner, stICBPenetration}: (*walker).innerDown,
	{symInner, stBottomside}:     (*walker).innerDown,
	{symInner, stTopside}:        (*walker).innerUp,

	{symOuter, stCMBPenetration}: (*walker).outerFromMantle,
	{symOuter, stICBPenetration}: (*walker).outerFromInnerCore,
	{symOuter, stBottomside}:     (*walker).outerDown,
	{symOuter, stTopside}:        (*walker).outerUp,
}

type walker struct {
	name  string
	psv   bool
	i     int
	parts []PathPart
}

// walk converts a validated expanded name into path parts.
// Complexity: O(n) in the length of the name.
func walk(expanded string, psv bool) ([]PathPart, error) {
	w := &walker{name: expanded, psv: psv, parts: []PathPart{Emission}}
	for w.i = 0; w.i < len(w.name); w.i++ {
		c := w.name[w.i]
		if c == 'c' || c == 'i' {
			continue
		}
		sym, ok := classify(c)
		if !ok {
			return nil, w.inconsistent(c)
		}
		m, err := w.lookahead()
		if err != nil {
			return nil, err
		}
		st, err := w.state()
		if err != nil {
			return nil, err
		}
		h, ok := transitions[transition{sym, st}]
		if !ok {
			return nil, w.inconsistent(c)
		}
		if err := h(w, c, m); err != nil {
			return nil, err
		}
	}
	return w.parts, nil
}

func classify(c byte) (symbol, bool) {
	switch c {
	case 'p', 's':
		return symUpgoing, true
	case 'P', 'S':
		return symMantle, true
	case 'K':
		return symOuter, true
	case 'I', 'J':
		return symInner, true
	}
	return 0, false
}

// lookahead consumes the modifier after the current letter and leaves w.i
// on its last character.
func (w *walker) lookahead() (modifier, error) {
	m := modifier{depth: math.NaN()}
	j := w.i + 1
	start := j
scan:
	for ; j < len(w.name); j++ {
		switch ch := w.name[j]; {
		case ch == '^':
			m.hat = true
			start = j + 1
		case ch == 'v':
			m.v = true
			start = j + 1
		case ch == '.' || (ch >= '0' && ch <= '9'):
		default:
			break scan
		}
	}
	if j > start {
		d, err := strconv.ParseFloat(w.name[start:j], 64)
		if err != nil {
			return m, fmt.Errorf("depth %q: %w", w.name[start:j], ErrInvalidPhase)
		}
		m.depth = d
	}
	if j < len(w.name) {
		m.next = w.name[j]
	}
	w.i = j - 1
	return m, nil
}

func (w *walker) state() (state, error) {
	switch p := w.parts[len(w.parts)-1].(type) {
	case GeneralPart:
		return stArrived, nil
	case interactionPoint:
		switch p.kind() {
		case kindEmission:
			return stEmission, nil
		case kindTransmission:
			return stTransmission, nil
		case kindTopside:
			return stTopside, nil
		case kindBottomside:
			return stBottomside, nil
		case kindCMBPenetration:
			return stCMBPenetration, nil
		case kindICBPenetration:
			return stICBPenetration, nil
		}
	}
	return 0, fmt.Errorf("walker: dangling %v: %w", w.parts[len(w.parts)-1], ErrInternalInconsistency)
}

func (w *walker) add(parts ...PathPart) { w.parts = append(w.parts, parts...) }

func (w *walker) lastPoint() interactionPoint {
	p, _ := w.parts[len(w.parts)-1].(interactionPoint)
	return p
}

// previousLeg is the leg that ended at the last interaction point.
func (w *walker) previousLeg() (GeneralPart, error) {
	if len(w.parts) > 1 {
		if g, ok := w.parts[len(w.parts)-2].(GeneralPart); ok {
			return g, nil
		}
	}
	return GeneralPart{}, fmt.Errorf("walker at %d: no previous leg: %w", w.i, ErrInternalInconsistency)
}

func (w *walker) inconsistent(c byte) error {
	return fmt.Errorf("walker: %q at %d in %q: %w", c, w.i, w.name, ErrInternalInconsistency)
}

func (w *walker) mantleWave(c byte) WaveType {
	switch {
	case c == 'P' || c == 'p':
		return WaveP
	case w.psv:
		return WaveSV
	}
	return WaveSH
}

func innerWave(c byte) WaveType {
	if c == 'I' {
		return WaveI
	}
	return WaveJV
}

// finishAtSurface closes an up-going leg at the surface, reflecting when
// more letters follow.
func (w *walker) finishAtSurface(leg GeneralPart, m modifier, c byte) error {
	switch m.next {
	case 0, 'P', 'S':
		w.add(leg)
		if m.next != 0 {
			w.add(SurfaceReflection)
		}
		return nil
	}
	return w.inconsistent(c)
}

// upgoing handles p and s: a leg leaving the source (or a depth) upward.
func (w *walker) upgoing(c byte, m modifier) error {
	wave := w.mantleWave(c)
	inner, innerDepth := SeismicSource, 0.0
	if pt := w.lastPoint(); pt.kind() != kindEmission {
		prev, err := w.previousLeg()
		if err != nil {
			return err
		}
		inner = Other
		innerDepth = prev.InnerDepth
		if pt.kind() == kindTransmission {
			innerDepth = prev.OuterDepth
		}
	}
	if m.v {
		return w.inconsistent(c)
	}
	if m.hat || m.hasDepth() {
		w.add(GeneralPart{Wave: wave, InnerDepth: innerDepth, OuterDepth: m.depth, Inner: inner, Outer: Other})
		w.add(arbitrary(m))
		return nil
	}
	return w.finishAtSurface(GeneralPart{Wave: wave, InnerDepth: innerDepth, Inner: inner, Outer: EarthSurface}, m, c)
}

// mantleAfterTransmission continues a transmitted leg. A downward leg keeps
// going down; an up-going leg converted at depth keeps going up.
func (w *walker) mantleAfterTransmission(c byte, m modifier) error {
	prev, err := w.previousLeg()
	if err != nil {
		return err
	}
	if prev.Downward {
		return w.mantleDown(c, m)
	}
	return w.mantleUp(c, m)
}

// mantleDown handles P and S leaving the source, a transmission or a
// bottom-side reflection downward.
func (w *walker) mantleDown(c byte, m modifier) error {
	wave := w.mantleWave(c)
	pt := w.lastPoint()
	outer, outerDepth := SeismicSource, 0.0
	if pt.kind() != kindEmission {
		prev, err := w.previousLeg()
		if err != nil {
			return err
		}
		outer = pt.PassPoint()
		outerDepth = prev.OuterDepth
		if prev.Downward {
			outerDepth = prev.InnerDepth
		}
	}
	down := GeneralPart{Wave: wave, Downward: true, OuterDepth: outerDepth, Inner: BouncePoint, Outer: outer}
	up := GeneralPart{Wave: wave, Inner: BouncePoint}

	switch {
	case m.v:
		down.Inner, down.InnerDepth = Other, m.depth
		w.add(down, Arbitrary{TopsideReflection, m.depth})
		return nil
	case m.hat:
		up.Outer, up.OuterDepth = Other, m.depth
		w.add(down, Bounce, up, Arbitrary{BottomsideReflection, m.depth})
		return nil
	case m.hasDepth():
		if m.depth < outerDepth {
			return fmt.Errorf("transmission at %g km above %g km: %w", m.depth, outerDepth, ErrInvalidPhase)
		}
		switch m.next {
		case 'p', 's':
			up.Outer, up.OuterDepth = Other, m.depth
			w.add(down, Bounce, up, Arbitrary{Transmission, m.depth})
			return nil
		case 'P', 'S':
			down.Inner, down.InnerDepth = Other, m.depth
			w.add(down, Arbitrary{Transmission, m.depth})
			return nil
		}
		return w.inconsistent(c)
	}

	switch m.next {
	case 0, 'P', 'S':
		up.Outer = EarthSurface
		w.add(down, Bounce, up)
		if m.next != 0 {
			w.add(SurfaceReflection)
		}
		return nil
	case 'c', 'K':
		down.Inner = CMB
		w.add(down)
		if m.next == 'c' {
			w.add(ReflectionC)
		} else {
			w.add(CMBPenetration)
		}
		return nil
	case 'd':
		return w.diffraction(wave, down, up)
	}
	return w.inconsistent(c)
}

// diffraction reads diff[angle] after the current letter.
func (w *walker) diffraction(wave WaveType, down, up GeneralPart) error {
	start := w.i + 1
	if len(w.name) < start+4 || w.name[start:start+4] != "diff" {
		return w.inconsistent(w.name[start])
	}
	j := start + 4
	for j < len(w.name) && (w.name[j] == '.' || (w.name[j] >= '0' && w.name[j] <= '9')) {
		j++
	}
	angle := 0.0
	if j > start+4 {
		a, err := strconv.ParseFloat(w.name[start+4:j], 64)
		if err != nil {
			return fmt.Errorf("diffraction angle %q: %w", w.name[start+4:j], ErrInvalidPhase)
		}
		angle = a * math.Pi / 180
	}
	if j < len(w.name) {
		return fmt.Errorf("letters after a diffraction: %w", ErrInvalidPhase)
	}
	w.i = j - 1
	up.Outer = EarthSurface
	w.add(down, LocatedDiffracted{Wave: wave, Boundary: CMB, Angle: angle}, up)
	return nil
}

// mantleUp handles P and S leaving a top-side reflection or a penetration
// upward.
func (w *walker) mantleUp(c byte, m modifier) error {
	prev, err := w.previousLeg()
	if err != nil {
		return err
	}
	inner, innerDepth := w.lastPoint().PassPoint(), prev.InnerDepth
	if w.lastPoint().kind() == kindTransmission {
		innerDepth = prev.OuterDepth
	}
	leg := GeneralPart{Wave: w.mantleWave(c), InnerDepth: innerDepth, Inner: inner}
	switch {
	case m.v:
		return w.inconsistent(c)
	case m.hat || m.hasDepth():
		leg.Outer, leg.OuterDepth = Other, m.depth
		w.add(leg, arbitrary(m))
		return nil
	}
	leg.Outer = EarthSurface
	return w.finishAtSurface(leg, m, c)
}

// innerDown handles I and J entering the inner core or leaving an under-side
// reflection.
func (w *walker) innerDown(c byte, m modifier) error {
	wave := innerWave(c)
	pt := w.lastPoint()
	outerDepth := 0.0
	if pt.kind() == kindBottomside {
		prev, err := w.previousLeg()
		if err != nil {
			return err
		}
		outerDepth = prev.OuterDepth
	}
	down := GeneralPart{Wave: wave, Downward: true, OuterDepth: outerDepth, Inner: BouncePoint, Outer: pt.PassPoint()}
	up := GeneralPart{Wave: wave, Inner: BouncePoint}
	switch {
	case m.v:
		down.Inner, down.InnerDepth = Other, m.depth
		w.add(down, Arbitrary{TopsideReflection, m.depth})
		return nil
	case m.hat:
		up.Outer, up.OuterDepth = Other, m.depth
		w.add(down, Bounce, up, Arbitrary{BottomsideReflection, m.depth})
		return nil
	case m.hasDepth():
		return fmt.Errorf("transmission inside the inner core: %w", ErrInvalidPhase)
	}
	up.Outer = ICB
	switch m.next {
	case 'K':
		w.add(down, Bounce, up, ICBPenetration)
		return nil
	case 'I', 'J':
		w.add(down, Bounce, up, InnerCoreSideReflection)
		return nil
	}
	return w.inconsistent(c)
}

// innerUp handles I and J leaving a top-side reflection inside the inner
// core.
func (w *walker) innerUp(c byte, m modifier) error {
	prev, err := w.previousLeg()
	if err != nil {
		return err
	}
	leg := GeneralPart{Wave: innerWave(c), InnerDepth: prev.InnerDepth, Inner: w.lastPoint().PassPoint()}
	switch {
	case m.v:
		return w.inconsistent(c)
	case m.hat:
		leg.Outer, leg.OuterDepth = Other, m.depth
		w.add(leg, Arbitrary{BottomsideReflection, m.depth})
		return nil
	case m.hasDepth():
		return fmt.Errorf("transmission inside the inner core: %w", ErrInvalidPhase)
	}
	leg.Outer = ICB
	switch m.next {
	case 'K':
		w.add(leg, ICBPenetration)
		return nil
	case 'I', 'J':
		w.add(leg, InnerCoreSideReflection)
		return nil
	}
	return w.inconsistent(c)
}

// outerFromMantle handles K right after a CMB penetration.
func (w *walker) outerFromMantle(c byte, m modifier) error {
	down := GeneralPart{Wave: WaveK, Downward: true, Inner: BouncePoint, Outer: CMB}
	up := GeneralPart{Wave: WaveK, Inner: BouncePoint}
	switch {
	case m.v:
		down.Inner, down.InnerDepth = Other, m.depth
		w.add(down, Arbitrary{TopsideReflection, m.depth})
		return nil
	case m.hat:
		up.Outer, up.OuterDepth = Other, m.depth
		w.add(down, Bounce, up, Arbitrary{BottomsideReflection, m.depth})
		return nil
	case m.hasDepth():
		return fmt.Errorf("transmission inside the outer core: %w", ErrInvalidPhase)
	}
	return w.outerNext(c, m, down, up)
}

// outerDown handles K leaving an under-side reflection (KK, K^d).
func (w *walker) outerDown(c byte, m modifier) error {
	prev, err := w.previousLeg()
	if err != nil {
		return err
	}
	outer := w.lastPoint().PassPoint()
	down := GeneralPart{Wave: WaveK, Downward: true, OuterDepth: prev.OuterDepth, Inner: BouncePoint, Outer: outer}
	up := GeneralPart{Wave: WaveK, Inner: BouncePoint}
	switch {
	case m.v:
		down.Inner, down.InnerDepth = Other, m.depth
		w.add(down, Arbitrary{TopsideReflection, m.depth})
		return nil
	case m.hat:
		up.Outer, up.OuterDepth = Other, m.depth
		w.add(down, Bounce, up, Arbitrary{BottomsideReflection, m.depth})
		return nil
	case m.hasDepth():
		return fmt.Errorf("transmission inside the outer core: %w", ErrInvalidPhase)
	}
	return w.outerNext(c, m, down, up)
}

// outerNext emits a downward K leg that either bounces back to the CMB or
// reaches the ICB.
func (w *walker) outerNext(c byte, m modifier, down, up GeneralPart) error {
	switch m.next {
	case 'K', 'P', 'S':
		up.Outer = CMB
		w.add(down, Bounce, up)
		if m.next == 'K' {
			w.add(ReflectionK)
		} else {
			w.add(CMBPenetration)
		}
		return nil
	case 'i', 'I', 'J':
		down.Inner = ICB
		w.add(down)
		if m.next == 'i' {
			w.add(OuterCoreSideReflection)
		} else {
			w.add(ICBPenetration)
		}
		return nil
	}
	return w.inconsistent(c)
}

// outerFromInnerCore handles K right after leaving the inner core.
func (w *walker) outerFromInnerCore(c byte, m modifier) error {
	return w.outerUpFrom(c, m, GeneralPart{Wave: WaveK, Inner: ICB})
}

// outerUp handles K leaving a top-side reflection (the i of PKiKP).
func (w *walker) outerUp(c byte, m modifier) error {
	prev, err := w.previousLeg()
	if err != nil {
		return err
	}
	return w.outerUpFrom(c, m, GeneralPart{Wave: WaveK, InnerDepth: prev.InnerDepth, Inner: w.lastPoint().PassPoint()})
}

func (w *walker) outerUpFrom(c byte, m modifier, leg GeneralPart) error {
	switch {
	case m.v:
		return w.inconsistent(c)
	case m.hat:
		leg.Outer, leg.OuterDepth = Other, m.depth
		w.add(leg, Arbitrary{BottomsideReflection, m.depth})
		return nil
	case m.hasDepth():
		return fmt.Errorf("transmission inside the outer core: %w", ErrInvalidPhase)
	}
	leg.Outer = CMB
	switch m.next {
	case 'K':
		w.add(leg, ReflectionK)
		return nil
	case 'P', 'S':
		w.add(leg, CMBPenetration)
		return nil
	}
	return w.inconsistent(c)
}

func arbitrary(m modifier) Arbitrary {
	if m.hat {
		return Arbitrary{BottomsideReflection, m.depth}
	}
	return Arbitrary{Transmission, m.depth}
}
