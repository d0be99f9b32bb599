// SPDX-License-Identifier: MIT

package phase

import (
	"fmt"
	"math"
)

// WaveType is the propagation mode of one leg.
type WaveType uint8

const (
	WaveP  WaveType = 1 << iota // mantle P
	WaveSV                      // mantle SV
	WaveSH                      // mantle SH
	WaveK                       // outer-core P
	WaveI                       // inner-core P
	WaveJV                      // inner-core SV
)

// WaveTypes lists every wave type in flag order.
var WaveTypes = []WaveType{WaveP, WaveSV, WaveSH, WaveK, WaveI, WaveJV}

// String implements fmt.Stringer.
func (w WaveType) String() string {
	switch w {
	case WaveP:
		return "P"
	case WaveSV:
		return "SV"
	case WaveSH:
		return "SH"
	case WaveK:
		return "K"
	case WaveI:
		return "I"
	case WaveJV:
		return "JV"
	}
	return fmt.Sprintf("WaveType(%d)", uint8(w))
}

// PassPoint names where a leg starts or ends.
type PassPoint uint8

const (
	SeismicSource PassPoint = iota
	EarthSurface
	CMB
	ICB
	BouncePoint
	Other // an explicit depth carried by the leg
)

// String implements fmt.Stringer.
func (p PassPoint) String() string {
	switch p {
	case SeismicSource:
		return "source"
	case EarthSurface:
		return "surface"
	case CMB:
		return "CMB"
	case ICB:
		return "ICB"
	case BouncePoint:
		return "bounce"
	case Other:
		return "depth"
	}
	return "unknown"
}

// PathPart is one element of a phase: a leg, an interaction point or a
// diffraction. The set of implementations is closed.
type PathPart interface {
	fmt.Stringer
	pathPart()
}

// pointKind classifies interaction points for the walker.
type pointKind uint8

const (
	kindEmission pointKind = iota
	kindBounce
	kindTransmission
	kindTopside
	kindBottomside
	kindCMBPenetration
	kindICBPenetration
)

// Located is an interaction at a fixed pass point.
type Located uint8

const (
	Emission Located = iota + 1
	SurfaceReflection
	Bounce
	ReflectionC             // top-side reflection at the CMB (c)
	ReflectionK             // under-side reflection at the CMB from the core (KK)
	CMBPenetration          // P/S <-> K
	ICBPenetration          // K <-> I/J
	OuterCoreSideReflection // top-side reflection at the ICB (i)
	InnerCoreSideReflection // under-side reflection at the ICB from the inner core
)

func (Located) pathPart() {}

// PassPoint returns the location of the interaction.
func (l Located) PassPoint() PassPoint {
	switch l {
	case Emission:
		return SeismicSource
	case SurfaceReflection:
		return EarthSurface
	case Bounce:
		return BouncePoint
	case ReflectionC, ReflectionK, CMBPenetration:
		return CMB
	}
	return ICB
}

func (l Located) kind() pointKind {
	switch l {
	case Emission:
		return kindEmission
	case Bounce:
		return kindBounce
	case SurfaceReflection, ReflectionK, InnerCoreSideReflection:
		return kindBottomside
	case ReflectionC, OuterCoreSideReflection:
		return kindTopside
	case CMBPenetration:
		return kindCMBPenetration
	}
	return kindICBPenetration
}

// String implements fmt.Stringer.
func (l Located) String() string {
	switch l {
	case Emission:
		return "EMISSION"
	case SurfaceReflection:
		return "SURFACE_REFLECTION"
	case Bounce:
		return "BOUNCE"
	case ReflectionC:
		return "REFLECTION_C"
	case ReflectionK:
		return "REFLECTION_K"
	case CMBPenetration:
		return "CMB_PENETRATION"
	case ICBPenetration:
		return "ICB_PENETRATION"
	case OuterCoreSideReflection:
		return "OUTERCORE_SIDE_REFLECTION"
	case InnerCoreSideReflection:
		return "INNERCORE_SIDE_REFLECTION"
	}
	return "UNKNOWN"
}

// Interaction is the behaviour of an Arbitrary point.
type Interaction uint8

const (
	Transmission Interaction = iota + 1
	TopsideReflection
	BottomsideReflection
)

// Arbitrary is an interaction at a depth given in the phase name.
type Arbitrary struct {
	Interaction Interaction
	Depth       float64 // km
}

func (Arbitrary) pathPart() {}

// PassPoint of an arbitrary interaction is always Other.
func (Arbitrary) PassPoint() PassPoint { return Other }

func (a Arbitrary) kind() pointKind {
	switch a.Interaction {
	case TopsideReflection:
		return kindTopside
	case BottomsideReflection:
		return kindBottomside
	}
	return kindTransmission
}

// String implements fmt.Stringer.
func (a Arbitrary) String() string {
	switch a.Interaction {
	case TopsideReflection:
		return fmt.Sprintf("TOPSIDE_REFLECTION %g", a.Depth)
	case BottomsideReflection:
		return fmt.Sprintf("BOTTOMSIDE_REFLECTION %g", a.Depth)
	}
	return fmt.Sprintf("TRANSMISSION %g", a.Depth)
}

// GeneralPart is one monotonic leg. Depths are meaningful only for the
// side whose pass point is Other.
type GeneralPart struct {
	Wave       WaveType
	Downward   bool
	InnerDepth float64 // km
	OuterDepth float64 // km
	Inner      PassPoint
	Outer      PassPoint
}

func (GeneralPart) pathPart() {}

// String implements fmt.Stringer.
func (g GeneralPart) String() string {
	dir := "up"
	if g.Downward {
		dir = "down"
	}
	return fmt.Sprintf("%s %s %s(%g) - %s(%g)", g.Wave, dir, g.Inner, g.InnerDepth, g.Outer, g.OuterDepth)
}

// LocatedDiffracted is a diffraction along a boundary over Angle radians.
type LocatedDiffracted struct {
	Wave     WaveType
	Boundary PassPoint
	Angle    float64 // radians
}

func (LocatedDiffracted) pathPart() {}

// String implements fmt.Stringer.
func (d LocatedDiffracted) String() string {
	return fmt.Sprintf("%s DIFFRACTION at %s over %g deg", d.Wave, d.Boundary, d.Angle*180/math.Pi)
}

// interactionPoint is implemented by Located and Arbitrary.
type interactionPoint interface {
	PathPart
	PassPoint() PassPoint
	kind() pointKind
}
