// SPDX-License-Identifier: MIT

// Package phase parses seismic phase names (P, PcP, SKKS, S(2K)S, P^410P,
// Pdiff10, PKiKP ...) into ordered sequences of typed path segments.
//
// 🚀 What is a phase name?
//
//	A compact grammar in which every letter is one leg of the ray:
//	  • p, s     up-going mantle legs leaving the source
//	  • P, S     mantle legs (P, SV or SH depending on polarity)
//	  • K        outer-core P leg
//	  • I, J     inner-core P and SV legs
//	  • c, i     reflections at the CMB and on the outer-core side of the ICB
//	  • ^d, vd   bottom-side and top-side reflections at depth d (km)
//	  • d        a bare depth is a transmission (conversion) at that depth
//	  • diff[a]  diffraction along the CMB over an extra angle a (degrees)
//	  • (nX)     X repeated n times, S(2K)S is SKKS
//
// ✨ Key features:
//   - regular-expression validity battery run before any parsing
//   - explicit transition table walker; unreachable transitions surface as
//     ErrInternalInconsistency instead of a silently wrong path
//   - PathPart closed sum type: Located, GeneralPart, Arbitrary,
//     LocatedDiffracted
//   - Phase is an immutable value, equal when the expanded name and the
//     polarity match
//
// ⚙️ Usage:
//
//	ph, err := phase.Parse("PKiKP")
//	if err != nil {
//	    // errors.Is(err, phase.ErrInvalidPhase)
//	}
//	for _, part := range ph.Parts() {
//	    switch v := part.(type) {
//	    case phase.GeneralPart:
//	        fmt.Println(v.Wave, v.Downward, v.Inner, v.Outer)
//	    case phase.Located:
//	        fmt.Println(v)
//	    }
//	}
package phase
