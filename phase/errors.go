// SPDX-License-Identifier: MIT

package phase

import "errors"

var (
	// ErrInvalidPhase is returned for names rejected by the grammar.
	ErrInvalidPhase = errors.New("phase: invalid phase name")

	// ErrInternalInconsistency signals that the walker reached a transition
	// that the validity rules should have excluded. It points at a bug in
	// the grammar, never at user input.
	ErrInternalInconsistency = errors.New("phase: internal inconsistency")
)
