// SPDX-License-Identifier: MIT

package raypath

import "errors"

var (
	// ErrInvalidRayParameter is returned for negative or non-finite p.
	ErrInvalidRayParameter = errors.New("raypath: invalid ray parameter")

	// ErrStructureMismatch is returned when the kernel and the mesh
	// describe different structures.
	ErrStructureMismatch = errors.New("raypath: kernel and mesh structures differ")

	// ErrSnapshotMismatch is returned when a snapshot does not fit the mesh
	// it is restored on.
	ErrSnapshotMismatch = errors.New("raypath: snapshot does not match mesh")
)
