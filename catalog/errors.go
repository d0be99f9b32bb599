// SPDX-License-Identifier: MIT

package catalog

import "errors"

var (
	// ErrInvalidInput is returned for out-of-range distances, event radii
	// or resolutions.
	ErrInvalidInput = errors.New("catalog: invalid input")

	// ErrCorruptBlob is returned when a persisted catalog cannot be read.
	ErrCorruptBlob = errors.New("catalog: corrupt blob")

	// ErrVersionMismatch is returned for blobs written by another format
	// version.
	ErrVersionMismatch = errors.New("catalog: blob version mismatch")

	// ErrKeyMismatch is returned when a blob was built for another
	// structure, mesh or resolution.
	ErrKeyMismatch = errors.New("catalog: key mismatch")

	// ErrNotFound is returned by stores for unknown names.
	ErrNotFound = errors.New("catalog: blob not found")
)
