// SPDX-License-Identifier: MIT

package structure

import "errors"

var (
	// ErrInvalidModel indicates a model description that cannot describe a
	// radially layered planet (unsorted layers, gaps, missing boundaries,
	// non-positive density...).
	ErrInvalidModel = errors.New("structure: invalid model")

	// ErrUnknownModel is returned by Named for an unregistered model name.
	ErrUnknownModel = errors.New("structure: unknown model")

	// ErrUnknownFormat is returned when a model file format cannot be inferred.
	ErrUnknownFormat = errors.New("structure: unknown model file format")
)
