// SPDX-License-Identifier: MIT

package polyfit

import "errors"

var (
	// ErrInvalidDimensions is returned for non-positive matrix shapes.
	ErrInvalidDimensions = errors.New("polyfit: dimensions must be > 0")

	// ErrIndexOutOfBounds is returned by Dense accessors.
	ErrIndexOutOfBounds = errors.New("polyfit: index out of bounds")

	// ErrTooFewPoints is returned when there are not more points than the
	// degree, or x and y differ in length.
	ErrTooFewPoints = errors.New("polyfit: too few points for degree")

	// ErrSingular is returned when the abscissae do not determine a unique
	// polynomial (repeated or non-finite x).
	ErrSingular = errors.New("polyfit: singular system")
)
