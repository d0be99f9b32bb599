// SPDX-License-Identifier: MIT

package mesh

import "errors"

// ErrInvalidOption is returned when a combination of options cannot produce
// a usable grid.
var ErrInvalidOption = errors.New("mesh: invalid option")
