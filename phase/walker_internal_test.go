package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWalk_Inconsistent verifies that transitions outside the table are
// reported as internal errors, not as invalid input.
func TestWalk_Inconsistent(t *testing.T) {
	for _, name := range []string{"PX", "PIP", "KP"} {
		_, err := walk(name, true)
		assert.ErrorIs(t, err, ErrInternalInconsistency, name)
		assert.NotErrorIs(t, err, ErrInvalidPhase, name)
	}
}

// TestTransitions_Exhaustive checks that every valid name only visits
// table entries.
func TestTransitions_Exhaustive(t *testing.T) {
	for _, name := range []string{"PKKP", "SKJKS", "PKIIKP", "ScSScS", "pPv410P"} {
		expanded, err := expand(name)
		assert.NoError(t, err)
		if check(expanded) != nil {
			continue
		}
		_, err = walk(expanded, true)
		assert.NoError(t, err, name)
	}
}
