// SPDX-License-Identifier: MIT

package phase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rule is a named pattern whose match invalidates a phase name.
type rule struct {
	name string
	re   *regexp.Regexp
}

// RE2 has no possessive quantifiers: "maximal digits then a non-digit" is
// written with digits and '.' excluded from the trailing class.
var (
	repetition      = regexp.MustCompile(`\((\d*)([^\d]+?)\)`)
	nestParentheses = regexp.MustCompile(`\([^)]*\(|\)[^(]*\)`)
	diffAngle       = regexp.MustCompile(`diff[\d.]+`)

	pDiff      = regexp.MustCompile(`Pdiff\d*(\.\d+)?$`)
	sDiff      = regexp.MustCompile(`Sdiff\d*(\.\d+)?$`)
	finalRule  = rule{"final letter", regexp.MustCompile(`[^psSP]$`)}
	diffRule   = rule{"diffraction", regexp.MustCompile(`diff.+diff|P.*Pdiff|S.*Sdiff|diff.*[^\d]$`)}
	orderRules = []rule{
		{"symbol", regexp.MustCompile(`[abeghjklmnoqrtuwxyzABCDEFGHLMNOQRTUVWXYZ]|[^a-zA-Z0-9.^]`)},
		{"first letter", regexp.MustCompile(`^[^psSP]`)},
		{"p/s placement", regexp.MustCompile(`\D[ps]`)},
		{"c adjacency", regexp.MustCompile(`[^PS]c|c[^PS]|[^PSps\d][PS]c|c[PS][^\^\dPS]`)},
		{"c conversion", regexp.MustCompile(`PcS|ScP`)},
		{"K adjacency", regexp.MustCompile(`[^PSKiIJ]K[^PSKiIJ]|[^\dpsPS][PS]K|K[PS][^\^\dPS]`)},
		{"I/J adjacency", regexp.MustCompile(`[^\dIJK][IJ]|[IJ][^\^\dvIJK]`)},
		{"i adjacency", regexp.MustCompile(`[^Kd]i|i[^fK]|[^PSK]Ki|iK[^KPS]`)},
		{"number format", regexp.MustCompile(`\d\.(\D|$)|\.\d+\.|(^|[^\df])\.|[\^v](\D|$)`)},
		{"outer-core depth", regexp.MustCompile(`K[\d.]+[^K\d.]`)},
		{"mantle depth", regexp.MustCompile(`[pPsS]\d+(\.\d+)?[^pPsS\d.]`)},
		{"bottom-side depth", regexp.MustCompile(`[pPsS]\^\d+(\.\d+)?[^PS\d.]`)},
		{"top-side depth", regexp.MustCompile(`[ps]v|[PS]v\d+(\.\d+)?[^pPsS\d.]|[PS]v\d+(\.\d+)?[pPsS]c`)},
		{"core depth", regexp.MustCompile(`K[\^|v]\d+(\.\d+)?[^K\d.]|[IJ][\^|v]\d+(\.\d+)?[^IJ\d.]`)},
	}

	mantleP    = regexp.MustCompile(`^P$|^P[PS]|[psPS]P$|[psPS]P[PS]`)
	mantleS    = regexp.MustCompile(`^S$|^S[PS]|[psPS]S$|[psPS]S[PS]`)
	cmbP       = regexp.MustCompile(`Pc|cP`)
	cmbS       = regexp.MustCompile(`Sc|cS`)
	outercoreP = regexp.MustCompile(`PK|KP`)
	outercoreS = regexp.MustCompile(`SK|KS`)
	outercore  = regexp.MustCompile(`K\d|[PSK]K[\^PSK]`)
)

// expand unrolls (nX) groups: S(2K)S becomes SKKS, (X) is X.
func expand(name string) (string, error) {
	if nestParentheses.MatchString(name) {
		return "", fmt.Errorf("nested parentheses: %w", ErrInvalidPhase)
	}
	var err error
	out := repetition.ReplaceAllStringFunc(name, func(m string) string {
		g := repetition.FindStringSubmatch(m)
		n := 1
		if g[1] != "" {
			var e error
			if n, e = strconv.Atoi(g[1]); e != nil || n < 1 {
				err = fmt.Errorf("repetition %q: %w", m, ErrInvalidPhase)
				return m
			}
		}
		return strings.Repeat(g[2], n)
	})
	return out, err
}

// check runs the validity battery on an expanded name and names the first
// violated rule.
func check(expanded string) error {
	if expanded == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidPhase)
	}
	if diffRule.re.MatchString(expanded) {
		return violation(diffRule)
	}
	if !pDiff.MatchString(expanded) && !sDiff.MatchString(expanded) && finalRule.re.MatchString(expanded) {
		return violation(finalRule)
	}
	for _, r := range orderRules {
		if r.re.MatchString(expanded) {
			return violation(r)
		}
	}

	// Stage 2: mantle-only letters must not mix with core legs
	icb := strings.Contains(expanded, "Ki") || strings.Contains(expanded, "iK")
	innercoreP := strings.Contains(expanded, "I")
	innercoreS := strings.Contains(expanded, "J")
	if mantleP.MatchString(expanded) &&
		(cmbP.MatchString(expanded) || outercoreP.MatchString(expanded) || innercoreP) {
		return fmt.Errorf("rule mantle P consistency: %w", ErrInvalidPhase)
	}
	if mantleS.MatchString(expanded) &&
		(cmbS.MatchString(expanded) || outercoreS.MatchString(expanded) || innercoreS) {
		return fmt.Errorf("rule mantle S consistency: %w", ErrInvalidPhase)
	}
	if outercore.MatchString(expanded) && (innercoreP || icb || innercoreS) {
		return fmt.Errorf("rule outer-core consistency: %w", ErrInvalidPhase)
	}
	return nil
}

func violation(r rule) error {
	return fmt.Errorf("rule %s: %w", r.name, ErrInvalidPhase)
}

// IsValid reports whether name is accepted by the grammar.
func IsValid(name string) bool {
	expanded, err := expand(name)
	if err != nil {
		return false
	}
	return check(expanded) == nil
}

// simplify drops diffraction angles: Pdiff10 becomes Pdiff.
func simplify(name string) string {
	return diffAngle.ReplaceAllString(name, "diff")
}
