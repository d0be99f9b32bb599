// SPDX-License-Identifier: MIT

package structure

import (
	"fmt"
	"sync"
)

// Reference radii of PREM (Dziewonski & Anderson, 1981), km.
const (
	PREMRadius = 6371.0
	PREMCMB    = 3480.0
	PREMICB    = 1221.5
)

type premLayer struct {
	bottom, top float64
	rho, vp, vs []float64
}

// premIsotropic lists the isotropic PREM profiles. The 3 km ocean is
// replaced by the upper crust so that the surface is solid.
var premIsotropic = []premLayer{
	{0, 1221.5, []float64{13.0885, 0, -8.8381}, []float64{11.2622, 0, -6.3640}, []float64{3.6678, 0, -4.4475}},
	{1221.5, 3480, []float64{12.5815, -1.2638, -3.6426, -5.5281}, []float64{11.0487, -4.0362, 4.8023, -13.5732}, []float64{0}},
	{3480, 3630, []float64{7.9565, -6.4761, 5.5283, -3.0807}, []float64{15.3891, -5.3181, 5.5242, -2.5514}, []float64{6.9254, 1.4672, -2.0834, 0.9783}},
	{3630, 5600, []float64{7.9565, -6.4761, 5.5283, -3.0807}, []float64{24.9520, -40.4673, 51.4832, -26.6419}, []float64{11.1671, -13.7818, 17.4575, -9.2777}},
	{5600, 5701, []float64{7.9565, -6.4761, 5.5283, -3.0807}, []float64{29.2766, -23.6027, 5.5242, -2.5514}, []float64{22.3459, -17.2473, -2.0834, 0.9783}},
	{5701, 5771, []float64{5.3197, -1.4836}, []float64{19.0957, -9.8672}, []float64{9.9839, -4.9324}},
	{5771, 5971, []float64{11.2494, -8.0298}, []float64{39.7027, -32.6166}, []float64{22.3512, -18.5856}},
	{5971, 6151, []float64{7.1089, -3.8045}, []float64{20.3926, -12.2569}, []float64{8.9496, -4.4597}},
	{6151, 6291, []float64{2.6910, 0.6924}, []float64{4.1875, 3.9382}, []float64{2.1519, 2.3481}},
	{6291, 6346.6, []float64{2.6910, 0.6924}, []float64{4.1875, 3.9382}, []float64{2.1519, 2.3481}},
	{6346.6, 6356, []float64{2.900}, []float64{6.800}, []float64{3.900}},
	{6356, 6371, []float64{2.600}, []float64{5.800}, []float64{3.200}},
}

// Transversely isotropic profiles between 220 km depth and the Moho.
var (
	premVpv = []float64{0.8317, 7.2180}
	premVph = []float64{3.5908, 4.6172}
	premVsv = []float64{5.8582, -1.4678}
	premVsh = []float64{-1.0839, 5.7176}
	premEta = []float64{3.3687, -2.4778}
)

var (
	premOnce, isoPremOnce sync.Once
	prem, isoPrem         *PolynomialStructure
)

// PREM returns the transversely isotropic Preliminary Reference Earth Model.
func PREM() *PolynomialStructure {
	premOnce.Do(func() { prem = buildPREM("PREM", true) })
	return prem
}

// IsotropicPREM returns the isotropic version of PREM.
func IsotropicPREM() *PolynomialStructure {
	isoPremOnce.Do(func() { isoPrem = buildPREM("iPREM", false) })
	return isoPrem
}

func buildPREM(name string, anisotropic bool) *PolynomialStructure {
	layers := make([]PolynomialLayer, len(premIsotropic))
	for i, l := range premIsotropic {
		layers[i] = PolynomialLayer{
			Bottom: l.bottom, Top: l.top, Rho: l.rho,
			Vpv: l.vp, Vph: l.vp, Vsv: l.vs, Vsh: l.vs,
		}
		if anisotropic && l.bottom >= 6151 && l.top <= 6346.6 {
			layers[i].Vpv, layers[i].Vph = premVpv, premVph
			layers[i].Vsv, layers[i].Vsh = premVsv, premVsh
			layers[i].Eta = premEta
		}
	}
	s, err := NewPolynomialStructure(name, PREMRadius, PREMICB, PREMCMB, layers)
	if err != nil {
		panic("structure: built-in " + name + ": " + err.Error())
	}
	return s
}

// Named returns a built-in model by name ("prem", "iprem").
func Named(name string) (Structure, error) {
	switch name {
	case "prem", "PREM":
		return PREM(), nil
	case "iprem", "iPREM", "isoprem", "ISOPREM":
		return IsotropicPREM(), nil
	case "ak135", "AK135":
		return nil, fmt.Errorf("Named %q: no built-in coefficients, load the model from a file: %w", name, ErrUnknownModel)
	}
	return nil, fmt.Errorf("Named %q: %w", name, ErrUnknownModel)
}
