// SPDX-License-Identifier: MIT

package structure

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a model file.
type Format uint8

const (
	FormatTOML Format = iota + 1
	FormatYAML
)

// Model kinds accepted in a model file.
const (
	KindPolynomial = "polynomial"
	KindTabulated  = "tabulated"
)

// ModelFile is the on-disk description of a user model. Polynomial models
// fill Layers, tabulated models fill Rows.
type ModelFile struct {
	Name   string      `toml:"name" yaml:"name"`
	Kind   string      `toml:"kind" yaml:"kind"`
	Radius float64     `toml:"radius" yaml:"radius"`
	ICB    float64     `toml:"icb" yaml:"icb"`
	CMB    float64     `toml:"cmb" yaml:"cmb"`
	Layers []LayerFile `toml:"layers" yaml:"layers"`
	Rows   []Row       `toml:"rows" yaml:"rows"`
}

// LayerFile is one polynomial layer of a ModelFile. Vp and Vs are shortcuts
// for isotropic layers and are used when the split velocities are absent.
type LayerFile struct {
	Bottom float64   `toml:"bottom" yaml:"bottom"`
	Top    float64   `toml:"top" yaml:"top"`
	Rho    []float64 `toml:"rho" yaml:"rho"`
	Vp     []float64 `toml:"vp" yaml:"vp"`
	Vs     []float64 `toml:"vs" yaml:"vs"`
	Vpv    []float64 `toml:"vpv" yaml:"vpv"`
	Vph    []float64 `toml:"vph" yaml:"vph"`
	Vsv    []float64 `toml:"vsv" yaml:"vsv"`
	Vsh    []float64 `toml:"vsh" yaml:"vsh"`
	Eta    []float64 `toml:"eta" yaml:"eta"`
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("FormatOf %q: %w", path, ErrUnknownFormat)
}

// LoadFile reads a model file whose format is inferred from its extension.
func LoadFile(path string) (Structure, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	return Load(bytes.NewReader(data), f)
}

// Load decodes a model description and builds the structure it describes.
func Load(r io.Reader, f Format) (Structure, error) {
	var mf ModelFile
	switch f {
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(&mf); err != nil {
			return nil, fmt.Errorf("Load: toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&mf); err != nil {
			return nil, fmt.Errorf("Load: yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("Load: format %d: %w", f, ErrUnknownFormat)
	}
	return mf.Build()
}

// Build constructs the structure described by mf.
func (mf ModelFile) Build() (Structure, error) {
	switch mf.Kind {
	case KindTabulated:
		return NewTabulatedStructure(mf.Name, mf.ICB, mf.CMB, mf.Rows)
	case KindPolynomial, "":
		layers := make([]PolynomialLayer, len(mf.Layers))
		for i, l := range mf.Layers {
			layers[i] = PolynomialLayer{
				Bottom: l.Bottom, Top: l.Top, Rho: l.Rho,
				Vpv: pick(l.Vpv, l.Vp), Vph: pick(l.Vph, l.Vp),
				Vsv: pick(l.Vsv, l.Vs), Vsh: pick(l.Vsh, l.Vs),
				Eta: l.Eta,
			}
		}
		return NewPolynomialStructure(mf.Name, mf.Radius, mf.ICB, mf.CMB, layers)
	}
	return nil, fmt.Errorf("Build: kind %q: %w", mf.Kind, ErrInvalidModel)
}

func pick(v, fallback []float64) []float64 {
	if len(v) > 0 {
		return v
	}
	return fallback
}

// Resolve returns the built-in model called nameOrPath, or loads it from a
// file when no built-in matches.
func Resolve(nameOrPath string) (Structure, error) {
	if s, err := Named(nameOrPath); err == nil {
		return s, nil
	}
	return LoadFile(nameOrPath)
}
