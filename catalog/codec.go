// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"time"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/raypath"
	"github.com/katalvlaran/raytime/structure"
	"github.com/katalvlaran/raytime/woodhouse"
)

// Blob layout:
//
//	magic   [4]byte "RTCT"
//	version uint16
//	hlen    uint32, then hlen bytes of gob(Header)
//	crc     uint32 (IEEE) of the compressed body
//	body    gzip(gob(body))
//
// Integers are big endian.
var magic = [4]byte{'R', 'T', 'C', 'T'}

// FormatVersion is bumped whenever the body layout changes.
const FormatVersion uint16 = 1

// maxHeaderLen bounds the header read before it is trusted.
const maxHeaderLen = 1 << 20

// Header identifies a persisted catalog without decoding its body.
type Header struct {
	Key       Key
	Structure string
	Raypaths  int
	Created   time.Time
}

type body struct {
	Raypaths                      []raypath.Snapshot
	Pdiff, SVdiff, SHdiff, KLimit float64
}

// Header returns the header Encode writes for c.
func (c *Catalog) Header() Header {
	return Header{Key: c.key, Structure: nameOf(c.Structure()), Raypaths: len(c.raypaths), Created: time.Now().UTC()}
}

// nameOf returns the structure name, or its fingerprint when unnamed.
func nameOf(s structure.Structure) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return s.Fingerprint()
}

// Encode writes c to w.
func Encode(w io.Writer, c *Catalog) error {
	var hdr bytes.Buffer
	if err := gob.NewEncoder(&hdr).Encode(c.Header()); err != nil {
		return fmt.Errorf("Encode: header: %w", err)
	}

	b := body{
		Raypaths: make([]raypath.Snapshot, len(c.raypaths)),
		Pdiff:    c.pdiff.RayParameter(),
		SVdiff:   c.svdiff.RayParameter(),
		SHdiff:   c.shdiff.RayParameter(),
		KLimit:   c.klimit.RayParameter(),
	}
	for i, rp := range c.raypaths {
		b.Raypaths[i] = rp.Snapshot()
	}
	var payload bytes.Buffer
	zw := gzip.NewWriter(&payload)
	if err := gob.NewEncoder(zw).Encode(b); err != nil {
		return fmt.Errorf("Encode: body: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("Encode: body: %w", err)
	}

	var prefix [4 + 2 + 4]byte
	copy(prefix[:4], magic[:])
	binary.BigEndian.PutUint16(prefix[4:6], FormatVersion)
	binary.BigEndian.PutUint32(prefix[6:10], uint32(hdr.Len()))
	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], crc32.ChecksumIEEE(payload.Bytes()))
	for _, chunk := range [][]byte{prefix[:], hdr.Bytes(), crc[:], payload.Bytes()} {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("Encode: %w", err)
		}
	}
	return nil
}

// Marshal is Encode into a byte slice.
func Marshal(c *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeHeader reads only the header of a blob.
func DecodeHeader(r io.Reader) (Header, error) {
	var prefix [4 + 2 + 4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Header{}, fmt.Errorf("DecodeHeader: %w: %v", ErrCorruptBlob, err)
	}
	if !bytes.Equal(prefix[:4], magic[:]) {
		return Header{}, fmt.Errorf("DecodeHeader: bad magic: %w", ErrCorruptBlob)
	}
	if v := binary.BigEndian.Uint16(prefix[4:6]); v != FormatVersion {
		return Header{}, fmt.Errorf("DecodeHeader: version %d, want %d: %w", v, FormatVersion, ErrVersionMismatch)
	}
	n := binary.BigEndian.Uint32(prefix[6:10])
	if n == 0 || n > maxHeaderLen {
		return Header{}, fmt.Errorf("DecodeHeader: header length %d: %w", n, ErrCorruptBlob)
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return Header{}, fmt.Errorf("DecodeHeader: %w: %v", ErrCorruptBlob, err)
	}
	var h Header
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&h); err != nil {
		return Header{}, fmt.Errorf("DecodeHeader: %w: %v", ErrCorruptBlob, err)
	}
	return h, nil
}

// Decode reads a blob and restores its raypaths on k and m. The blob must
// have been built on the same structure and mesh; the resolution is taken
// from the header.
func Decode(r io.Reader, k *woodhouse.Kernel, m *mesh.Mesh, opts ...Option) (*Catalog, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}
	if h.Key.Mesh != m.Key() {
		return nil, fmt.Errorf("Decode: %s: %w", h.Key, ErrKeyMismatch)
	}
	var crc [4]byte
	if _, err := io.ReadFull(r, crc[:]); err != nil {
		return nil, fmt.Errorf("Decode: %w: %v", ErrCorruptBlob, err)
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if crc32.ChecksumIEEE(payload) != binary.BigEndian.Uint32(crc[:]) {
		return nil, fmt.Errorf("Decode: checksum: %w", ErrCorruptBlob)
	}
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("Decode: %w: %v", ErrCorruptBlob, err)
	}
	defer zr.Close()
	var b body
	if err := gob.NewDecoder(zr).Decode(&b); err != nil {
		return nil, fmt.Errorf("Decode: %w: %v", ErrCorruptBlob, err)
	}
	if len(b.Raypaths) != h.Raypaths {
		return nil, fmt.Errorf("Decode: %d raypaths, header says %d: %w", len(b.Raypaths), h.Raypaths, ErrCorruptBlob)
	}

	c := &Catalog{key: h.Key, kernel: k, mesh: m, cfg: newSettings(opts)}
	c.raypaths = make([]*raypath.Raypath, len(b.Raypaths))
	for i, snap := range b.Raypaths {
		rp, err := raypath.Restore(snap, k, m)
		if err != nil {
			return nil, fmt.Errorf("Decode: raypath %d: %w", i, errors.Join(ErrCorruptBlob, err))
		}
		if i > 0 && !c.raypaths[i-1].Less(rp) {
			return nil, fmt.Errorf("Decode: raypaths out of order at %d: %w", i, ErrCorruptBlob)
		}
		c.raypaths[i] = rp
	}
	for _, sp := range []struct {
		dst **raypath.Raypath
		p   float64
	}{{&c.pdiff, b.Pdiff}, {&c.svdiff, b.SVdiff}, {&c.shdiff, b.SHdiff}, {&c.klimit, b.KLimit}} {
		if *sp.dst = c.find(sp.p); *sp.dst == nil {
			return nil, fmt.Errorf("Decode: grazing raypath p=%g missing: %w", sp.p, ErrCorruptBlob)
		}
	}
	return c, nil
}

// Unmarshal is Decode from a byte slice.
func Unmarshal(blob []byte, k *woodhouse.Kernel, m *mesh.Mesh, opts ...Option) (*Catalog, error) {
	return Decode(bytes.NewReader(blob), k, m, opts...)
}

// find returns the raypath with ray parameter exactly p.
func (c *Catalog) find(p float64) *raypath.Raypath {
	for _, rp := range c.raypaths {
		if rp.RayParameter() == p {
			return rp
		}
	}
	return nil
}
