package redwood

// SPDX-FileCopyrightText: The Redwood Authors

import (
	"fmt"
	"strings"
)

// Preset is a named field parameter bundle.  The number of parity
// symbols is still chosen per codec.
type Preset struct {
	Name    string
	Symsize uint // symbol size, bits
	GFPoly  uint // field generator polynomial coefficients
	FCR     uint // first root of code generator polynomial, index form
	Prim    uint // primitive element to generate polynomial roots
}

// N returns the full block size for the preset's field.
func (p Preset) N() int { return (1 << p.Symsize) - 1 }

// Presets lists the conventional parameter bundles: one per field size
// using the lowest-weight primitive polynomial, plus the CCSDS
// telemetry code's generator roots (fcr 112, prim 11).  Symbols stay
// in the conventional basis; no dual-basis conversion is done.
var Presets = []Preset{
	{"RS3", 2, 0x7, 1, 1},
	{"RS7", 3, 0xb, 1, 1},
	{"RS15", 4, 0x13, 1, 1},
	{"RS31", 5, 0x25, 1, 1},
	{"RS63", 6, 0x43, 1, 1},
	{"RS127", 7, 0x89, 1, 1},
	{"RS255", 8, 0x11d, 1, 1},
	{"CCSDS", 8, 0x187, 112, 11},
	{"RS511", 9, 0x211, 1, 1},
	{"RS1023", 10, 0x409, 1, 1},
	{"RS2047", 11, 0x805, 1, 1},
	{"RS4095", 12, 0x1053, 1, 1},
	{"RS8191", 13, 0x201b, 1, 1},
	{"RS16383", 14, 0x4443, 1, 1},
	{"RS32767", 15, 0x8003, 1, 1},
	{"RS65535", 16, 0x1100b, 1, 1},
}

// LookupPreset finds a preset by name, case-insensitively.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// NewPreset initializes a codec from a named preset with the given
// number of parity symbols.
func NewPreset(name string, nroots uint, opts ...Option) (*RS, error) {
	var p, ok = LookupPreset(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrBadParameter, name)
	}
	return New(p.Symsize, p.GFPoly, p.FCR, p.Prim, nroots, opts...)
}
