package redwood

// SPDX-FileCopyrightText: 2002 Phil Karn, KA9Q
// SPDX-FileCopyrightText: The Redwood Authors

// Reed-Solomon codec over GF(2^m), 2 <= m <= 16, with configurable
// generator polynomial roots.  This started life as the RS(255,239)
// codec inside the FX.25 layer of the Dire Wolf soundmodem, which in
// turn is based on Phil Karn's general-purpose codecs.
//
// Phil Karn's original copyright notice:
/* Reed-Solomon codecs
 * for various block sizes and with random data and random error patterns
 *
 * Copyright 2002 Phil Karn, KA9Q
 * May be used under the terms of the GNU General Public License (GPL)
 */

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPrimitive means the field generator polynomial does not
	// generate the full multiplicative group of GF(2^m).
	ErrNotPrimitive = errors.New("redwood: field generator polynomial is not primitive")

	// ErrLength means a data/parity/erasure buffer does not fit the
	// shortened block layout for this codec.
	ErrLength = errors.New("redwood: block length out of range")

	// ErrBadParameter means the codec parameters themselves are out of
	// range (symbol size, fcr, prim or nroots).
	ErrBadParameter = errors.New("redwood: codec parameter out of range")
)

// gfTables holds the lookup tables shared by all codecs with identical
// parameters.  Never mutated after construction.
type gfTables struct {
	alphaTo []uint16 // index -> element, alphaTo[nn] == 0
	indexOf []uint16 // element -> index, indexOf[0] == nn (A0)
	genpoly []uint16 // generator polynomial, index form
	iprim   int      // multiplicative inverse of prim mod nn
}

// RS is an immutable Reed-Solomon codec instance.  A single instance
// may be used concurrently as long as each call gets its own buffers.
type RS struct {
	mm        uint // symbol size in bits
	nn        int  // 2^mm - 1; doubles as the A0 "log of zero" sentinel
	gfpoly    uint
	fcr       int
	prim      int
	nroots    int
	selfCheck bool
	*gfTables
}

// Option adjusts codec construction.
type Option func(*RS)

// WithSelfCheck makes Decode verify the erasure locator polynomial by
// root counting before running Berlekamp-Massey.  Diagnostic only; a
// failed check reports the block as uncorrectable.
func WithSelfCheck() Option {
	return func(rs *RS) { rs.selfCheck = true }
}

// New initializes a Reed-Solomon codec.
//   symsize = symbol size, bits (2-16)
//   gfpoly = field generator polynomial coefficients
//   fcr = first root of RS code generator polynomial, index form
//   prim = primitive element to generate polynomial roots
//   nroots = RS code generator polynomial degree (number of roots)
func New(symsize uint, gfpoly uint, fcr uint, prim uint, nroots uint, opts ...Option) (*RS, error) {
	if symsize < 2 || symsize > 16 {
		return nil, fmt.Errorf("%w: symsize %d", ErrBadParameter, symsize)
	}
	if fcr >= 1<<symsize {
		return nil, fmt.Errorf("%w: fcr %d", ErrBadParameter, fcr)
	}
	if prim == 0 || prim >= 1<<symsize {
		return nil, fmt.Errorf("%w: prim %d", ErrBadParameter, prim)
	}
	if nroots >= 1<<symsize {
		// Can't have more roots than symbol values!
		return nil, fmt.Errorf("%w: nroots %d", ErrBadParameter, nroots)
	}

	var rs = &RS{
		mm:     symsize,
		nn:     (1 << symsize) - 1,
		gfpoly: gfpoly,
		fcr:    int(fcr),
		prim:   int(prim),
		nroots: int(nroots),
	}
	for _, opt := range opts {
		opt(rs)
	}

	var tables, err = sharedTables(rs)
	if err != nil {
		return nil, err
	}
	rs.gfTables = tables
	return rs, nil
}

// step advances the field generator LFSR by alpha.
func (rs *RS) step(sr int) int {
	if sr == 0 {
		return 1
	}
	sr <<= 1
	if sr&(1<<rs.mm) != 0 {
		sr ^= int(rs.gfpoly)
	}
	return sr & rs.nn
}

// buildTables generates the Galois field lookup tables and the code
// generator polynomial.  Called once per parameter combination.
func (rs *RS) buildTables() (*gfTables, error) {
	var nn = rs.nn
	var t = &gfTables{
		alphaTo: make([]uint16, nn+1),
		indexOf: make([]uint16, nn+1),
	}

	t.indexOf[0] = uint16(nn) // log(zero) = -inf (A0)
	t.alphaTo[nn] = 0         // alpha**-inf = 0
	var sr = rs.step(0)
	for i := 0; i < nn; i++ {
		t.indexOf[sr] = uint16(i)
		t.alphaTo[i] = uint16(sr)
		sr = rs.step(sr)
	}
	if sr != int(t.alphaTo[0]) {
		// The LFSR did not cycle through all nn nonzero elements.
		return nil, ErrNotPrimitive
	}

	// Find prim-th root of 1, used in decoding.
	var iprim = 1
	for iprim%rs.prim != 0 {
		iprim += nn
	}
	t.iprim = iprim / rs.prim

	// Form RS code generator polynomial from its roots.
	t.genpoly = make([]uint16, rs.nroots+1)
	t.genpoly[0] = 1
	for i, root := 0, rs.fcr*rs.prim; i < rs.nroots; i, root = i+1, root+rs.prim {
		t.genpoly[i+1] = 1

		// Multiply genpoly[] by @**(root + x)
		for j := i; j > 0; j-- {
			if t.genpoly[j] != 0 {
				t.genpoly[j] = t.genpoly[j-1] ^ t.alphaTo[rs.modnn(int(t.indexOf[t.genpoly[j]])+root)]
			} else {
				t.genpoly[j] = t.genpoly[j-1]
			}
		}
		// genpoly[0] can never be zero
		t.genpoly[0] = t.alphaTo[rs.modnn(int(t.indexOf[t.genpoly[0]])+root)]
	}
	// Convert genpoly[] to index form for quicker encoding.
	for i := 0; i <= rs.nroots; i++ {
		t.genpoly[i] = t.indexOf[t.genpoly[i]]
	}

	return t, nil
}

// modnn reduces x modulo nn without division.  x must be non-negative.
// The codec also passes index products such as i*root that run to
// many multiples of nn; each pass folds the bits above mm back down,
// so these still settle in a few iterations.
func (rs *RS) modnn(x int) int {
	for x >= rs.nn {
		x -= rs.nn
		x = (x >> rs.mm) + (x & rs.nn)
	}
	return x
}

// Symsize returns the symbol width in bits.
func (rs *RS) Symsize() uint { return rs.mm }

// N returns the full block size 2^symsize - 1.
func (rs *RS) N() int { return rs.nn }

// Nroots returns the number of parity symbols.
func (rs *RS) Nroots() int { return rs.nroots }

// PayloadMax returns the largest data length a block can carry.
func (rs *RS) PayloadMax() int { return rs.nn - rs.nroots }

// FCR returns the first consecutive root index.
func (rs *RS) FCR() int { return rs.fcr }

// Prim returns the primitive element stride.
func (rs *RS) Prim() int { return rs.prim }

// Iprim returns the multiplicative inverse of prim modulo N.
func (rs *RS) Iprim() int { return rs.iprim }

// GFPoly returns the field generator polynomial.
func (rs *RS) GFPoly() uint { return rs.gfpoly }

// GenPoly returns a copy of the code generator polynomial in index form.
func (rs *RS) GenPoly() []uint16 {
	var g = make([]uint16, len(rs.genpoly))
	copy(g, rs.genpoly)
	return g
}

func (rs *RS) String() string {
	return fmt.Sprintf("RS(%d,%d)", rs.nn, rs.nn-rs.nroots)
}
