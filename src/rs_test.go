package redwood

// SPDX-FileCopyrightText: The Redwood Authors

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// presetNroots picks a parity count that is valid for every preset,
// including the tiny GF(4) code.
func presetNroots(p Preset) uint {
	if p.N() < 7 {
		return 2
	}
	return 4
}

func TestTableInvariants(t *testing.T) {
	for _, p := range Presets {
		t.Run(p.Name, func(t *testing.T) {
			var rs, err = NewPreset(p.Name, presetNroots(p))
			require.NoError(t, err)

			var nn = rs.N()
			assert.Equal(t, uint16(nn), rs.indexOf[0], "log(0) must be the A0 sentinel")
			assert.Equal(t, uint16(0), rs.alphaTo[nn], "alpha**-inf must be 0")

			for x := 1; x < nn; x++ {
				assert.Equal(t, uint16(x), rs.alphaTo[rs.indexOf[x]])
			}
			for i := 0; i < nn; i++ {
				assert.Equal(t, uint16(i), rs.indexOf[rs.alphaTo[i]])
			}

			assert.Equal(t, 1, (rs.Iprim()*rs.Prim())%nn)
			assert.NotEqual(t, uint16(nn), rs.genpoly[0], "genpoly[0] can never be zero")
		})
	}
}

func TestAlphaToEnumeratesField(t *testing.T) {
	var rs, err = NewPreset("RS255", 4)
	require.NoError(t, err)

	var seen = make(map[uint16]bool)
	for i := 0; i < rs.N(); i++ {
		seen[rs.alphaTo[i]] = true
	}
	assert.Len(t, seen, rs.N(), "alpha_to must enumerate every nonzero element once")
	assert.False(t, seen[0])
}

func TestNonPrimitivePolynomial(t *testing.T) {
	// x^8 + 1 factors as (x+1)^8, so its LFSR cycle is far short of 255.
	var rs, err = New(8, 0x101, 1, 1, 32)
	assert.Nil(t, rs)
	assert.ErrorIs(t, err, ErrNotPrimitive)
}

func TestBadParameters(t *testing.T) {
	var cases = []struct {
		name                              string
		symsize, gfpoly, fcr, prim, nroot uint
	}{
		{"symsize too small", 1, 0x3, 1, 1, 1},
		{"symsize too large", 17, 0x11d, 1, 1, 4},
		{"fcr out of field", 8, 0x11d, 256, 1, 4},
		{"prim zero", 8, 0x11d, 1, 0, 4},
		{"prim out of field", 8, 0x11d, 1, 256, 4},
		{"nroots out of field", 8, 0x11d, 1, 1, 256},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var _, err = New(c.symsize, c.gfpoly, c.fcr, c.prim, c.nroot)
			assert.ErrorIs(t, err, ErrBadParameter)
		})
	}
}

func TestModnn(t *testing.T) {
	var rs, err = NewPreset("RS255", 4)
	require.NoError(t, err)
	for x := 0; x <= 3*rs.N(); x++ {
		assert.Equal(t, x%rs.N(), rs.modnn(x))
	}

	var rs15, err15 = NewPreset("RS15", 4)
	require.NoError(t, err15)
	for x := 0; x <= 3*rs15.N(); x++ {
		assert.Equal(t, x%rs15.N(), rs15.modnn(x))
	}
}

func TestModnnRapid(t *testing.T) {
	var rs, err = NewPreset("RS1023", 8)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		var x = rapid.IntRange(0, 3*rs.N()).Draw(t, "x")
		assert.Equal(t, x%rs.N(), rs.modnn(x))
	})
}

func TestTablesShared(t *testing.T) {
	var a, err = New(8, 0x11d, 1, 1, 16)
	require.NoError(t, err)
	var b, err2 = New(8, 0x11d, 1, 1, 16)
	require.NoError(t, err2)
	assert.Same(t, a.gfTables, b.gfTables, "identical parameters must share tables")

	var c, err3 = New(8, 0x11d, 1, 1, 32)
	require.NoError(t, err3)
	assert.NotSame(t, a.gfTables, c.gfTables)
}

func TestTablesSharedConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	var codecs = make([]*RS, 8)
	for i := range codecs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var rs, err = New(10, 0x409, 1, 1, 20)
			assert.NoError(t, err)
			codecs[i] = rs
		}(i)
	}
	wg.Wait()
	for _, rs := range codecs[1:] {
		assert.Same(t, codecs[0].gfTables, rs.gfTables)
	}
}

func TestGenPolyIsCopy(t *testing.T) {
	var rs, err = NewPreset("RS255", 4)
	require.NoError(t, err)
	var g = rs.GenPoly()
	g[0] ^= 1
	assert.NotEqual(t, g[0], rs.genpoly[0])
}

func TestString(t *testing.T) {
	var rs, err = NewPreset("RS255", 32)
	require.NoError(t, err)
	assert.Equal(t, "RS(255,223)", rs.String())
}
