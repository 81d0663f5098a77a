package redwood

// SPDX-FileCopyrightText: The Redwood Authors

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamOpts(t *testing.T, preset string, parity uint, chunk int) rsCodeOpts {
	t.Helper()
	var rs, err = NewPreset(preset, parity)
	require.NoError(t, err)
	return rsCodeOpts{rs: rs, chunk: chunk}
}

func TestStreamRoundTrip(t *testing.T) {
	var opts = streamOpts(t, "RS255", 16, 32)

	var rng = rand.New(rand.NewSource(21))
	var payload = make([]byte, 200) // not a multiple of the chunk size
	rng.Read(payload)

	var encoded bytes.Buffer
	var n, err = rsCodeEncode(opts, bytes.NewReader(payload), &encoded)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)

	// Six full 32-byte chunks plus a 8-byte tail, 16 parity each.
	assert.Equal(t, len(payload)+7*16, encoded.Len())

	var decoded bytes.Buffer
	_, err = rsCodeDecode(opts, bytes.NewReader(encoded.Bytes()), &decoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded.Bytes())
}

func TestStreamRoundTripWithErrors(t *testing.T) {
	var opts = streamOpts(t, "RS255", 16, 64)

	var rng = rand.New(rand.NewSource(22))
	var payload = make([]byte, 256)
	rng.Read(payload)

	var encoded bytes.Buffer
	var _, err = rsCodeEncode(opts, bytes.NewReader(payload), &encoded)
	require.NoError(t, err)

	// Corrupt a few bytes in each coded chunk, within correction range.
	var coded = encoded.Bytes()
	var stride = 64 + 16
	for off := 0; off+stride <= len(coded); off += stride {
		for _, at := range []int{3, 17, 70} {
			coded[off+at] ^= 0x55
		}
	}

	var decoded bytes.Buffer
	_, err = rsCodeDecode(opts, bytes.NewReader(coded), &decoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded.Bytes())
}

func TestStreamRoundTripWideSymbols(t *testing.T) {
	var opts = streamOpts(t, "RS1023", 8, 40)

	var rng = rand.New(rand.NewSource(23))
	var syms = make([]uint16, 100)
	for i := range syms {
		syms[i] = uint16(rng.Intn(1024))
	}
	var payload = make([]byte, 2*len(syms))
	var _, perr = PackSymbols(payload, syms, 10)
	require.NoError(t, perr)

	var encoded bytes.Buffer
	var _, err = rsCodeEncode(opts, bytes.NewReader(payload), &encoded)
	require.NoError(t, err)

	var decoded bytes.Buffer
	_, err = rsCodeDecode(opts, bytes.NewReader(encoded.Bytes()), &decoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded.Bytes())
}

func TestStreamDecodeUncorrectable(t *testing.T) {
	var opts = streamOpts(t, "RS255", 4, 32)

	// Three errors against two-symbol correction capacity.  Some
	// patterns miscorrect into a neighboring codeword instead of
	// failing, so try a batch: at least one must be rejected, and a
	// miscorrection can never restore the original payload.
	var rng = rand.New(rand.NewSource(24))
	var sawFailure = false
	for trial := 0; trial < 20; trial++ {
		var payload = make([]byte, 32)
		rng.Read(payload)

		var encoded bytes.Buffer
		var _, err = rsCodeEncode(opts, bytes.NewReader(payload), &encoded)
		require.NoError(t, err)

		var coded = encoded.Bytes()
		for _, at := range rng.Perm(len(coded))[:3] {
			coded[at] ^= byte(1 + rng.Intn(255))
		}

		var decoded bytes.Buffer
		_, err = rsCodeDecode(opts, bytes.NewReader(coded), &decoded)
		if err != nil {
			sawFailure = true
		} else {
			assert.NotEqual(t, payload, decoded.Bytes())
		}
	}
	assert.True(t, sawFailure)
}

func TestStreamDecodeShortChunk(t *testing.T) {
	var opts = streamOpts(t, "RS255", 16, 32)

	// Fewer symbols than parity alone cannot be a coded chunk.
	var decoded bytes.Buffer
	var _, err = rsCodeDecode(opts, bytes.NewReader(make([]byte, 8)), &decoded)
	assert.Error(t, err)
}

func TestStreamEmptyInput(t *testing.T) {
	var opts = streamOpts(t, "RS255", 16, 32)

	var encoded bytes.Buffer
	var n, err = rsCodeEncode(opts, bytes.NewReader(nil), &encoded)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, encoded.Len())
}
