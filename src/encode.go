package redwood

// SPDX-FileCopyrightText: 2002 Phil Karn, KA9Q
// SPDX-FileCopyrightText: The Redwood Authors

// Systematic encoder: a linear feedback shift register over the code
// generator polynomial.  The data symbols pass through unchanged; the
// register contents become the parity symbols.

// Encode computes parity for data.  len(parity) must equal Nroots();
// len(data) may be anything up to PayloadMax() (shortened block).
// Only parity is written.
func (rs *RS) Encode(data, parity []uint16) error {
	return rs.EncodeMasked(data, parity, 0)
}

// EncodeMasked is Encode with every data symbol XOR-masked by invmask
// on the fly.  A decoder call must be given the same mask for the
// effective message to match.
func (rs *RS) EncodeMasked(data, parity []uint16, invmask uint16) error {
	if len(parity) != rs.nroots {
		return ErrLength
	}
	if rs.nn-rs.nroots-len(data) < 0 {
		return ErrLength
	}

	var nroots = rs.nroots

	for k := range parity {
		parity[k] = 0
	}

	for i := 0; i < len(data); i++ {
		var feedback = int(rs.indexOf[(data[i]^invmask)^parity[0]])

		if feedback != rs.nn { // feedback term is non-zero
			for j := 1; j < nroots; j++ {
				parity[j] ^= rs.alphaTo[rs.modnn(feedback+int(rs.genpoly[nroots-j]))]
			}
		}

		// Shift
		copy(parity, parity[1:])

		if feedback != rs.nn {
			parity[nroots-1] = rs.alphaTo[rs.modnn(feedback+int(rs.genpoly[0]))]
		} else {
			parity[nroots-1] = 0
		}
	}
	return nil
}
