package redwood

// SPDX-FileCopyrightText: 2002 Phil Karn, KA9Q
// SPDX-FileCopyrightText: The Redwood Authors

// Errors-and-erasures decoder: syndrome computation, erasure locator
// seeding, Berlekamp-Massey, Chien search, Forney.  All correction
// magnitudes are computed before any buffer is touched, so a block
// reported uncorrectable is always returned exactly as received.

// Decode corrects data and parity in place.
//
// erasPos carries the positions of known erasures within the
// shortened block (data position p, or len(data)+j for parity symbol
// j); the first noEras entries are read.  When erasPos is non-nil it
// must have room for Nroots() entries: on success its first count
// entries are overwritten with the positions actually corrected, in
// the order the Chien search located them.  corr, when non-nil, must
// also hold Nroots() entries and receives the XOR patterns applied,
// aligned with erasPos.
//
// Returns the number of symbols corrected, 0 for a clean block, or -1
// when the block is uncorrectable.  -1 is an ordinary result, not an
// error; err reports only malformed buffers or erasure positions.
func (rs *RS) Decode(data, parity []uint16, erasPos []int, noEras int, corr []uint16) (int, error) {
	return rs.DecodeMasked(data, parity, erasPos, noEras, corr, 0)
}

// DecodeMasked is Decode for a block produced by EncodeMasked with the
// same invmask.
func (rs *RS) DecodeMasked(data, parity []uint16, erasPos []int, noEras int, corr []uint16, invmask uint16) (int, error) {
	var nroots = rs.nroots
	var nn = rs.nn
	var a0 = nn

	if len(parity) != nroots {
		return 0, ErrLength
	}
	var pad = nn - nroots - len(data)
	if pad < 0 {
		return 0, ErrLength
	}
	if noEras < 0 || noEras > nroots {
		return 0, ErrLength
	}
	if noEras > 0 && (erasPos == nil || len(erasPos) < noEras) {
		return 0, ErrLength
	}
	if erasPos != nil && len(erasPos) < nroots {
		return 0, ErrLength
	}
	if corr != nil && len(corr) < nroots {
		return 0, ErrLength
	}
	for i := 0; i < noEras; i++ {
		if erasPos[i] < 0 || erasPos[i] >= len(data)+nroots {
			return 0, ErrLength
		}
	}

	// Form the syndromes; i.e., evaluate data(x)||parity(x) at the
	// roots of g(x).  Accumulators stay in element form.
	var s = make([]int, nroots)
	var synError = 0
	for j := 0; j < len(data)+nroots; j++ {
		var c int
		if j < len(data) {
			c = int(data[j] ^ invmask)
		} else {
			c = int(parity[j-len(data)])
		}
		for i := 0; i < nroots; i++ {
			if s[i] == 0 {
				s[i] = c
			} else {
				s[i] = c ^ int(rs.alphaTo[rs.modnn(int(rs.indexOf[s[i]])+(rs.fcr+i)*rs.prim)])
			}
		}
	}

	// Convert syndromes to index form, checking for nonzero condition.
	for i := 0; i < nroots; i++ {
		synError |= s[i]
		s[i] = int(rs.indexOf[s[i]])
	}

	if synError == 0 {
		// The received block is a codeword; nothing to correct.
		return 0, nil
	}

	var lambda = make([]int, nroots+1) // err+eras locator poly, element form
	lambda[0] = 1

	if noEras > 0 {
		// Init lambda to be the erasure locator polynomial.
		lambda[1] = int(rs.alphaTo[rs.modnn(rs.prim*(nn-1-(erasPos[0]+pad)))])
		for i := 1; i < noEras; i++ {
			var u = rs.modnn(rs.prim * (nn - 1 - (erasPos[i] + pad)))
			for j := i + 1; j > 0; j-- {
				var tmp = int(rs.indexOf[lambda[j-1]])
				if tmp != a0 {
					lambda[j] ^= int(rs.alphaTo[rs.modnn(u+tmp)])
				}
			}
		}

		if rs.selfCheck && !rs.erasureLocatorConsistent(lambda, noEras) {
			return -1, nil
		}
	}

	var b = make([]int, nroots+1) // shift register, index form
	for i := 0; i <= nroots; i++ {
		b[i] = int(rs.indexOf[lambda[i]])
	}

	// Begin Berlekamp-Massey algorithm to determine error+erasure
	// locator polynomial.
	var t = make([]int, nroots+1)
	var el = noEras
	for r := noEras + 1; r <= nroots; r++ {
		// Compute discrepancy at the r-th step in poly-form.
		var discrR = 0
		for i := 0; i < r; i++ {
			if lambda[i] != 0 && s[r-i-1] != a0 {
				discrR ^= int(rs.alphaTo[rs.modnn(int(rs.indexOf[lambda[i]])+s[r-i-1])])
			}
		}
		discrR = int(rs.indexOf[discrR]) // index form
		if discrR == a0 {
			// B(x) <-- x*B(x)
			copy(b[1:], b[:nroots])
			b[0] = a0
		} else {
			// T(x) <-- lambda(x) - discr_r*x*B(x)
			t[0] = lambda[0]
			for i := 0; i < nroots; i++ {
				if b[i] != a0 {
					t[i+1] = lambda[i+1] ^ int(rs.alphaTo[rs.modnn(discrR+b[i])])
				} else {
					t[i+1] = lambda[i+1]
				}
			}
			if 2*el <= r+noEras-1 {
				el = r + noEras - el
				// B(x) <-- inv(discr_r) * lambda(x)
				for i := 0; i <= nroots; i++ {
					if lambda[i] == 0 {
						b[i] = a0
					} else {
						b[i] = rs.modnn(int(rs.indexOf[lambda[i]]) - discrR + nn)
					}
				}
			} else {
				// B(x) <-- x*B(x)
				copy(b[1:], b[:nroots])
				b[0] = a0
			}
			copy(lambda, t)
		}
	}

	// Convert lambda to index form and compute deg(lambda(x)).
	var degLambda = 0
	for i := 0; i <= nroots; i++ {
		lambda[i] = int(rs.indexOf[lambda[i]])
		if lambda[i] != a0 {
			degLambda = i
		}
	}

	// Find roots of the error+erasure locator polynomial by Chien search.
	var reg = make([]int, nroots+1)
	copy(reg[1:], lambda[1:])
	var root = make([]int, nroots)
	var loc = make([]int, nroots)
	var count = 0
	for i, k := 1, rs.iprim-1; i <= nn; i, k = i+1, rs.modnn(k+rs.iprim) {
		var q = 1 // lambda[0] is always 0
		for j := degLambda; j > 0; j-- {
			if reg[j] != a0 {
				reg[j] = rs.modnn(reg[j] + j)
				q ^= int(rs.alphaTo[reg[j]])
			}
		}
		if q != 0 {
			continue // not a root
		}
		// Store root (index-form) and error location number.
		root[count] = i
		loc[count] = k
		count++
		// All roots found; abort the search to save time.
		if count == degLambda {
			break
		}
	}
	if degLambda != count {
		// deg(lambda) unequal to number of roots:
		// uncorrectable error detected.
		return -1, nil
	}

	// Compute err+eras evaluator poly omega(x) = s(x)*lambda(x)
	// (modulo x**nroots), in index form.  Also find deg(omega).
	var omega = make([]int, nroots+1)
	var degOmega = 0
	for i := 0; i < nroots; i++ {
		var tmp = 0
		for j := min(degLambda, i); j >= 0; j-- {
			if s[i-j] != a0 && lambda[j] != a0 {
				tmp ^= int(rs.alphaTo[rs.modnn(s[i-j]+lambda[j])])
			}
		}
		if tmp != 0 {
			degOmega = i
		}
		omega[i] = int(rs.indexOf[tmp])
	}
	omega[nroots] = a0

	// Compute error values in poly-form:
	// num1 = omega(inv(X(l))), num2 = inv(X(l))**(fcr-1),
	// den = lambda_pr(inv(X(l))).
	// Magnitudes only; nothing is applied until all of them are known
	// to be computable.
	var mag = make([]uint16, nroots)
	for j := count - 1; j >= 0; j-- {
		var num1 = 0
		for i := degOmega; i >= 0; i-- {
			if omega[i] != a0 {
				num1 ^= int(rs.alphaTo[rs.modnn(omega[i]+i*root[j])])
			}
		}
		var num2 = int(rs.alphaTo[rs.modnn(root[j]*(rs.fcr-1)+nn)])
		var den = 0

		// lambda[i+1] for i even is the formal derivative
		// lambda_pr of lambda[i].
		for i := min(degLambda, nroots-1) &^ 1; i >= 0; i -= 2 {
			if lambda[i+1] != a0 {
				den ^= int(rs.alphaTo[rs.modnn(lambda[i+1]+i*root[j])])
			}
		}
		if den == 0 {
			return -1, nil
		}
		if num1 != 0 {
			mag[j] = rs.alphaTo[rs.modnn(int(rs.indexOf[num1])+int(rs.indexOf[num2])+nn-int(rs.indexOf[den]))]
		}
	}

	// Apply corrections, dropping any that land in the implicit
	// zero padding of a shortened block.
	var nout = 0
	for j := 0; j < count; j++ {
		var pos = loc[j]
		if pos < pad {
			continue
		}
		if mag[j] != 0 {
			if pos < nn-nroots {
				data[pos-pad] ^= mag[j]
			} else {
				parity[pos-(nn-nroots)] ^= mag[j]
			}
		}
		if erasPos != nil {
			erasPos[nout] = pos - pad
		}
		if corr != nil {
			corr[nout] = mag[j]
		}
		nout++
	}
	return nout, nil
}

// erasureLocatorConsistent counts the roots of the freshly seeded
// erasure locator polynomial; a mismatch with noEras means the caller
// supplied bogus positions.
func (rs *RS) erasureLocatorConsistent(lambda []int, noEras int) bool {
	var a0 = rs.nn
	var reg = make([]int, noEras+1)
	for i := 1; i <= noEras; i++ {
		reg[i] = int(rs.indexOf[lambda[i]])
	}

	var count = 0
	for i := 1; i <= rs.nn; i++ {
		var q = 1
		for j := noEras; j > 0; j-- {
			if reg[j] != a0 {
				reg[j] = rs.modnn(reg[j] + j)
				q ^= int(rs.alphaTo[reg[j]])
			}
		}
		if q == 0 {
			count++
		}
	}
	return count == noEras
}
