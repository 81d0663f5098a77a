package redwood

// SPDX-FileCopyrightText: The Redwood Authors

/*------------------------------------------------------------------
 *
 * Purpose:   	Reed-Solomon encode or decode a byte stream, in chunks.
 *
 * Description:	Encoding reads up to `chunk` data symbols at a time,
 *		appends parity and writes chunk+parity.  Decoding reads
 *		chunk+parity symbols, corrects in place, strips parity
 *		and writes the data part.  With a 9-bit or larger
 *		symbol size, symbols occupy two bytes, big-endian.
 *
 * Usage:	rscode [options] [input [output]]
 *
 *		Default is stdin to stdout.  "-" also means stdin/stdout.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

type rsCodeOpts struct {
	rs      *RS
	chunk   int
	decode  bool
	verbose bool
}

func RSCodeMain() {
	var decodeFlag = pflag.BoolP("decode", "d", false, "Decode: strip parity and correct errors.")
	var encodeFlag = pflag.BoolP("encode", "e", false, "Encode: append parity symbols (default).")
	var parity = pflag.UintP("parity", "p", 32, "Parity symbols per chunk.")
	var chunk = pflag.IntP("chunk", "c", 128, "Data symbols per chunk.")
	var preset = pflag.StringP("preset", "P", "RS255", "Codec preset name.  See rsinfo --list.")
	var configPath = pflag.StringP("config", "C", "", "YAML codec config file.  Overrides --preset/--parity/--chunk.")
	var verbose = pflag.BoolP("verbose", "v", false, "Hex dump each chunk to stderr.")
	pflag.Parse()

	if *decodeFlag && *encodeFlag {
		log.Fatal("--decode and --encode are mutually exclusive")
	}

	var opts = rsCodeOpts{
		chunk:   *chunk,
		decode:  *decodeFlag,
		verbose: *verbose,
	}

	var err error
	if *configPath != "" {
		var cfg *CodecConfig
		cfg, err = LoadCodecConfig(*configPath)
		if err != nil {
			log.Fatal("Bad codec config", "error", err)
		}
		if cfg.Chunk != 0 {
			opts.chunk = cfg.Chunk
		}
		opts.rs, err = cfg.NewCodec()
	} else {
		opts.rs, err = NewPreset(*preset, *parity)
	}
	if err != nil {
		log.Fatal("Cannot initialize codec", "error", err)
	}

	if opts.chunk < 1 || opts.chunk > opts.rs.PayloadMax() {
		log.Fatal("Chunk size out of range",
			"chunk", opts.chunk, "max", opts.rs.PayloadMax())
	}

	var args = pflag.Args()
	var inp = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		inp, err = os.Open(args[0]) //nolint:gosec
		if err != nil {
			log.Fatal("Cannot open input", "error", err)
		}
		defer inp.Close()
	}
	var out = os.Stdout
	if len(args) > 1 && args[1] != "-" {
		out, err = os.Create(args[1]) //nolint:gosec
		if err != nil {
			log.Fatal("Cannot open output", "error", err)
		}
		defer out.Close()
	}

	var total int64
	if opts.decode {
		total, err = rsCodeDecode(opts, inp, out)
	} else {
		total, err = rsCodeEncode(opts, inp, out)
	}
	if err != nil {
		log.Fatal("Stream processing failed", "after", fmt.Sprintf("%d bytes", total), "error", err)
	}
}

// readChunk fills buf as far as the input allows.  A clean EOF with no
// bytes read returns (0, io.EOF).
func readChunk(inp io.Reader, buf []byte) (int, error) {
	var n, err = io.ReadFull(inp, buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}

func rsCodeEncode(o rsCodeOpts, inp io.Reader, out io.Writer) (int64, error) {
	var width = SymbolBytes(o.rs.Symsize())
	var nroots = o.rs.Nroots()

	var raw = make([]byte, o.chunk*width)
	var data = make([]uint16, o.chunk)
	var parity = make([]uint16, nroots)
	var parityRaw = make([]byte, nroots*width)

	var total int64
	for {
		var n, err = readChunk(inp, raw)
		total += int64(n)
		if n == 0 {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}

		var nsym, uerr = UnpackSymbols(data, raw[:n], o.rs.Symsize())
		if uerr != nil {
			return total, uerr
		}

		if err := o.rs.Encode(data[:nsym], parity); err != nil {
			return total, err
		}
		if _, err := PackSymbols(parityRaw, parity, o.rs.Symsize()); err != nil {
			return total, err
		}

		if o.verbose {
			log.Debug("chunk", "data", nsym, "parity", nroots)
			HexDump(os.Stderr, raw[:n])
			HexDump(os.Stderr, parityRaw)
		}

		if _, err := out.Write(raw[:n]); err != nil {
			return total, err
		}
		if _, err := out.Write(parityRaw); err != nil {
			return total, err
		}
	}
}

func rsCodeDecode(o rsCodeOpts, inp io.Reader, out io.Writer) (int64, error) {
	var width = SymbolBytes(o.rs.Symsize())
	var nroots = o.rs.Nroots()

	var raw = make([]byte, (o.chunk+nroots)*width)
	var syms = make([]uint16, o.chunk+nroots)

	var total int64
	for {
		var n, err = readChunk(inp, raw)
		total += int64(n)
		if n == 0 {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}

		var nsym, uerr = UnpackSymbols(syms, raw[:n], o.rs.Symsize())
		if uerr != nil {
			return total, uerr
		}
		if nsym <= nroots {
			return total, errors.Errorf("chunk of %d symbols is all parity or less", nsym)
		}

		var data = syms[:nsym-nroots]
		var parity = syms[nsym-nroots : nsym]
		var count, derr = o.rs.Decode(data, parity, nil, 0, nil)
		if derr != nil {
			return total, derr
		}
		if count < 0 {
			return total, errors.New("uncorrectable chunk")
		}
		if count > 0 {
			log.Info("Corrected errors", "count", count, "offset", total-int64(n))
		}

		var outBytes = make([]byte, len(data)*width)
		if _, err := PackSymbols(outBytes, data, o.rs.Symsize()); err != nil {
			return total, err
		}

		if o.verbose {
			HexDump(os.Stderr, outBytes)
		}

		if _, err := out.Write(outBytes); err != nil {
			return total, err
		}
	}
}
