package redwood

// SPDX-FileCopyrightText: The Redwood Authors

/*------------------------------------------------------------------
 *
 * Purpose:   	Utility for inspecting codec presets.
 *
 * Description:	Prints field parameters, the generator polynomial and
 *		derived constants for a preset/parity combination.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func RSInfoMain() {
	var preset = pflag.StringP("preset", "P", "RS255", "Codec preset name.")
	var parity = pflag.UintP("parity", "p", 32, "Parity symbols.")
	var list = pflag.BoolP("list", "l", false, "List all presets and exit.")
	pflag.Parse()

	if *list {
		for _, p := range Presets {
			fmt.Printf("%-10s n=%-6d poly=0x%-6x fcr=%-4d prim=%d\n",
				p.Name, p.N(), p.GFPoly, p.FCR, p.Prim)
		}
		return
	}

	var rs, err = NewPreset(*preset, *parity)
	if err != nil {
		log.Fatal("Cannot initialize codec", "error", err)
	}

	fmt.Printf("%s preset %s\n", rs, *preset)
	fmt.Printf("  symbol size: %d bits\n", rs.Symsize())
	fmt.Printf("  block size:  %d symbols (%d data + %d parity)\n",
		rs.N(), rs.PayloadMax(), rs.Nroots())
	fmt.Printf("  field poly:  0x%x\n", rs.GFPoly())
	fmt.Printf("  fcr=%d prim=%d iprim=%d\n", rs.FCR(), rs.Prim(), rs.Iprim())

	fmt.Printf("  genpoly (index form):\n")
	var g = rs.GenPoly()
	var raw = make([]byte, 2*len(g))
	for i, v := range g {
		raw[2*i] = byte(v >> 8)
		raw[2*i+1] = byte(v)
	}
	HexDump(os.Stdout, raw)
}
