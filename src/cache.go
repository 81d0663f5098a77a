package redwood

// SPDX-FileCopyrightText: The Redwood Authors

import "sync"

// Table construction walks the whole field, so codecs sharing a
// parameter combination share one read-only table set.  The mutex
// guards the check-then-build race on first use; after that the
// tables are immutable and reads need no lock.

type tableKey struct {
	symsize uint
	gfpoly  uint
	fcr     int
	prim    int
	nroots  int
}

var (
	tableMu    sync.Mutex
	tableCache = make(map[tableKey]*gfTables)
)

func sharedTables(rs *RS) (*gfTables, error) {
	var key = tableKey{rs.mm, rs.gfpoly, rs.fcr, rs.prim, rs.nroots}

	tableMu.Lock()
	defer tableMu.Unlock()

	if t, ok := tableCache[key]; ok {
		return t, nil
	}
	var t, err = rs.buildTables()
	if err != nil {
		return nil, err
	}
	tableCache[key] = t
	return t, nil
}
