// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package oid

import "expvar"

// registryMetrics record registry activity counters.
type registryMetrics struct {
	entries      expvar.Int // number of registered entries, including built-ins
	lookups      expvar.Int
	lookupMisses expvar.Int // lookups that found no entry
	conflicts    expvar.Int // registrations rejected

	emap *expvar.Map
}

func newRegistryMetrics() *registryMetrics {
	rm := &registryMetrics{emap: new(expvar.Map)}
	rm.emap.Set("entries", &rm.entries)
	rm.emap.Set("lookups", &rm.lookups)
	rm.emap.Set("lookup_misses", &rm.lookupMisses)
	rm.emap.Set("conflicts", &rm.conflicts)
	return rm
}
