// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package oid implements ASN.1 object identifiers and a process-wide
// registry of named object identifiers.
//
// Each entry in the registry has four keys, all unique: its numeric [Path],
// the dotted string form of the path, a name, and an [ID]. The registry is
// initialized on first use with a fixed set of built-in entries, which can
// be named by the [BuiltIn] constants:
//
//	e := oid.RSAEncryption.OID()
//	fmt.Println(e.Dotted) // 1.2.840.113549.1.1.1
//
// Callers may register additional entries with ids at or above
// [ReservedIDs]:
//
//	e, err := oid.RegisterChildString(oid.PKCS.OID(), "1.11", "sha256WithRSAEncryption", 0x2001)
//
// Registration fails with an error matching [ErrConflict] if any of the keys
// of the new entry is already registered. Lookups and registrations are safe
// for concurrent use.
package oid

import (
	"cmp"
	_ "embed"
	"errors"
	"expvar"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// An ID is the registry key of an entry. IDs below [ReservedIDs] belong to
// the built-in entries; all other IDs are available to callers.
type ID uint32

// ReservedIDs is the lowest ID available for registration by callers.
const ReservedIDs ID = 0x2000

func (id ID) String() string { return fmt.Sprintf("%#04x", uint32(id)) }

// An Entry is a registered object identifier. The Path, Dotted, Name, and ID
// of an entry are each unique in the registry.
type Entry struct {
	Path   Path   // numeric path, e.g., [1 2 840 113549]
	Dotted string // dotted form of Path, e.g., "1.2.840.113549"
	Name   string // e.g., "rsadsi"
	ID     ID
}

// Child returns the path of e extended by arcs. It is a convenience for
// composing the paths of entries that have e as a parent.
func (e Entry) Child(arcs ...uint64) Path { return e.Path.Child(arcs...) }

func (e Entry) String() string { return fmt.Sprintf("%s=%s (%v)", e.Name, e.Dotted, e.ID) }

// ErrUnknownParent is reported when a registration names a parent entry
// that is not registered.
var ErrUnknownParent = errors.New("unknown parent")

// errName is reported for a registration whose name cannot be used.
var errName = errors.New("invalid entry name")

// A RegistrationLogger is called for each entry registered after the
// built-in entries are loaded.
type RegistrationLogger func(Entry)

// registry is the shared state of the process-wide registry. Each entry is
// stored in all four indexes.
type registry struct {
	μ        sync.RWMutex
	byPath   map[string]Entry // keyed by Path.key
	byDotted map[string]Entry
	byName   map[string]Entry
	byID     map[ID]Entry
	rlog     RegistrationLogger
	metrics  *registryMetrics
}

func newRegistry() *registry {
	return &registry{
		byPath:   make(map[string]Entry),
		byDotted: make(map[string]Entry),
		byName:   make(map[string]Entry),
		byID:     make(map[ID]Entry),
		metrics:  newRegistryMetrics(),
	}
}

//go:embed builtin.txt
var builtinData string

// global returns the process-wide registry, loading the built-in entries on
// first use. If the built-in dataset cannot be loaded, every call panics with
// a [BootstrapError].
var global = sync.OnceValue(func() *registry { return mustBootstrap(builtinData) })

// mustBootstrap returns a new registry populated from data, or panics with a
// [BootstrapError].
func mustBootstrap(data string) *registry {
	r := newRegistry()
	if err := r.bootstrap(data); err != nil {
		panic(BootstrapError{Err: err})
	}
	return r
}

// A spec describes an entry to be registered. If parent != "", the path of
// the entry is the path of the parent followed by arcs.
type spec struct {
	name   string
	id     ID
	parent string
	arcs   Path
	line   int    // for entries read from a dataset, else 0
	text   string // likewise
}

// apply registers entries for the given specs in order, and returns the new
// entries. Parent names are resolved against the registry including the
// entries added by earlier specs in the same call. If any spec fails, none
// of the specs are registered. Only privileged calls may use reserved ids.
//
// This is the only path by which entries are added to the registry.
func (r *registry) apply(specs []spec, privileged bool) ([]Entry, error) {
	r.μ.Lock()
	out := make([]Entry, 0, len(specs))
	for _, s := range specs {
		e, err := r.admit(s, privileged)
		if err != nil {
			for _, prev := range out {
				r.remove(prev)
			}
			r.μ.Unlock()
			if s.line > 0 {
				err = &SyntaxError{Line: s.line, Text: s.text, Err: err}
			}
			return nil, err
		}
		r.insert(e)
		out = append(out, e)
	}
	rlog := r.rlog
	r.μ.Unlock()

	if rlog != nil && !privileged {
		for _, e := range out {
			rlog(e)
		}
	}
	return out, nil
}

// admit constructs the entry described by s and checks that it can be added
// to the registry. The caller must hold r.μ.
func (r *registry) admit(s spec, privileged bool) (Entry, error) {
	if err := checkName(s.name); err != nil {
		return Entry{}, err
	}
	path := s.arcs
	if s.parent != "" {
		p, ok := r.byName[s.parent]
		if !ok {
			return Entry{}, fmt.Errorf("register %q: %w %q", s.name, ErrUnknownParent, s.parent)
		}
		path = p.Path.Child(s.arcs...)
	} else if len(path) == 0 {
		return Entry{}, &FormatError{Reason: "empty path"}
	} else {
		path = slices.Clone(path)
	}
	e := Entry{Path: path, Dotted: path.String(), Name: s.name, ID: s.id}

	if !privileged && e.ID < ReservedIDs {
		r.metrics.conflicts.Add(1)
		return Entry{}, &ConflictError{Index: "id", Entry: e, Err: ErrReserved}
	}
	var index string
	if _, ok := r.byPath[e.Path.key()]; ok {
		index = "path"
	} else if _, ok := r.byDotted[e.Dotted]; ok {
		index = "string"
	} else if _, ok := r.byName[e.Name]; ok {
		index = "name"
	} else if _, ok := r.byID[e.ID]; ok {
		index = "id"
	} else {
		return e, nil
	}
	r.metrics.conflicts.Add(1)
	return Entry{}, &ConflictError{Index: index, Entry: e}
}

// checkName reports whether name can be used as the name of an entry.  A
// name must be possible to write in a dataset line, and must not be taken
// for an arc.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errName)
	} else if name[0] >= '0' && name[0] <= '9' {
		return fmt.Errorf("%w: %q begins with a digit", errName, name)
	} else if i := strings.IndexAny(name, "=,@/ \t\r\n"); i >= 0 {
		return fmt.Errorf("%w: %q contains %q", errName, name, name[i])
	}
	return nil
}

// insert adds e to all the indexes of r. The caller must hold r.μ.
func (r *registry) insert(e Entry) {
	r.byPath[e.Path.key()] = e
	r.byDotted[e.Dotted] = e
	r.byName[e.Name] = e
	r.byID[e.ID] = e
	r.metrics.entries.Add(1)
}

// remove deletes e from all the indexes of r. The caller must hold r.μ.
func (r *registry) remove(e Entry) {
	delete(r.byPath, e.Path.key())
	delete(r.byDotted, e.Dotted)
	delete(r.byName, e.Name)
	delete(r.byID, e.ID)
	r.metrics.entries.Add(-1)
}

// lookup returns the entry stored in m under key, if any.
func lookup[K comparable](r *registry, m map[K]Entry, key K) (Entry, bool) {
	r.μ.RLock()
	defer r.μ.RUnlock()
	e, ok := m[key]
	r.metrics.lookups.Add(1)
	if !ok {
		r.metrics.lookupMisses.Add(1)
	}
	return e, ok
}

// Register adds an entry with the given path, name, and id to the registry.
//
// Registration fails with an error matching [ErrConflict] if id is below
// [ReservedIDs], or if any of the path, name, or id is already registered.
// When registration fails the registry is not changed.
func Register(path Path, name string, id ID) (Entry, error) {
	return register(spec{name: name, id: id, arcs: path})
}

// RegisterString is as [Register], but parses the path from its dotted form.
func RegisterString(s, name string, id ID) (Entry, error) {
	path, err := ParsePath(s)
	if err != nil {
		return Entry{}, err
	}
	return register(spec{name: name, id: id, arcs: path})
}

// RegisterChild is as [Register], but the path of the new entry is the path
// of parent followed by arcs.
func RegisterChild(parent Entry, arcs Path, name string, id ID) (Entry, error) {
	return register(spec{name: name, id: id, arcs: parent.Child(arcs...)})
}

// RegisterChildString is as [RegisterChild], but parses the relative path
// from its dotted form.
func RegisterChildString(parent Entry, s, name string, id ID) (Entry, error) {
	arcs, err := ParsePath(s)
	if err != nil {
		return Entry{}, err
	}
	return register(spec{name: name, id: id, arcs: parent.Child(arcs...)})
}

// RegisterAll registers entries with the Path, Name, and ID of each of the
// given entries, and returns the new entries. RegisterAll is atomic: if any
// entry cannot be registered, none of them are.
func RegisterAll(entries []Entry) ([]Entry, error) {
	specs := make([]spec, len(entries))
	for i, e := range entries {
		specs[i] = spec{name: e.Name, id: e.ID, arcs: e.Path}
	}
	return global().apply(specs, false)
}

func register(s spec) (Entry, error) {
	es, err := global().apply([]spec{s}, false)
	if err != nil {
		return Entry{}, err
	}
	return es[0], nil
}

// Must returns e if err == nil, and otherwise panics. It is intended for use
// with the Register functions during program initialization:
//
//	var myOID = oid.Must(oid.RegisterString("1.3.6.1.4.1.99999", "example", 0x2001))
func Must(e Entry, err error) Entry {
	if err != nil {
		panic(err)
	}
	return e
}

// ByPath returns the entry registered for path, and reports whether it exists.
func ByPath(path Path) (Entry, bool) { r := global(); return lookup(r, r.byPath, path.key()) }

// ByString returns the entry registered for the dotted path s, and reports
// whether it exists.
func ByString(s string) (Entry, bool) { r := global(); return lookup(r, r.byDotted, s) }

// ByName returns the entry registered with the given name, and reports
// whether it exists.
func ByName(name string) (Entry, bool) { r := global(); return lookup(r, r.byName, name) }

// ByID returns the entry registered with the given id, and reports whether
// it exists.
func ByID(id ID) (Entry, bool) { r := global(); return lookup(r, r.byID, id) }

// Resolve returns the registered entry whose path is the longest prefix of
// path, along with the arcs of path that follow it. If no prefix of path is
// registered, Resolve reports false.
func Resolve(path Path) (Entry, Path, bool) {
	r := global()
	r.μ.RLock()
	defer r.μ.RUnlock()
	r.metrics.lookups.Add(1)
	for n := len(path); n > 0; n-- {
		if e, ok := r.byPath[path[:n].key()]; ok {
			return e, path[n:], true
		}
	}
	r.metrics.lookupMisses.Add(1)
	return Entry{}, nil, false
}

// Entries returns all the registered entries in order of their ids.
func Entries() []Entry {
	r := global()
	r.μ.RLock()
	defer r.μ.RUnlock()
	out := make([]Entry, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// LogRegistrations sets the logger for registrations. If log == nil,
// logging is disabled. The built-in entries are not logged.
func LogRegistrations(log RegistrationLogger) {
	r := global()
	r.μ.Lock()
	defer r.μ.Unlock()
	r.rlog = log
}

// Metrics returns the metrics map for the registry. It is safe for the
// caller to add additional metrics to the map.
func Metrics() *expvar.Map { return global().metrics.emap }
