// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fieldgraph

import (
	"sync"

	"github.com/terragrove/mapscatter/errs"
)

type cacheEntry struct {
	fingerprint uint64
	program     *Program
}

// ProgramCache is a thread-safe, fingerprint-invalidated map from Kind.ID to
// compiled Program. Readers never block readers; a writer only blocks
// during its own insert. Programs are handed out by pointer so a caller may
// retain one beyond the cache lock even if the entry is later replaced.
type ProgramCache struct {
	mu       sync.RWMutex
	entries  map[string]cacheEntry
	poisoned bool
}

func NewProgramCache() *ProgramCache {
	return &ProgramCache{entries: make(map[string]cacheEntry)}
}

// GetForKind returns the cached program for kindID, if any, without
// recompiling.
func (c *ProgramCache) GetForKind(kindID string) (*Program, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[kindID]
	if !ok {
		return nil, false
	}
	return e.program, true
}

// Insert stores program under kindID with the given fingerprint.
func (c *ProgramCache) Insert(kindID string, fingerprint uint64, program *Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[kindID] = cacheEntry{fingerprint: fingerprint, program: program}
}

// Remove deletes kindID's entry, returning the program that was there, if
// any.
func (c *ProgramCache) Remove(kindID string) (*Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[kindID]
	if !ok {
		return nil, false
	}
	delete(c.entries, kindID)
	return e.program, true
}

// Clear removes every cached entry.
func (c *ProgramCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// GetOrCompile returns the program cached for kind if its fingerprint still
// matches opts, else compiles and caches a fresh one under a short critical
// section. A writer re-checks the fingerprint after acquiring the lock so
// two racing compiles of the same stale entry converge on one program.
func (c *ProgramCache) GetOrCompile(kind Kind, opts CompileOptions) (*Program, error) {
	fp := Fingerprint(kind.Spec, opts)

	c.mu.RLock()
	if c.poisoned {
		c.mu.RUnlock()
		return nil, errs.NewCompile("cache poisoned")
	}
	if e, ok := c.entries[kind.ID]; ok && e.fingerprint == fp {
		c.mu.RUnlock()
		return e.program, nil
	}
	c.mu.RUnlock()

	program, err := Compile(kind.Spec, opts)
	if err != nil {
		return nil, err
	}

	return c.insertCompiled(kind.ID, fp, program)
}

func (c *ProgramCache) insertCompiled(kindID string, fp uint64, program *Program) (result *Program, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			c.poisoned = true
			result = nil
			err = errs.NewCompile("cache poisoned")
		}
	}()

	if c.poisoned {
		return nil, errs.NewCompile("cache poisoned")
	}
	if e, ok := c.entries[kindID]; ok && e.fingerprint == fp {
		return e.program, nil
	}
	c.entries[kindID] = cacheEntry{fingerprint: fp, program: program}
	return program, nil
}
