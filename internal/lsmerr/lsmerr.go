// Copyright (C) 2024-2026, MonacGraph Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lsmerr defines the error kinds raised by the storage engine and
// a concurrent-safe collector for aggregating failures from fan-out work
// such as WarmUp's parallel page sweep.
package lsmerr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Kind classifies a failure into one of the four categories the engine
// distinguishes when deciding whether an operation degrades gracefully or
// must abort.
type Kind int

const (
	// Config marks a malformed or inconsistent configuration value.
	Config Kind = iota
	// Format marks on-disk data that does not parse as its declared
	// encoding (corrupt block, truncated bucket footer, bad magic).
	Format
	// Lookup marks a reference to a vertex, community, or page that does
	// not exist in the current index.
	Lookup
	// IO marks a failure from the underlying filesystem or store.
	IO
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case Format:
		return "format"
	case Lookup:
		return "lookup"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

type kindTag struct{}

// WithKind annotates err with kind, preserving its message and stack trace.
func WithKind(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	return errors.WithDetail(errors.Wrapf(err, "%s error", kind), kind.String())
}

// NewConfig builds a Config-kind error from a format string.
func NewConfig(format string, args ...interface{}) error {
	return WithKind(errors.Newf(format, args...), Config)
}

// NewFormat builds a Format-kind error from a format string.
func NewFormat(format string, args ...interface{}) error {
	return WithKind(errors.Newf(format, args...), Format)
}

// NewLookup builds a Lookup-kind error from a format string.
func NewLookup(format string, args ...interface{}) error {
	return WithKind(errors.Newf(format, args...), Lookup)
}

// NewIO wraps an underlying I/O failure, tagging it as IO-kind.
func NewIO(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return WithKind(errors.Wrapf(err, format, args...), IO)
}

// Is reports whether err (or anything it wraps) carries kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return strings.Contains(fmt.Sprint(errors.GetAllDetails(err)), kind.String())
}

// Errs collects errors contributed concurrently by fan-out workers
// (WarmUp's parallel page sweep) or by a sequence of steps that should all
// run before failing (metrics registration, LsmCommunity.Close). Safe for
// concurrent use.
type Errs struct {
	mu   sync.Mutex
	errs []error
}

// Add records err, ignoring nil.
func (e *Errs) Add(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, err)
}

// Errored reports whether any error has been recorded.
func (e *Errs) Errored() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs) > 0
}

// Len returns the number of recorded errors.
func (e *Errs) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs)
}

// Err collapses the collection into a single error, or nil if empty.
func (e *Errs) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d errors occurred:", len(e.errs))
		for _, err := range e.errs {
			sb.WriteString("\n\t* ")
			sb.WriteString(err.Error())
		}
		return errors.New(sb.String())
	}
}
