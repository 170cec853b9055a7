package fileinfo

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"

	"github.com/rs/zerolog"
)

// Handler describes a single file as lines of text.
type Handler interface {
	// Name identifies the handler in registrations and logs.
	Name() string
	// Describe returns the report lines for the file at path.
	Describe(path string) ([]string, error)
}

// funcHandler adapts a plain function to the Handler interface.
type funcHandler struct {
	name string
	fn   func(path string) ([]string, error)
}

func (h *funcHandler) Name() string { return h.name }

func (h *funcHandler) Describe(path string) ([]string, error) { return h.fn(path) }

// HandlerFunc wraps fn as a Handler called name. Each call returns a distinct handler.
func HandlerFunc(name string, fn func(path string) ([]string, error)) Handler {
	return &funcHandler{name: name, fn: fn}
}

// sameHandler reports whether a and b are the same handler value.
// Values of non-comparable types are never the same.
func sameHandler(a, b Handler) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

// Registration pairs a handler with the extension patterns it is registered for.
type Registration struct {
	// Handler is the registered handler.
	Handler Handler
	// Patterns holds the deduplicated patterns in first-seen order.
	Patterns []string
}

// Set accumulates registrations. The zero value is ready to use.
type Set struct {
	registrations []Registration
	// shadowed names handlers whose patterns were merged into a different
	// handler registered earlier under the same name.
	shadowed []string
}

// Register attaches patterns to handler. Repeated calls for a handler with the
// same name merge into its existing pattern set; the first handler registered
// under a name is the one that runs.
func (s *Set) Register(handler Handler, patterns ...string) {
	idx := slices.IndexFunc(s.registrations, func(r Registration) bool {
		return r.Handler.Name() == handler.Name()
	})
	if idx < 0 {
		s.registrations = append(s.registrations, Registration{Handler: handler})
		idx = len(s.registrations) - 1
	} else if !sameHandler(s.registrations[idx].Handler, handler) {
		s.shadowed = append(s.shadowed, handler.Name())
	}

	reg := &s.registrations[idx]
	for _, p := range patterns {
		if !slices.Contains(reg.Patterns, p) {
			reg.Patterns = append(reg.Patterns, p)
		}
	}
}

// Registrations returns a copy of the accumulated registrations.
func (s *Set) Registrations() []Registration {
	out := make([]Registration, len(s.registrations))
	for i, r := range s.registrations {
		out[i] = Registration{Handler: r.Handler, Patterns: slices.Clone(r.Patterns)}
	}

	return out
}

// Provider is a source of handlers. Each extension package exposes one.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Register adds the provider's handlers to set.
	Register(set *Set) error
}

// Entry is a single flattened (pattern, handler) pair.
type Entry struct {
	// Pattern is the source text of the extension pattern.
	Pattern string
	// Handler runs when Pattern matches.
	Handler Handler

	re *regexp.Regexp
}

// Matches reports whether the entry applies to the extension ext.
// The pattern is anchored at the start of ext but need not consume all of it.
func (e Entry) Matches(ext string) bool {
	return e.re.MatchString(ext)
}

// Registry is the ordered, read-only list of entries built by Discover.
type Registry struct {
	entries []Entry
}

// Entries returns a copy of the registry entries in order.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Match returns the entries applying to path, in registry order.
func (r *Registry) Match(path string) []Entry {
	ext := Ext(path)

	var matched []Entry

	for _, e := range r.entries {
		if e.Matches(ext) {
			matched = append(matched, e)
		}
	}

	return matched
}

// compilePattern anchors pattern at position 0 of the extension.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)`)
}

// Discover builds the registry: the fallback handler first, then the handlers
// of every provider in argument order. A provider that fails or panics is
// skipped as a whole; Discover itself never fails.
func Discover(log zerolog.Logger, providers ...Provider) *Registry {
	log.Debug().Msg("--> finding handler providers")

	var builtin Set

	builtin.Register(Fallback(), FallbackPattern)

	registry := &Registry{}
	registry.add(log, builtin.registrations)

	for _, p := range providers {
		set, err := collect(p)
		if err != nil {
			log.Debug().Err(err).Str("provider", p.Name()).Msg("skipping provider")

			continue
		}

		for _, name := range set.shadowed {
			log.Debug().
				Str("provider", p.Name()).
				Str("handler", name).
				Msg("different handler registered under an existing name, merging into the first")
		}

		registry.add(log, set.registrations)
	}

	log.Debug().Int("entries", registry.Len()).Msg("<-- found handler entries")

	return registry
}

// collect runs a provider's registration in isolation.
func collect(p Provider) (set *Set, err error) {
	defer func() {
		if r := recover(); r != nil {
			set, err = nil, fmt.Errorf("provider panicked: %v", r)
		}
	}()

	set = &Set{}
	if err := p.Register(set); err != nil {
		return nil, err
	}

	return set, nil
}

func (r *Registry) add(log zerolog.Logger, regs []Registration) {
	for _, reg := range regs {
		for _, pattern := range reg.Patterns {
			re, err := compilePattern(pattern)
			if err != nil {
				log.Debug().
					Err(err).
					Str("pattern", pattern).
					Str("handler", reg.Handler.Name()).
					Msg("skipping invalid pattern")

				continue
			}

			log.Debug().Str("pattern", pattern).Str("handler", reg.Handler.Name()).Msg("adding entry")

			r.entries = append(r.entries, Entry{Pattern: pattern, Handler: reg.Handler, re: re})
		}
	}
}
