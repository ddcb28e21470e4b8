// Package taxonomy decides whether an antagonist name refers to an
// individual or a group, backed by a curated alias registry with keyword
// patterns as fallback.
package taxonomy

import (
	"roguedex/internal/normalize"
)

// Record is one curated group: its canonical name, the aliases it has been
// scraped under, and an optional canonical URL.
type Record struct {
	ID      string
	Name    string
	Aliases []string
	URL     string
}

// Registry maps lookup keys (lowercase, whitespace-collapsed names) to
// group records. Canonical names and aliases share the same table, so a
// lookup resolves either in one step.
//
// A Registry is built once and read-mostly afterwards. Construct one per
// test instead of sharing package state.
type Registry struct {
	byKey map[string]*Record
	audit AuditSink
}

// NewRegistry builds a registry from the given records.
func NewRegistry(records ...Record) *Registry {
	r := &Registry{byKey: make(map[string]*Record)}
	for _, rec := range records {
		r.Register(rec)
	}
	return r
}

// Register adds a record, indexing its canonical name and every alias.
func (r *Registry) Register(rec Record) {
	stored := rec
	r.byKey[normalize.Key(rec.Name)] = &stored
	for _, alias := range rec.Aliases {
		r.byKey[normalize.Key(alias)] = &stored
	}
	r.record(Event{Kind: EventRegister, Input: rec.Name, Result: rec.ID})
}

// Lookup resolves a name (canonical or alias) to its group record.
func (r *Registry) Lookup(name string) (*Record, bool) {
	rec, ok := r.byKey[normalize.Key(name)]
	result := ""
	if ok {
		result = rec.ID
	}
	r.record(Event{Kind: EventLookup, Input: name, Result: result})
	return rec, ok
}

// SetAudit installs an audit sink; nil disables auditing. The sink only
// observes, it never influences lookups.
func (r *Registry) SetAudit(sink AuditSink) {
	r.audit = sink
}

func (r *Registry) record(ev Event) {
	if r.audit != nil {
		r.audit.Record(ev)
	}
}

// DefaultRegistry returns the curated group registry shipped with the
// scraper: the recurring teams of the Spider-Man rogues gallery.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Record{ID: "sinister-six", Name: "Sinister Six", Aliases: []string{"The Sinister Six", "Sinister 6"}},
		Record{ID: "sinister-syndicate", Name: "Sinister Syndicate", Aliases: []string{"The Sinister Syndicate"}},
		Record{ID: "enforcers", Name: "Enforcers", Aliases: []string{"The Enforcers"}},
		Record{ID: "savage-six", Name: "Savage Six", Aliases: []string{"The Savage Six"}},
		Record{ID: "wild-pack", Name: "Wild Pack", Aliases: []string{"The Wild Pack"}},
		Record{ID: "maggia", Name: "Maggia", Aliases: []string{"The Maggia"}},
		Record{ID: "hood-gang", Name: "Hood's Gang", Aliases: []string{"The Hood's Gang", "Hood's Army"}},
	)
}
