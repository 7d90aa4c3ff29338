package bank

import (
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

// ErrUnknownBank is returned when a lookup names a bank the registry
// does not hold.
var ErrUnknownBank = errors.New("unknown question bank")

// Registry is an in-memory bank collection keyed by bank id. It is the
// reference implementation of the bank-lookup collaborator the session
// engine reads from. Re-adding a bank id is allowed only with a newer
// version, so loaders can refresh banks idempotently.
type Registry struct {
	banks map[string]*QuestionBank
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{banks: make(map[string]*QuestionBank)}
}

// Add validates and registers a bank. A bank id already present is only
// replaced when the incoming version is strictly newer.
func (r *Registry) Add(b *QuestionBank) error {
	if err := b.Validate(); err != nil {
		return err
	}

	if existing, ok := r.banks[b.ID]; ok {
		if semver.Compare(canonicalVersion(b.Version), canonicalVersion(existing.Version)) <= 0 {
			return fmt.Errorf("bank %q: version %s does not supersede %s",
				b.ID, b.Version, existing.Version)
		}
		r.banks[b.ID] = b
		return nil
	}

	r.banks[b.ID] = b
	r.order = append(r.order, b.ID)
	return nil
}

// Get returns the bank with the given id.
func (r *Registry) Get(id string) (*QuestionBank, bool) {
	b, ok := r.banks[id]
	return b, ok
}

// IDs returns registered bank ids in insertion order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered banks.
func (r *Registry) Len() int {
	return len(r.banks)
}
