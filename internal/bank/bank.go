package bank

import (
	"encoding/json"
	"fmt"

	"golang.org/x/mod/semver"
)

// QuestionBank is a named, versioned collection of questions. Banks are
// the unit of authoring: one JSON document per bank.
type QuestionBank struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Version     string     `json:"version"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// canonicalVersion returns the bank version in semver canonical form
// (with the leading "v"), or "" if the version is not valid semver.
func canonicalVersion(v string) string {
	if v == "" {
		return ""
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// Validate checks the bank's structural integrity: a valid semver
// version, unique question ids, and per-question validity.
func (b *QuestionBank) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("bank has no id")
	}
	if canonicalVersion(b.Version) == "" {
		return fmt.Errorf("bank %q: invalid version %q", b.ID, b.Version)
	}

	seen := make(map[string]bool, len(b.Questions))
	for i := range b.Questions {
		q := &b.Questions[i]
		if err := q.Validate(); err != nil {
			return fmt.Errorf("bank %q: %w", b.ID, err)
		}
		if seen[q.ID] {
			return fmt.Errorf("bank %q: duplicate question id %q", b.ID, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

// Parse validates raw bank JSON against the bank schema, decodes it, and
// runs structural validation. The returned bank is ready for registry use.
func Parse(data []byte) (*QuestionBank, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}

	var b QuestionBank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
