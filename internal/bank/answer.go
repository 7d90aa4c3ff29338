package bank

import "encoding/json"

// AcceptableAnswer is one entry in a fill-in-blank answer list. Authored
// content may write a bare string or a structured object carrying
// per-answer grading overrides. The CaseSensitive and Normalize pointers
// distinguish "unset" from an explicit false.
type AcceptableAnswer struct {
	Text          string   `json:"text"`
	CaseSensitive *bool    `json:"case_sensitive,omitempty"`
	Normalize     *bool    `json:"normalize,omitempty"`
	ExactMatch    bool     `json:"exact_match,omitempty"`
	PartialCredit *float64 `json:"partial_credit,omitempty"`
	Feedback      string   `json:"feedback,omitempty"`
}

// WantsNormalization resolves the answer's normalization policy. The
// legacy normalize flag wins when set; an explicit case-sensitive answer
// opts out of normalization only when normalize is unset. Both unset
// means normalize. Authored content uses either flag, so both paths stay.
func (a *AcceptableAnswer) WantsNormalization() bool {
	if a.Normalize != nil {
		return *a.Normalize
	}
	if a.CaseSensitive != nil {
		return !*a.CaseSensitive
	}
	return true
}

// UnmarshalJSON accepts either a bare string or the structured form.
func (a *AcceptableAnswer) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*a = AcceptableAnswer{Text: text}
		return nil
	}

	type plain AcceptableAnswer
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = AcceptableAnswer(p)
	return nil
}

// MarshalJSON writes the compact string form when no overrides are set.
func (a AcceptableAnswer) MarshalJSON() ([]byte, error) {
	if a.CaseSensitive == nil && a.Normalize == nil && !a.ExactMatch &&
		a.PartialCredit == nil && a.Feedback == "" {
		return json.Marshal(a.Text)
	}
	type plain AcceptableAnswer
	return json.Marshal(plain(a))
}
