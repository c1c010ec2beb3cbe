// Package candidate defines the entries offered by the completion menu and the
// sources that supply them.
package candidate

// Candidate represents a selectable completion entry.
type Candidate struct {
	ID      string
	Label   string
	Payload any
}

// Key returns the identity used to track a candidate across re-filtering.
func (c Candidate) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Label
}

// Source supplies the complete candidate list.
type Source interface {
	Candidates() []Candidate
}

// Static is a fixed, in-memory candidate list.
type Static []Candidate

// Candidates implements Source.
func (s Static) Candidates() []Candidate {
	return Clone(s)
}

// Defaults returns the built-in candidate set used when no file is configured.
func Defaults() Static {
	return Static{
		{ID: "name", Label: "Name", Payload: "John Doe"},
		{ID: "email", Label: "Email", Payload: "john.doe@example.com"},
		{ID: "address", Label: "Address", Payload: "123 Main St"},
	}
}

// Clone produces a shallow copy of the provided candidates.
func Clone(items []Candidate) []Candidate {
	if items == nil {
		return nil
	}
	dup := make([]Candidate, len(items))
	copy(dup, items)
	return dup
}
