package state

import "github.com/atomicstack/tmux-popup-compose/internal/candidate"

// CandidateStore holds the live candidate list. It satisfies candidate.Source
// so the UI can filter against whatever was loaded most recently.
type CandidateStore interface {
	candidate.Source
	SetEntries([]candidate.Candidate)
	Origin() string
	SetOrigin(string)
	Revision() int
}

type candidateStore struct {
	entries  []candidate.Candidate
	origin   string
	revision int
}

func NewCandidateStore(initial []candidate.Candidate) CandidateStore {
	return &candidateStore{entries: candidate.Clone(initial)}
}

func (s *candidateStore) Candidates() []candidate.Candidate {
	return candidate.Clone(s.entries)
}

func (s *candidateStore) SetEntries(entries []candidate.Candidate) {
	s.entries = candidate.Clone(entries)
	s.revision++
}

func (s *candidateStore) Origin() string {
	return s.origin
}

func (s *candidateStore) SetOrigin(origin string) {
	s.origin = origin
}

func (s *candidateStore) Revision() int {
	return s.revision
}
