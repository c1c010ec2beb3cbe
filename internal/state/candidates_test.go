package state

import (
	"testing"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
)

func TestCandidateStoreCopiesEntries(t *testing.T) {
	initial := []candidate.Candidate{{Label: "Name"}}
	store := NewCandidateStore(initial)
	initial[0].Label = "mutated"
	if got := store.Candidates()[0].Label; got != "Name" {
		t.Fatalf("expected store to keep its own copy, got %q", got)
	}
	out := store.Candidates()
	out[0].Label = "changed"
	if got := store.Candidates()[0].Label; got != "Name" {
		t.Fatalf("expected Candidates to return a copy, got %q", got)
	}
}

func TestCandidateStoreRevision(t *testing.T) {
	store := NewCandidateStore(nil)
	if store.Revision() != 0 {
		t.Fatalf("expected revision 0, got %d", store.Revision())
	}
	store.SetEntries([]candidate.Candidate{{Label: "a"}})
	store.SetEntries([]candidate.Candidate{{Label: "b"}})
	if store.Revision() != 2 {
		t.Fatalf("expected revision 2, got %d", store.Revision())
	}
	store.SetOrigin("/tmp/c.yaml")
	if store.Origin() != "/tmp/c.yaml" {
		t.Fatalf("unexpected origin %q", store.Origin())
	}
}
