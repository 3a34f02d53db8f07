package selection

import (
	"errors"
	"testing"

	"github.com/atomicstack/menagerie/internal/catalogue"
)

func testCatalogue() catalogue.Catalogue {
	return catalogue.New([]catalogue.Record{
		{ID: "lion", Name: "Lion"},
		{ID: "tigre", Name: "Tigre"},
	})
}

func TestZeroValueIsUnselected(t *testing.T) {
	var s State
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected zero state to be unselected")
	}
	if s != Unselected() {
		t.Fatalf("expected zero value to equal Unselected()")
	}
	if s.String() != "unselected" {
		t.Fatalf("unexpected string %q", s.String())
	}
}

func TestSelectKnownID(t *testing.T) {
	cat := testCatalogue()
	s, err := Unselected().Select(cat, "lion")
	if err != nil {
		t.Fatalf("select lion: %v", err)
	}
	if id, ok := s.Selected(); !ok || id != "lion" {
		t.Fatalf("expected selected(lion), got %s", s)
	}
	s, err = s.Select(cat, "tigre")
	if err != nil {
		t.Fatalf("select tigre: %v", err)
	}
	if !s.IsSelected("tigre") || s.IsSelected("lion") {
		t.Fatalf("expected only tigre selected, got %s", s)
	}
}

func TestReselectIsIdentical(t *testing.T) {
	cat := testCatalogue()
	first, _ := Unselected().Select(cat, "lion")
	second, err := first.Select(cat, "lion")
	if err != nil {
		t.Fatalf("reselect: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical states, got %s and %s", first, second)
	}
}

func TestSelectUnknownIDIsRejected(t *testing.T) {
	cat := testCatalogue()
	s, err := Unselected().Select(cat, "unknown-id")
	if !errors.Is(err, ErrUnknownID) {
		t.Fatalf("expected ErrUnknownID, got %v", err)
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected state to stay unselected")
	}

	lion, _ := Unselected().Select(cat, "lion")
	after, err := lion.Select(cat, "unknown-id")
	if err == nil {
		t.Fatalf("expected rejection")
	}
	if after != lion {
		t.Fatalf("expected state unchanged after rejection, got %s", after)
	}
}

func TestSelectOnEmptyCatalogueIsRejected(t *testing.T) {
	if _, err := Unselected().Select(catalogue.Empty(), "lion"); !errors.Is(err, ErrUnknownID) {
		t.Fatalf("expected rejection on empty catalogue, got %v", err)
	}
}
