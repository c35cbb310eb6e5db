package search

import (
	"reflect"
	"testing"
)

func seed(entityType string, docs map[string][]string, order []string) {
	b := newBuilder()
	for _, id := range order {
		b.add(id, docs[id]...)
	}
	idx.replace(entityType, b.p, b.order)
}

func TestTokenize(t *testing.T) {
	got := tokenize("The Quick-Brown FOX, and a 2nd fox!")
	want := []string{"quick", "brown", "fox", "2nd", "fox"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestQueryRequiresEveryToken(t *testing.T) {
	seed("things", map[string][]string{
		"t1": {"Blue Cotton Shirt"},
		"t2": {"Blue Denim Jeans"},
		"t3": {"Red Cotton Shirt"},
	}, []string{"t1", "t2", "t3"})

	if got := Query("things", "blue"); !reflect.DeepEqual(got, []string{"t1", "t2"}) {
		t.Fatalf("single token: got %v", got)
	}
	if got := Query("things", "blue cotton"); !reflect.DeepEqual(got, []string{"t1"}) {
		t.Fatalf("two tokens: got %v", got)
	}
	if got := Query("things", "blue wool"); got != nil {
		t.Fatalf("no document has both tokens, got %v", got)
	}
}

func TestQueryUnknownTypeAndEmptyTerm(t *testing.T) {
	if got := Query("nothing-here", "blue"); got != nil {
		t.Fatalf("unknown type should match nothing, got %v", got)
	}
	if got := Query("things", ""); got != nil {
		t.Fatalf("empty term should match nothing, got %v", got)
	}
	if got := Query("things", "a of the"); got != nil {
		t.Fatalf("stop-word-only term should match nothing, got %v", got)
	}
}

func TestQueryPreservesIndexOrder(t *testing.T) {
	seed("ordered", map[string][]string{
		"z9": {"apple pie"},
		"a1": {"apple cake"},
		"m5": {"apple tart"},
	}, []string{"z9", "a1", "m5"})

	if got := Query("ordered", "apple"); !reflect.DeepEqual(got, []string{"z9", "a1", "m5"}) {
		t.Fatalf("expected insertion order, got %v", got)
	}
}

func TestReplaceSwapsWholesale(t *testing.T) {
	seed("swap", map[string][]string{"old": {"legacy term"}}, []string{"old"})
	seed("swap", map[string][]string{"new": {"fresh term"}}, []string{"new"})

	if got := Query("swap", "legacy"); got != nil {
		t.Fatalf("old postings should be gone, got %v", got)
	}
	if got := Query("swap", "fresh"); !reflect.DeepEqual(got, []string{"new"}) {
		t.Fatalf("expected new postings, got %v", got)
	}
}
