// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package collections

import (
	"reflect"
	"testing"
)

func TestSuggestionIndexRankingAndCase(t *testing.T) {
	t.Parallel()

	idx := NewSuggestionIndex()
	idx.Insert("Blade Runner")
	idx.Insert("blade runner") // same query, different casing
	idx.Insert("Blade")
	idx.Insert("Brazil")

	got := idx.Autocomplete("bla", 10)
	want := []string{"blade runner", "Blade"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Autocomplete = %v, want %v", got, want)
	}
}

func TestSuggestionIndexLimit(t *testing.T) {
	t.Parallel()

	idx := NewSuggestionIndex()
	for _, q := range []string{"aa", "ab", "ac", "ad"} {
		idx.Insert(q)
	}

	if got := idx.Autocomplete("a", 2); len(got) != 2 {
		t.Errorf("limited Autocomplete = %v, want 2 entries", got)
	}
	if got := idx.Autocomplete("a", 0); len(got) != 4 {
		t.Errorf("unlimited Autocomplete = %v, want 4 entries", got)
	}
}

func TestSuggestionIndexDelete(t *testing.T) {
	t.Parallel()

	idx := NewSuggestionIndex()
	idx.Insert("alien")
	idx.Insert("aliens")

	idx.Delete("alien")
	got := idx.Autocomplete("ali", 10)
	if len(got) != 1 || got[0] != "aliens" {
		t.Errorf("Autocomplete after delete = %v, want [aliens]", got)
	}

	// Deleting the longer entry prunes the whole branch.
	idx.Delete("aliens")
	if got := idx.Autocomplete("a", 10); len(got) != 0 {
		t.Errorf("Autocomplete after full delete = %v, want none", got)
	}

	// Unknown deletes are a no-op.
	idx.Delete("nope")
}

func TestSuggestionIndexClear(t *testing.T) {
	t.Parallel()

	idx := NewSuggestionIndex()
	idx.Insert("alien")
	idx.Clear()
	if got := idx.Autocomplete("a", 10); len(got) != 0 {
		t.Errorf("Autocomplete after Clear = %v, want none", got)
	}
}
