// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package collections

import (
	"sort"
	"strings"
	"sync"
)

// SuggestionIndex is a prefix trie over past search queries. Lookups are
// case-insensitive; repeated searches for the same query raise its rank.
type SuggestionIndex struct {
	mu   sync.RWMutex
	root *suggestionNode
}

type suggestionNode struct {
	children map[rune]*suggestionNode
	query    string
	count    int
	terminal bool
}

func newSuggestionNode() *suggestionNode {
	return &suggestionNode{children: make(map[rune]*suggestionNode)}
}

// NewSuggestionIndex creates an empty suggestion index.
func NewSuggestionIndex() *SuggestionIndex {
	return &SuggestionIndex{root: newSuggestionNode()}
}

// Insert adds a query to the index, incrementing its count if already
// present. The original casing of the most recent insert is what
// Autocomplete returns.
func (idx *SuggestionIndex) Insert(query string) {
	if query == "" {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	node := idx.root
	for _, r := range strings.ToLower(query) {
		child, ok := node.children[r]
		if !ok {
			child = newSuggestionNode()
			node.children[r] = child
		}
		node = child
	}
	node.terminal = true
	node.query = query
	node.count++
}

// Delete removes a query from the index. Unknown queries are a no-op.
func (idx *SuggestionIndex) Delete(query string) {
	if query == "" {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	key := []rune(strings.ToLower(query))
	idx.deleteRec(idx.root, key, 0)
}

// deleteRec reports whether the child at depth can be pruned.
func (idx *SuggestionIndex) deleteRec(node *suggestionNode, key []rune, depth int) bool {
	if depth == len(key) {
		if !node.terminal {
			return false
		}
		node.terminal = false
		node.query = ""
		node.count = 0
		return len(node.children) == 0
	}

	child, ok := node.children[key[depth]]
	if !ok {
		return false
	}
	if idx.deleteRec(child, key, depth+1) {
		delete(node.children, key[depth])
	}
	return !node.terminal && len(node.children) == 0
}

// Clear removes all queries.
func (idx *SuggestionIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.root = newSuggestionNode()
}

// Autocomplete returns up to limit queries starting with prefix, ordered by
// search count descending, then alphabetically. A limit <= 0 means no limit.
func (idx *SuggestionIndex) Autocomplete(prefix string, limit int) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	node := idx.root
	for _, r := range strings.ToLower(prefix) {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}

	type ranked struct {
		query string
		count int
	}
	var matches []ranked
	var collect func(n *suggestionNode)
	collect = func(n *suggestionNode) {
		if n.terminal {
			matches = append(matches, ranked{query: n.query, count: n.count})
		}
		for _, child := range n.children {
			collect(child)
		}
	}
	collect(node)

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].count != matches[j].count {
			return matches[i].count > matches[j].count
		}
		return matches[i].query < matches[j].query
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.query
	}
	return out
}
