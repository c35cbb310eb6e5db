// Package search keeps a tokenized in-memory inverted index per entity
// type. Rebuilt wholesale from the database on indexing events; queries
// never touch Mongo for the match itself.
package search

import (
	"sort"
	"sync"
)

type postings map[string]map[string]bool // token -> set of entity ids

type index struct {
	mu     sync.RWMutex
	byType map[string]postings
	order  map[string][]string // insertion order of ids per entity type
}

var idx = &index{
	byType: make(map[string]postings),
	order:  make(map[string][]string),
}

// replace swaps in a freshly built index for one entity type.
func (ix *index) replace(entityType string, p postings, order []string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.byType[entityType] = p
	ix.order[entityType] = order
}

// Query returns the ids of entityType matching every token of term, in
// index order. An empty term matches nothing.
func Query(entityType, term string) []string {
	tokens := tokenize(term)
	if len(tokens) == 0 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	p, ok := idx.byType[entityType]
	if !ok {
		return nil
	}

	matched := map[string]int{}
	for _, token := range tokens {
		for id := range p[token] {
			matched[id]++
		}
	}

	var out []string
	for _, id := range idx.order[entityType] {
		if matched[id] == len(tokens) {
			out = append(out, id)
		}
	}
	return out
}

// builder accumulates documents for one rebuild pass.
type builder struct {
	p     postings
	order []string
}

func newBuilder() *builder {
	return &builder{p: make(postings)}
}

func (b *builder) add(id string, texts ...string) {
	b.order = append(b.order, id)
	for _, text := range texts {
		for _, token := range tokenize(text) {
			if b.p[token] == nil {
				b.p[token] = make(map[string]bool)
			}
			b.p[token][id] = true
		}
	}
}

// Tokens returns the sorted distinct tokens indexed for an entity type.
func Tokens(entityType string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	p := idx.byType[entityType]
	tokens := make([]string, 0, len(p))
	for t := range p {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}
