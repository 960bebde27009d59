package entities

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ProgressStore is the set of answered question indices of one session.
type ProgressStore struct {
	answered map[int]struct{}
}

// NewProgressStore creates a progress store holding the given indices.
func NewProgressStore(indices ...int) *ProgressStore {
	p := &ProgressStore{answered: make(map[int]struct{}, len(indices))}
	for _, i := range indices {
		p.answered[i] = struct{}{}
	}
	return p
}

// Has reports whether the question at index was answered.
func (p *ProgressStore) Has(index int) bool {
	_, ok := p.answered[index]
	return ok
}

// Record adds index to the set. It returns false if the index was already present.
func (p *ProgressStore) Record(index int) bool {
	if p.Has(index) {
		return false
	}
	p.answered[index] = struct{}{}
	return true
}

// Clear empties the set.
func (p *ProgressStore) Clear() {
	clear(p.answered)
}

// Len returns the number of answered questions.
func (p *ProgressStore) Len() int {
	return len(p.answered)
}

// Indices returns the answered indices in ascending order.
func (p *ProgressStore) Indices() []int {
	out := make([]int, 0, len(p.answered))
	for i := range p.answered {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Merge adds all indices of other to the set.
func (p *ProgressStore) Merge(other *ProgressStore) {
	if other == nil {
		return
	}
	for i := range other.answered {
		p.answered[i] = struct{}{}
	}
}

// Retain drops indices outside [0, n) and returns how many were dropped.
func (p *ProgressStore) Retain(n int) int {
	dropped := 0
	for i := range p.answered {
		if i < 0 || i >= n {
			delete(p.answered, i)
			dropped++
		}
	}
	return dropped
}

// Serialize encodes the set as a JSON array of ascending indices.
func (p *ProgressStore) Serialize() ([]byte, error) {
	return json.Marshal(p.Indices())
}

// DeserializeProgress decodes data produced by Serialize. Empty input yields an empty store.
func DeserializeProgress(data []byte) (*ProgressStore, error) {
	if len(data) == 0 {
		return NewProgressStore(), nil
	}

	var indices []int
	if err := json.Unmarshal(data, &indices); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}

	for _, i := range indices {
		if i < 0 {
			return nil, fmt.Errorf("decode progress: negative index %d", i)
		}
	}

	return NewProgressStore(indices...), nil
}
