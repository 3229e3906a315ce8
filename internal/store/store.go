package store

import (
	"iter"

	"github.com/vamshi455/bank-rag-system/internal/model"
)

// Store is an ordered, append-only collection of Transactions.
// Insertion order is preserved; duplicates are legitimate and kept.
// Single writer, many readers: one ingestion run completes before
// queries begin.
type Store struct {
	txns []model.Transaction
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// AppendAll appends transactions in the given order.
func (s *Store) AppendAll(txns []model.Transaction) {
	s.txns = append(s.txns, txns...)
}

// All returns the stored transactions in insertion order. The returned
// slice is the store's backing storage; callers must not mutate it.
func (s *Store) All() []model.Transaction {
	return s.txns
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	return len(s.txns)
}

// Filter returns a lazy sequence over transactions matching pred, in
// store order. The sequence can be ranged over multiple times.
func (s *Store) Filter(pred func(model.Transaction) bool) iter.Seq[model.Transaction] {
	return func(yield func(model.Transaction) bool) {
		for _, t := range s.txns {
			if pred(t) && !yield(t) {
				return
			}
		}
	}
}

// Clear removes all records. Used between independent ingestion runs.
func (s *Store) Clear() {
	s.txns = nil
}
