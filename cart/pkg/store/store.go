// Package store holds the lines of one shopper's cart.
package store

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

type Line struct {
	ProductID          string            `json:"productId"`
	Name               string            `json:"name"`
	UnitPrice          decimal.Decimal   `json:"unitPrice"`
	Image              string            `json:"image"`
	Size               string            `json:"size"`
	Quantity           int               `json:"quantity"`
	CustomMeasurements map[string]string `json:"customMeasurements,omitempty"`
}

// Key identifies a line. The same product in two sizes is two lines.
type Key struct {
	ProductID string
	Size      string
}

func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, Size: l.Size}
}

type Outcome string

const (
	OutcomeAdded   Outcome = "added"
	OutcomeUpdated Outcome = "updated"
)

type AddResult struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
	Line    Line    `json:"line"`
}

// Store keeps lines in insertion order. Quantities are always at least one.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Store {
	return &Store{lines: []Line{}}
}

func (s *Store) indexOf(key Key) int {
	for i, l := range s.lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

// AddToCart merges quantity into the line with the same key, or appends item
// as a new line. A quantity below one is treated as one.
func (s *Store) AddToCart(item Line, quantity int) AddResult {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.Key()); i >= 0 {
		s.lines[i].Quantity += quantity
		return AddResult{
			Outcome: OutcomeUpdated,
			Message: fmt.Sprintf("Updated %s quantity in cart", s.lines[i].Name),
			Line:    cloneLine(s.lines[i]),
		}
	}

	line := cloneLine(item)
	line.Quantity = quantity
	s.lines = append(s.lines, line)
	return AddResult{
		Outcome: OutcomeAdded,
		Message: fmt.Sprintf("Added %s to cart", line.Name),
		Line:    cloneLine(line),
	}
}

// UpdateQuantity sets the absolute quantity of a line. Zero or less removes it.
// It reports whether a line with that key existed.
func (s *Store) UpdateQuantity(productID, size string, quantity int) bool {
	if quantity <= 0 {
		return s.RemoveFromCart(productID, size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(Key{ProductID: productID, Size: size})
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = quantity
	return true
}

// RemoveFromCart deletes the matching line. Missing lines are ignored.
func (s *Store) RemoveFromCart(productID, size string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(Key{ProductID: productID, Size: size})
	if i < 0 {
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = []Line{}
}

// Consume takes ordered lines out of the cart. Each matching line loses the
// ordered quantity and is removed once nothing is left, so anything added
// after lines were read stays in the cart.
func (s *Store) Consume(ordered []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range ordered {
		i := s.indexOf(o.Key())
		if i < 0 {
			continue
		}
		s.lines[i].Quantity -= o.Quantity
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
	}
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, 0, len(s.lines))
	for _, l := range s.lines {
		lines = append(lines, cloneLine(l))
	}
	return lines
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Store) TotalItems() int {
	return TotalItems(s.Lines())
}

func (s *Store) TotalPrice() decimal.Decimal {
	return TotalPrice(s.Lines())
}

func TotalItems(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

func TotalPrice(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func cloneLine(l Line) Line {
	if l.CustomMeasurements != nil {
		m := make(map[string]string, len(l.CustomMeasurements))
		for k, v := range l.CustomMeasurements {
			m[k] = v
		}
		l.CustomMeasurements = m
	}
	return l
}
