package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Alturino/nayarn/cart/pkg/store"
)

func TestRegistry(t *testing.T) {
	clock := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour, func() time.Time { return clock })

	a := r.Get("a")
	a.AddToCart(store.Line{ProductID: "p1", Name: "Dress", UnitPrice: decimal.NewFromInt(100)}, 1)

	assert.Same(t, a, r.Get("a"))
	assert.NotSame(t, a, r.Get("b"))
	assert.True(t, r.Get("b").IsEmpty())

	clock = clock.Add(30 * time.Minute)
	r.Get("a")
	clock = clock.Add(45 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	_, ok := r.Lookup("b")
	assert.False(t, ok)
	kept, ok := r.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 1, kept.TotalItems())

	assert.True(t, r.End("a"))
	assert.False(t, r.End("a"))
	assert.Equal(t, 0, r.Len())
}

func TestExpiredSessionStartsEmpty(t *testing.T) {
	clock := time.Now()
	r := NewRegistry(time.Minute, func() time.Time { return clock })

	r.Get("a").AddToCart(store.Line{ProductID: "p1", Name: "Dress"}, 2)
	clock = clock.Add(2 * time.Minute)

	assert.True(t, r.Get("a").IsEmpty())
}

func TestStartSweeperStopsOnCancel(t *testing.T) {
	r := NewRegistry(time.Nanosecond, nil)
	r.Get("a")

	c, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go r.StartSweeper(c, time.Millisecond, &wg)

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	wg.Wait()
}
