package battle

import (
	"fmt"
	"sync"
)

// Budget pays for units placed by the player. The battle never charges team 0,
// which is the level's own army.
type Budget interface {
	Charge(kind UnitKind) error
	Refund(kind UnitKind) int
	Bankrupt() bool
}

// ResourcePool is a campaign budget: a stock of resources and a price list.
// Kinds missing from the price list cannot be bought.
type ResourcePool struct {
	mu        sync.Mutex
	remaining int
	prices    map[UnitKind]int
}

func NewResourcePool(resources int, prices map[UnitKind]int) *ResourcePool {
	cp := make(map[UnitKind]int, len(prices))
	for k, v := range prices {
		cp[k] = v
	}
	return &ResourcePool{remaining: resources, prices: cp}
}

// Remaining returns the unspent resources.
func (rp *ResourcePool) Remaining() int {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.remaining
}

// Price returns the cost of a kind and whether it is for sale.
func (rp *ResourcePool) Price(kind UnitKind) (int, bool) {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	p, ok := rp.prices[kind]
	return p, ok
}

// Kinds returns the purchasable kinds in roster order.
func (rp *ResourcePool) Kinds() []UnitKind {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	var out []UnitKind
	for _, k := range AllKinds {
		if _, ok := rp.prices[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func (rp *ResourcePool) Charge(kind UnitKind) error {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	p, ok := rp.prices[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotAvailable, kind)
	}
	if p > rp.remaining {
		return fmt.Errorf("%w: %s costs %d, %d left", ErrInsufficientFunds, kind, p, rp.remaining)
	}
	rp.remaining -= p
	return nil
}

// Refund returns the price of kind to the pool and reports the amount.
func (rp *ResourcePool) Refund(kind UnitKind) int {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	p := rp.prices[kind]
	rp.remaining += p
	return p
}

// Bankrupt reports whether nothing with a positive price is affordable.
func (rp *ResourcePool) Bankrupt() bool {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	for _, p := range rp.prices {
		if p > 0 && p <= rp.remaining {
			return false
		}
	}
	return true
}
