package payments

import "iter"

// DefaultLookbackCapacity is the number of settlements remembered for disputes
// when nothing else is configured.
const DefaultLookbackCapacity = 10000

// Lookback remembers the most recent transactions, up to a fixed capacity.
//
// When full, pushing a transaction evicts the oldest one, whatever its dispute
// state: a transaction becomes too old to dispute purely by the volume of the
// transactions that follow it. Push and eviction are O(1), Find scans the
// buffer; disputes are rare compared to settlements.
type Lookback struct {
	ring  []Transaction
	start int // index of the oldest entry
	size  int
}

// NewLookback creates an empty Lookback. It panics if capacity is not positive.
func NewLookback(capacity int) *Lookback {
	if capacity <= 0 {
		panic("lookback capacity must be positive")
	}
	return &Lookback{ring: make([]Transaction, capacity)}
}

// Cap returns the capacity.
func (b *Lookback) Cap() int { return len(b.ring) }

// Len returns the number of transactions currently remembered.
func (b *Lookback) Len() int { return b.size }

// Push appends tx. If the buffer is full, the oldest transaction is evicted
// first and returned.
func (b *Lookback) Push(tx Transaction) (evicted Transaction, ok bool) {
	if b.size == len(b.ring) {
		evicted, ok = b.ring[b.start], true
		b.ring[b.start] = tx
		b.start = (b.start + 1) % len(b.ring)
		return evicted, ok
	}
	b.ring[(b.start+b.size)%len(b.ring)] = tx
	b.size++
	return nil, false
}

// Find returns the oldest remembered transaction with this id. It returns
// false if the id is unknown or has been evicted.
func (b *Lookback) Find(id TxID) (Transaction, bool) {
	for tx := range b.All() {
		if tx.ID() == id {
			return tx, true
		}
	}
	return nil, false
}

// All iterates over the remembered transactions, oldest first.
func (b *Lookback) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for i := 0; i < b.size; i++ {
			if !yield(b.ring[(b.start+i)%len(b.ring)]) {
				return
			}
		}
	}
}
