package payments

// Disputes holds the settlements currently under dispute, by transaction id.
//
// It performs no validation. An id is absent when it has no active dispute.
type Disputes struct {
	held map[TxID]Settlement
}

// NewDisputes creates an empty registry.
func NewDisputes() *Disputes {
	return &Disputes{held: make(map[TxID]Settlement)}
}

// Insert records tx as disputed, replacing any previous entry for id.
func (d *Disputes) Insert(id TxID, tx Settlement) { d.held[id] = tx }

// Get returns the disputed settlement for id.
func (d *Disputes) Get(id TxID) (Settlement, bool) {
	tx, ok := d.held[id]
	return tx, ok
}

// Remove deletes the entry for id and returns it.
func (d *Disputes) Remove(id TxID) (Settlement, bool) {
	tx, ok := d.held[id]
	if ok {
		delete(d.held, id)
	}
	return tx, ok
}

// Contains reports whether id is under dispute.
func (d *Disputes) Contains(id TxID) bool {
	_, ok := d.held[id]
	return ok
}

// Len returns the number of active disputes.
func (d *Disputes) Len() int { return len(d.held) }
