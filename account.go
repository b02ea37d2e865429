package payments

// Account is the state of a client account.
//
// The invariant total == available + held holds after every applied
// transaction. A locked account stays locked.
type Account struct {
	client    ClientID
	available Amount
	held      Amount
	total     Amount
	locked    bool
}

func newAccount(client ClientID) *Account {
	return &Account{client: client}
}

func (a *Account) Client() ClientID  { return a.client }
func (a *Account) Available() Amount { return a.available }
func (a *Account) Held() Amount      { return a.held }
func (a *Account) Total() Amount     { return a.total }
func (a *Account) Locked() bool      { return a.locked }

// Balanced reports whether total equals available plus held.
func (a *Account) Balanced() bool {
	return a.total.Equal(a.available.Add(a.held))
}

// credit adds funds to available and total.
func (a *Account) credit(amount Amount) {
	a.available = a.available.Add(amount)
	a.total = a.total.Add(amount)
}

// debit removes funds from available and total.
func (a *Account) debit(amount Amount) {
	a.available = a.available.Sub(amount)
	a.total = a.total.Sub(amount)
}

// hold moves funds from available to held.
func (a *Account) hold(amount Amount) {
	a.available = a.available.Sub(amount)
	a.held = a.held.Add(amount)
}

// release moves funds from held back to available.
func (a *Account) release(amount Amount) {
	a.held = a.held.Sub(amount)
	a.available = a.available.Add(amount)
}

// reverse removes held funds from the account and locks it.
func (a *Account) reverse(amount Amount) {
	a.held = a.held.Sub(amount)
	a.total = a.total.Sub(amount)
	a.locked = true
}

// MarshalJSON implements the json.Marshaler interface for Account.
// Amounts are rounded to Precision places.
func (a *Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("client", a.client)
	w.Append("available", a.available)
	w.Append("held", a.held)
	w.Append("total", a.total)
	w.Append("locked", a.locked)
	return w.MarshalJSON()
}
