// Package payments replays an ordered log of account transactions and computes
// the final balance of every account.
//
// The core is the transaction state machine:
//   - Deposits and withdrawals credit and debit an account, and are remembered
//     in a bounded Lookback so that they can be disputed later.
//   - A Dispute holds the funds of a remembered settlement, until a Resolve
//     releases them or a Chargeback reverses them and locks the account.
//
// Balances are exact decimals and only rounded to four places when reported.
//
// Around the core, DecodeTransactions reads CSV records, and EncodeAccounts and
// EncodeAccountsJSONL write the resulting accounts. The `pay` command-line tool
// wires them together.
package payments
