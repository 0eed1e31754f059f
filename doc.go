// Package brokerage models a single-owner trading account: a cash balance,
// per-security positions made of discrete purchase lots, a queue of pending
// limit orders, and realized profit-and-loss computed with first-in
// first-out cost basis accounting.
//
// The core functionalities include:
//   - Securities: equities, commodities and currency pairs, each with its
//     own purchase cost, sale proceeds and liquidation value formulas.
//   - Positions: FIFO-ordered purchase lots with exact quantity and cost
//     attribution when a sale is split across lots.
//   - Orders: immutable buy/sell intents ranked by attractiveness, executed
//     against the market price captured at submission time.
//   - Data persistence: a pipe-delimited, human-readable text format with
//     strict integrity checks on load.
//
// This package serves as the foundational logic for the `bkr` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package brokerage
