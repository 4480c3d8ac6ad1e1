// Package stocks tracks the purchased lots of a single security and settles
// sales against them using first-in first-out (FIFO) lot matching.
//
// A Ledger records purchases as open lots. A sale consumes the oldest open
// lots first, splitting the last one when it holds more shares than needed,
// and records one history entry per lot consumed along with its realized
// profit. The cumulative realized profit is the ledger proceeds.
//
// Amounts are Money values backed by decimals, so repeated additions never
// drift as binary floats do.
//
// The ledger is a pure in-memory engine: it reads no input and renders no
// output. The renderer package formats a Snapshot, and the cmd package
// implements the interactive buy/sell/display/quit command loop on top of it.
package stocks
