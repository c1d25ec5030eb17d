// Package order contains the order aggregate and its lifecycle engine.
//
// The aggregate root Order owns a single Ledger audit record and the
// per-pharmacy, per-product subgraph describing how the order was fulfilled.
// Every lifecycle transition is recorded onto the ledger together with the
// timestamps and reasons meaningful for that transition, and the rejection
// side-path is reversible: the ledger remembers the prior status and restores
// it on release.
//
// The package enforces data invariants but deliberately not a transition
// graph: operators may move an order to any status to correct mistakes.
package order
