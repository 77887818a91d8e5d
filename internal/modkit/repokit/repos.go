// Package repokit is what repos import instead of the store: query seams,
// binders and transaction hooks
package repokit

import "doomscroll/internal/platform/store"

type (
	// Queryer is the SQL surface a bound repo runs against, pool or tx
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can open a transaction
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single scanned row
	Row = store.Row
	// CommandTag reports a write
	CommandTag = store.CommandTag
)
