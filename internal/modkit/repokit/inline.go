package repokit

import (
	"context"

	perr "doomscroll/internal/platform/errors"
)

// InlineTx is a TxRunner with no SQL behind it. Tx runs fn directly, which
// suits repos that keep state in memory and ignore the Queryer.
type InlineTx struct{}

var errNoSQL = perr.Unavailablef("no sql backend configured")

// Exec always fails
func (InlineTx) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, errNoSQL }

// Query always fails
func (InlineTx) Query(context.Context, string, ...any) (Rows, error) { return nil, errNoSQL }

// QueryRow returns a row whose Scan fails
func (InlineTx) QueryRow(context.Context, string, ...any) Row { return failedRow{} }

// Tx calls fn with the InlineTx itself
func (t InlineTx) Tx(_ context.Context, fn func(Queryer) error) error { return fn(t) }

type failedRow struct{}

func (failedRow) Scan(...any) error { return errNoSQL }
