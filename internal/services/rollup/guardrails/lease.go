// Package guardrails keeps two rollup processes from writing the same buckets at once
package guardrails

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"doomscroll/internal/modkit/repokit"

	"github.com/google/uuid"
)

// ErrLeaseHeld signals another process owns the rollup lease
var ErrLeaseHeld = errors.New("rollup: lease already held")

// LeaseFunc runs do while holding the lease
type LeaseFunc func(ctx context.Context, do func(context.Context) error) error

// Owner names this process in rollup_leases, e.g. "api-7f3a9c1e:4242"
func Owner(role string) string {
	return fmt.Sprintf("%s-%s:%d", role, uuid.NewString()[:8], os.Getpid())
}

// MakeLease claims the named row in rollup_leases. An expired row is
// reclaimed; a live row held by someone else is ErrLeaseHeld. The lease is
// released when do returns, and the ttl bounds how long a crashed owner
// blocks others.
func MakeLease(db repokit.TxRunner, name, owner string, ttl time.Duration) LeaseFunc {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	interval := fmt.Sprintf("%d seconds", int64(ttl/time.Second))

	return func(ctx context.Context, do func(context.Context) error) error {
		var claimed bool
		err := db.Tx(ctx, func(q repokit.Queryer) error {
			rows, err := q.Query(ctx, `
				INSERT INTO rollup_leases (name, owner, acquired_at, expires_at)
				VALUES ($1, $2, now(), now() + ($3)::interval)
				ON CONFLICT (name) DO UPDATE
				   SET owner = EXCLUDED.owner, acquired_at = EXCLUDED.acquired_at, expires_at = EXCLUDED.expires_at
				 WHERE rollup_leases.expires_at <= now() OR rollup_leases.owner = EXCLUDED.owner
				RETURNING true`, name, owner, interval)
			if err != nil {
				return err
			}
			defer rows.Close()
			claimed = rows.Next()
			return rows.Err()
		})
		if err != nil {
			return err
		}
		if !claimed {
			return ErrLeaseHeld
		}

		defer func() {
			// release on a fresh context so a cancelled run still frees the row
			rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			_, _ = db.Exec(rctx, `UPDATE rollup_leases SET expires_at = now() WHERE name = $1 AND owner = $2`, name, owner)
		}()
		return do(ctx)
	}
}
