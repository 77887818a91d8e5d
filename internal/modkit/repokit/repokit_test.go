package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"doomscroll/internal/platform/testkit"
)

type recQ struct {
	sql  []string
	fail string
}

func (r *recQ) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	r.sql = append(r.sql, sql)
	if r.fail != "" && strings.HasPrefix(sql, r.fail) {
		return nil, errors.New("rejected")
	}
	return nil, nil
}
func (r *recQ) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (r *recQ) QueryRow(context.Context, string, ...any) Row       { return nil }
func (r *recQ) Tx(ctx context.Context, fn func(Queryer) error) error {
	r.sql = append(r.sql, "BEGIN")
	if err := fn(r); err != nil {
		r.sql = append(r.sql, "ROLLBACK")
		return err
	}
	r.sql = append(r.sql, "COMMIT")
	return nil
}

func TestWithBeginHooksOrder(t *testing.T) {
	q := &recQ{}
	tx := WithBeginHooks(q, StatementTimeout(2*time.Second))

	err := tx.Tx(context.Background(), func(q Queryer) error {
		_, err := q.Exec(context.Background(), "UPSERT")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"BEGIN", "SET LOCAL statement_timeout = 2000", "UPSERT", "COMMIT"}
	if strings.Join(q.sql, "|") != strings.Join(want, "|") {
		t.Fatalf("sql = %v", q.sql)
	}
}

func TestBeginHookFailureRollsBack(t *testing.T) {
	q := &recQ{fail: "SET LOCAL"}
	ran := false
	err := WithBeginHooks(q, StatementTimeout(time.Second)).Tx(context.Background(), func(Queryer) error {
		ran = true
		return nil
	})
	if err == nil || ran || q.sql[len(q.sql)-1] != "ROLLBACK" {
		t.Fatalf("err=%v ran=%v sql=%v", err, ran, q.sql)
	}
}

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }

func TestMustGuard(t *testing.T) {
	var hadDeadline bool
	MustGuard(context.Background(), guardFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}))
	if !hadDeadline {
		t.Fatalf("MustGuard should bound the ping")
	}
	testkit.MustPanic(t, func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("pg down") }))
	})
}

func TestMustBind(t *testing.T) {
	b := BindFunc[int](func(Queryer) int { return 7 })
	if MustBind[int](b, &recQ{}) != 7 {
		t.Fatalf("bind result")
	}
	testkit.MustPanic(t, func() { MustBind[int](b, nil) })
}

func TestInlineTx(t *testing.T) {
	var tx TxRunner = InlineTx{}
	ran := false
	if err := tx.Tx(context.Background(), func(Queryer) error { ran = true; return nil }); err != nil || !ran {
		t.Fatalf("Tx err=%v ran=%v", err, ran)
	}
	if _, err := tx.Exec(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("Exec should fail without a backend")
	}
	if err := tx.QueryRow(context.Background(), "SELECT 1").Scan(); err == nil {
		t.Fatalf("Scan should fail without a backend")
	}
}
