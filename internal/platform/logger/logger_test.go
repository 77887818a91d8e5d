package logger

import (
	"bytes"
	"context"
	"testing"

	kit "doomscroll/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "doomscroll-rollup")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "4")

	o := FromEnv()
	if o.Level != "warn" || o.Format != "json" || o.Service != "doomscroll-rollup" || !o.WithCaller || o.SampleEvery != 4 {
		t.Fatalf("FromEnv = %+v", o)
	}
}

// Init is process-wide, so everything touching the root runs in one test
func TestInitNamedAndContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:   "debug",
		Format:  "json",
		Service: "svc",
		Writer:  &buf,
		Static:  map[string]string{"build": "test"},
	})

	Get().Info().Msg("root-line")
	Named("rollup").Info().Msg("named-line")

	ctx := WithRequest(context.Background(), "req-1", "user-abc")
	C(ctx).Info().Msg("ctx-line")

	out := buf.String()
	kit.MustContain(t, out, `"service":"svc"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, `"component":"rollup"`)
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"user_id":"user-abc"`)

	if RequestID(ctx) != "req-1" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}
	if RequestID(context.Background()) != "" {
		t.Fatalf("RequestID on empty ctx should be blank")
	}
	if Named("") != Get() {
		t.Fatalf("Named(\"\") should return the root logger")
	}
}
