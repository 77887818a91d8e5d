package main

import (
	"context"
	"encoding/json"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"doomscroll/internal/core/classify"
	"doomscroll/internal/modkit"
	"doomscroll/internal/modkit/module"
	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/platform/config"
	"doomscroll/internal/platform/logger"
	"doomscroll/internal/platform/store"

	eventsdom "doomscroll/internal/services/events/domain"
	eventsmod "doomscroll/internal/services/events/module"
	rollupmod "doomscroll/internal/services/rollup/module"

	goflags "github.com/jessevdk/go-flags"
)

// GlobalFlags apply to every subcommand
type GlobalFlags struct {
	Env string `long:"env" description:"dotenv file loaded before reading config" default:".env"`
}

// RunCommand runs the engine once and prints the report
type RunCommand struct {
	globals *GlobalFlags
	out     io.Writer

	Timeout time.Duration `long:"timeout" description:"abort the run after this long" default:"10m"`
}

// ServeCommand runs the scheduler until SIGINT or SIGTERM
type ServeCommand struct {
	globals *GlobalFlags
}

// ClassifyCommand classifies text from the command line
type ClassifyCommand struct {
	globals *GlobalFlags
	out     io.Writer

	Rules       string `long:"rules" description:"ruleset YAML; empty uses the embedded one" env:"CORE_CLASSIFIER_RULES_PATH"`
	ContentType string `long:"content-type" description:"content_type hint"`
	Args        struct {
		Text []string `positional-arg-name:"text"`
	} `positional-args:"yes"`
}

func buildParser(out io.Writer) (*goflags.Parser, *GlobalFlags) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "doomscroll-rollup"
	parser.LongDescription = "Recompute daily sentiment buckets from the usage event log."

	parser.AddCommand("run", "Run one rollup pass", "Recompute the trailing window once and print the run report as JSON.", &RunCommand{globals: &globals, out: out})
	parser.AddCommand("serve", "Run the rollup scheduler", "Run immediately, then every CORE_ROLLUP_INTERVAL_SECONDS until interrupted.", &ServeCommand{globals: &globals})
	parser.AddCommand("classify", "Classify text", "Print the classification of the given text as JSON.", &ClassifyCommand{globals: &globals, out: out})

	return parser, &globals
}

// Execute implements goflags.Commander
func (c *RunCommand) Execute(_ []string) error {
	m, closeFn, err := openRollup(c.globals)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	rep, err := m.Engine().RunOnce(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.out, rep)
}

// Execute implements goflags.Commander
func (c *ServeCommand) Execute(_ []string) error {
	m, closeFn, err := openRollup(c.globals)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return m.Scheduler().Run(ctx)
}

// Execute implements goflags.Commander
func (c *ClassifyCommand) Execute(_ []string) error {
	cls, err := classify.Load(c.Rules)
	if err != nil {
		return err
	}
	hints := classify.Hints{}
	if c.ContentType != "" {
		hints[classify.HintContentType] = c.ContentType
	}
	return writeJSON(c.out, cls.Classify(strings.Join(c.Args.Text, " "), hints))
}

// openRollup connects the store and wires events plus rollup the way the API does
func openRollup(g *GlobalFlags) (*rollupmod.Module, func(), error) {
	if g != nil && g.Env != "" {
		if err := config.LoadDotenv(g.Env); err != nil {
			return nil, nil, err
		}
	}
	l := logger.Named("rollup.cli")
	root := config.New()

	ctx := context.Background()
	st, err := store.Open(ctx, store.ConfigFromEnv(root, "rollup"), store.WithLogger(*l))
	if err != nil {
		return nil, nil, err
	}
	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{Log: *l, Cfg: root, PG: st.PG, CH: st.CH}
	events := eventsmod.New(deps)
	reader := module.MustPortsOf[eventsdom.Ports](events).Reader

	closeFn := func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}
	return rollupmod.New(deps, reader, "rollup"), closeFn, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
