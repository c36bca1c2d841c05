package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ziprc/pkg/archive"
	"github.com/walteh/ziprc/pkg/config"
	"github.com/walteh/ziprc/pkg/log"
	"github.com/walteh/ziprc/pkg/plan"
	"github.com/walteh/ziprc/pkg/ruleset"
)

// run drives the whole pipeline: settings, parse, plan, resolve, write.
// With dryRun the resolved plan is printed as a table and no archive is
// produced.
func run(ctx context.Context, ruleFile string, dryRun bool) error {
	rulePath, err := filepath.Abs(ruleFile)
	if err != nil {
		return errors.Errorf("resolving rule file path: %w", err)
	}
	if _, err := os.Stat(rulePath); err != nil {
		return errors.Errorf("rule file %s: %w", ruleFile, err)
	}

	// The rule file's directory is the project root every pattern
	// resolves against.
	root := filepath.Dir(rulePath)

	settings, err := loadSettings(ctx, root)
	if err != nil {
		return err
	}

	logger := newLogger(settings)
	ctx = logger.WithContext(ctx)

	if noColor || settings.NoColor {
		color.NoColor = true
		pterm.DisableColor()
	}

	out := resolveOutput(rulePath, root, settings)
	console := log.New(os.Stdout, logger)
	console.Banner(root, rulePath, out)

	rules, err := ruleset.Load(rulePath)
	if err != nil {
		return err
	}

	planner := plan.NewPlanner(plan.Options{
		Root:     root,
		Reporter: console,
	})
	pl, err := planner.Build(ctx, rules)
	if err != nil {
		var emptyErr *plan.EmptyMatchError
		if errors.As(err, &emptyErr) {
			console.Missing(emptyErr.Rule.Pattern, emptyErr.Rule.Line)
		}
		return err
	}

	for _, c := range pl.Resolve() {
		console.Collision(c.ArchivePath, c.Winner, c.Losers)
	}

	if len(pl.Entries) == 0 {
		console.NothingToPack()
		return nil
	}

	if dryRun {
		return renderPlanTable(pl)
	}

	if err := archive.Write(ctx, pl, archive.Options{
		Output: out,
		Store:  settings.Compression == config.CompressionStore,
	}); err != nil {
		return err
	}

	console.Summary(len(pl.Entries), out)
	return nil
}

// loadSettings honors --config, otherwise probes the project root
func loadSettings(ctx context.Context, root string) (*config.Settings, error) {
	if configFile != "" {
		settings, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading settings: %w", err)
		}
		return settings, nil
	}
	return config.Discover(ctx, root)
}

// newLogger configures zerolog based on flags and settings
func newLogger(settings *config.Settings) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug || settings.Debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})
	return zerolog.New(writer).With().Timestamp().Logger().Level(level)
}

// resolveOutput picks the archive path: flag, then settings, then the rule
// file's base name with a .zip extension next to the rule file.
func resolveOutput(rulePath, root string, settings *config.Settings) string {
	out := outputPath
	if out == "" {
		out = settings.Output
	}
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(rulePath), filepath.Ext(rulePath))
		out = base + ".zip"
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(root, out)
	}
	return out
}

// renderPlanTable prints the resolved plan for a dry run
func renderPlanTable(pl *plan.Plan) error {
	data := pterm.TableData{{"ARCHIVE PATH", "SOURCE"}}
	for _, e := range pl.Entries {
		data = append(data, []string{e.ArchivePath, e.RelSource})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
