// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log renders user-facing packaging feedback: the run banner, one
// line per rule, colored add/skip lines per file, and collision and missing
// warnings. Everything is mirrored to zerolog for debugging.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/ziprc/pkg/ruleset"
)

// 🎨 Console writes colored, human-oriented progress output. It is safe for
// concurrent use; planning may report from multiple goroutines.
type Console struct {
	out  io.Writer
	mu   sync.Mutex
	zlog zerolog.Logger

	add  *color.Color // green, planned placements
	skip *color.Color // yellow, excluded files
	rule *color.Color // faint, rule echo

	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

// New creates a console writing to out, mirroring to the given zerolog logger
func New(out io.Writer, zlog zerolog.Logger) *Console {
	return &Console{
		out:     out,
		zlog:    zlog,
		add:     color.New(color.FgGreen),
		skip:    color.New(color.FgYellow),
		rule:    color.New(color.Faint),
		success: pterm.Success.WithWriter(out),
		warning: pterm.Warning.WithWriter(out),
		failure: pterm.Error.WithWriter(out),
	}
}

// Banner prints the run header: project root, rule file, and output path
func (c *Console) Banner(root, ruleFile, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sep := strings.Repeat("=", 60)
	fmt.Fprintln(c.out, sep)
	fmt.Fprintf(c.out, "project root: %s\n", root)
	fmt.Fprintf(c.out, "rule file:    %s\n", ruleFile)
	fmt.Fprintf(c.out, "output:       %s\n", output)
	fmt.Fprintln(c.out, sep)

	c.zlog.Debug().Str("root", root).Str("ruleFile", ruleFile).Str("output", output).Msg("run started")
}

// Rule echoes a rule as it is folded into the plan
func (c *Console) Rule(r ruleset.Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rule.Fprintf(c.out, "rule: '%s'\n", r)
	c.zlog.Debug().Str("rule", r.String()).Int("order", r.Order).Msg("folding rule")
}

// FileAdded reports a planned placement
func (c *Console) FileAdded(relSource, archivePath string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.add.Fprintf(c.out, "  [add]  '%s' -> '%s'\n", relSource, archivePath)
	c.zlog.Debug().Str("source", relSource).Str("archivePath", archivePath).Msg("file planned")
}

// FileSkipped reports a file dropped by an exclude rule
func (c *Console) FileSkipped(relSource string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.skip.Fprintf(c.out, "  [skip] '%s'\n", relSource)
	c.zlog.Debug().Str("source", relSource).Msg("file excluded")
}

// Missing reports an include rule that matched nothing. Fatal; the caller
// aborts after rendering this.
func (c *Console) Missing(pattern string, line int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failure.Printfln("MISSING: %s (line %d) matched no files", pattern, line)
	c.zlog.Error().Str("pattern", pattern).Int("line", line).Msg("rule matched no files")
}

// Collision warns that distinct sources contested one archive path
func (c *Console) Collision(archivePath, winner string, losers []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warning.Printfln("archive path '%s' contested: keeping '%s', dropping '%s'",
		archivePath, winner, strings.Join(losers, "', '"))
	c.zlog.Warn().
		Str("archivePath", archivePath).
		Str("winner", winner).
		Strs("losers", losers).
		Msg("archive path collision")
}

// Summary prints the final success line
func (c *Console) Summary(count int, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.success.Printfln("packed %d files into %s", count, output)
	c.zlog.Info().Int("files", count).Str("output", output).Msg("packaging complete")
}

// NothingToPack warns that the resolved plan is empty
func (c *Console) NothingToPack() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warning.Printfln("nothing to pack, no archive written")
	c.zlog.Warn().Msg("empty plan, no archive written")
}
