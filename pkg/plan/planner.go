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

package plan

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/ziprc/pkg/pattern"
	"github.com/walteh/ziprc/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏗️ Planner folds rules into an archive plan
type Planner struct {
	root     string
	reporter Reporter
}

// Options configures a planner
type Options struct {
	Root     string   // absolute project root (the rule file's directory)
	Reporter Reporter // optional; defaults to NopReporter
}

// NewPlanner creates a planner for the given project root
func NewPlanner(opts Options) *Planner {
	rep := opts.Reporter
	if rep == nil {
		rep = NopReporter{}
	}
	return &Planner{
		root:     opts.Root,
		reporter: rep,
	}
}

// ruleEval pairs a rule with its compiled pattern and match set
type ruleEval struct {
	rule    ruleset.Rule
	pattern *pattern.Pattern
	matches []pattern.Match
}

// Build evaluates every rule against the filesystem and folds the include
// rules, in ascending order, into the plan. Match sets are computed
// concurrently; this is purely a performance detail, since each set depends
// only on the filesystem and results are folded in rule order.
//
// Any include rule with an empty match set aborts planning with
// *EmptyMatchError before exclusion or override logic runs.
func (p *Planner) Build(ctx context.Context, rules []ruleset.Rule) (*Plan, error) {
	evals, err := p.evaluate(ctx, rules)
	if err != nil {
		return nil, err
	}

	for _, ev := range evals {
		if ev.rule.Kind == ruleset.Include && len(ev.matches) == 0 {
			return nil, &EmptyMatchError{Rule: ev.rule}
		}
	}

	// Exclusion beats inclusion regardless of where the exclude rule sits
	// in the file, so the excluded set is computed up front.
	excluded := map[string]struct{}{}
	for _, ev := range evals {
		if ev.rule.Kind != ruleset.Exclude {
			continue
		}
		for _, m := range ev.matches {
			excluded[m.AbsPath] = struct{}{}
		}
	}

	entries := map[string]Entry{}
	seq := 0
	for _, ev := range evals {
		if ev.rule.Kind != ruleset.Include {
			p.reporter.Rule(ev.rule)
			continue
		}
		p.reporter.Rule(ev.rule)

		for _, m := range ev.matches {
			if _, skip := excluded[m.AbsPath]; skip {
				p.reporter.FileSkipped(m.RelPath)
				continue
			}
			arc := archivePathFor(ev.rule, ev.pattern, m)
			seq++
			entries[m.AbsPath] = Entry{
				Source:      m.AbsPath,
				RelSource:   m.RelPath,
				ArchivePath: arc,
				RuleOrder:   ev.rule.Order,
				seq:         seq,
			}
			p.reporter.FileAdded(m.RelPath, arc)
		}
	}

	pl := &Plan{Root: p.root}
	for _, e := range entries {
		pl.Entries = append(pl.Entries, e)
	}
	sort.Slice(pl.Entries, func(i, j int) bool {
		return pl.Entries[i].RelSource < pl.Entries[j].RelSource
	})

	zerolog.Ctx(ctx).Debug().
		Int("rules", len(rules)).
		Int("excluded", len(excluded)).
		Int("entries", len(pl.Entries)).
		Msg("plan built")

	return pl, nil
}

// evaluate compiles every rule's pattern and computes its match set,
// fanning the filesystem walks out over an errgroup. Results land in a
// slice indexed by rule position, so ordering is unaffected.
func (p *Planner) evaluate(ctx context.Context, rules []ruleset.Rule) ([]ruleEval, error) {
	evals := make([]ruleEval, len(rules))

	for i, rule := range rules {
		pat, err := pattern.Compile(rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("compiling pattern at line %d: %w", rule.Line, err)
		}
		evals[i] = ruleEval{rule: rule, pattern: pat}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range evals {
		i := i
		g.Go(func() error {
			matches, err := evals[i].pattern.Match(gctx, p.root)
			if err != nil {
				return errors.Errorf("evaluating rule at line %d: %w", evals[i].rule.Line, err)
			}
			evals[i].matches = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return evals, nil
}

// archivePathFor applies the target resolution rule to one matched file.
//
// With no target, a recursive pattern preserves the file's structure below
// the pattern's fixed prefix while any other pattern flattens to the bare
// file name. A target with a trailing wildcard component ('bin/', 'bin/*',
// 'bin/*.*', 'bin/**') relocates under that directory; a recursive source
// pattern keeps its preserved structure there, any other keeps only the
// file name. A target without a trailing wildcard is a verbatim rename.
func archivePathFor(rule ruleset.Rule, pat *pattern.Pattern, m pattern.Match) string {
	if rule.Target == "" {
		if pat.HasRecursive() {
			return m.PreservePath
		}
		return path.Base(m.RelPath)
	}

	if dir, ok := directoryTarget(rule.Target); ok {
		if pat.HasRecursive() {
			return path.Join(dir, m.PreservePath)
		}
		return path.Join(dir, path.Base(m.RelPath))
	}

	return path.Clean(strings.ReplaceAll(rule.Target, "\\", "/"))
}

// directoryTarget reports whether the target template means "place under
// this directory, keep the original name", returning the directory portion.
// The four spellings 'bin/', 'bin/*', 'bin/*.*' and 'bin/**' are equivalent.
func directoryTarget(target string) (string, bool) {
	t := strings.ReplaceAll(target, "\\", "/")
	if strings.HasSuffix(t, "/") {
		return path.Clean(strings.TrimSuffix(t, "/")), true
	}
	switch base := path.Base(t); base {
	case "*", "*.*", "**":
		dir := path.Dir(t)
		if dir == "." {
			return "", true
		}
		return dir, true
	}
	return "", false
}
