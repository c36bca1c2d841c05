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
	"fmt"

	"github.com/walteh/ziprc/pkg/ruleset"
)

// 📦 Entry is one finalized file placement
type Entry struct {
	Source      string // absolute source path
	RelSource   string // source path relative to the project root, for diagnostics
	ArchivePath string // slash-separated path inside the archive
	RuleOrder   int    // order of the rule that produced this entry

	// seq is the fold sequence number, used to break collision ties in
	// favor of the later-finalized entry.
	seq int
}

// 🗺️ Plan is the frozen mapping from source files to archive paths.
// Entries are unique by Source; after Resolve they are also unique by
// ArchivePath and sorted by it.
type Plan struct {
	Root    string // absolute project root
	Entries []Entry
}

// ❌ EmptyMatchError reports an include rule whose pattern matched no files.
// It is fatal: a rule that selects nothing is a configuration mistake.
type EmptyMatchError struct {
	Rule ruleset.Rule
}

// Error implements the error interface
func (e *EmptyMatchError) Error() string {
	return fmt.Sprintf("rule %q at line %d matched no files", e.Rule.Pattern, e.Rule.Line)
}

// ⚠️ Collision records two or more distinct sources that resolved to the
// same archive path. Non-fatal: the winner is kept, the losers dropped.
type Collision struct {
	ArchivePath string   // the contested archive path
	Winner      string   // root-relative source that survives
	Losers      []string // root-relative sources that were dropped
}

// 📢 Reporter receives user-facing planning events. Implementations render
// them for the console; the planner itself only logs structured debug lines.
type Reporter interface {
	// Rule announces that a rule is about to be folded into the plan
	Rule(r ruleset.Rule)
	// FileAdded reports a planned placement (root-relative source, archive path)
	FileAdded(relSource, archivePath string)
	// FileSkipped reports a file dropped by an exclude rule
	FileSkipped(relSource string)
}

// NopReporter discards all planning events
type NopReporter struct{}

func (NopReporter) Rule(ruleset.Rule)        {}
func (NopReporter) FileAdded(string, string) {}
func (NopReporter) FileSkipped(string)       {}
