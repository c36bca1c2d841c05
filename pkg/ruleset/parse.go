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

package ruleset

import (
	"fmt"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ❌ MalformedRuleError reports a rule line that violates the grammar
type MalformedRuleError struct {
	Line   int    // 1-based line number in the rule file
	Text   string // the offending line, as written
	Reason string // why the line was rejected
}

// Error implements the error interface
func (e *MalformedRuleError) Error() string {
	return fmt.Sprintf("malformed rule at line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// 📖 Parse converts rule file text into an ordered sequence of rules.
// Blank lines and lines whose first non-whitespace character is '#' are
// skipped. A leading '!' marks an exclude rule, and 'pattern -> target'
// splits on the first '->' with whitespace trimmed on both sides.
func Parse(text string) ([]Rule, error) {
	var rules []Rule
	order := 0

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lineNo := i + 1

		kind := Include
		if strings.HasPrefix(line, "!") {
			kind = Exclude
			line = strings.TrimSpace(line[1:])
		}

		pattern := line
		target := ""
		if idx := strings.Index(line, "->"); idx >= 0 {
			if kind == Exclude {
				return nil, &MalformedRuleError{
					Line:   lineNo,
					Text:   raw,
					Reason: "exclude rules cannot specify a target",
				}
			}
			pattern = strings.TrimSpace(line[:idx])
			target = strings.TrimSpace(line[idx+len("->"):])
			if target == "" {
				return nil, &MalformedRuleError{
					Line:   lineNo,
					Text:   raw,
					Reason: "empty target after '->'",
				}
			}
		}

		if pattern == "" {
			return nil, &MalformedRuleError{
				Line:   lineNo,
				Text:   raw,
				Reason: "empty pattern",
			}
		}

		order++
		rules = append(rules, Rule{
			Pattern: pattern,
			Kind:    kind,
			Target:  target,
			Order:   order,
			Line:    lineNo,
		})
	}

	return rules, nil
}

// 📂 Load reads a rule file from disk and parses it
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rule file: %w", err)
	}
	rules, err := Parse(string(data))
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}
	return rules, nil
}
