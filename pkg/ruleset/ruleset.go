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

// 🏷️ Kind discriminates include rules from exclude rules
type Kind int

const (
	Include Kind = iota
	Exclude
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case Include:
		return "include"
	case Exclude:
		return "exclude"
	default:
		return "unknown"
	}
}

// 📏 Rule is one parsed directive from a .ziplist file. Rules are immutable
// once parsed; Order defines precedence between rules of the same kind
// (later in the file wins).
type Rule struct {
	Pattern string // slash-separated path pattern, may contain * and **
	Kind    Kind   // include or exclude
	Target  string // optional archive placement template, include rules only
	Order   int    // 1-based position among significant lines
	Line    int    // 1-based line number in the rule file, for diagnostics
}

// String renders the rule the way it would appear in a rule file
func (r Rule) String() string {
	if r.Kind == Exclude {
		return "!" + r.Pattern
	}
	if r.Target != "" {
		return r.Pattern + " -> " + r.Target
	}
	return r.Pattern
}
