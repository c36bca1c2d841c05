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

package pattern

import (
	"path"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ SegmentKind classifies one slash-separated component of a pattern
type SegmentKind int

const (
	// Literal matches its text exactly (case-sensitive)
	Literal SegmentKind = iota
	// Wildcard matches within a single path component ('*', '*.*', 'lib*.dll')
	Wildcard
	// Recursive is the '**' marker, matching zero or more path components
	Recursive
)

// Segment is one component of a compiled pattern
type Segment struct {
	Kind SegmentKind
	Text string // the component as written
}

// 🧩 Pattern is a compiled path pattern. Patterns are slash-separated and
// case-sensitive regardless of the host platform, and always resolve
// relative to the project root.
type Pattern struct {
	raw       string
	segments  []Segment
	recursive bool
	// fixedPrefix is the deepest non-wildcard ancestor directory of the
	// pattern, used as the walk base and as the anchor for structure
	// preservation. Empty when the pattern starts with a wildcard.
	fixedPrefix string
}

// Compile parses a raw pattern into its segment form. Backslashes are
// normalized to forward slashes so rule files written on Windows behave
// identically.
func Compile(raw string) (*Pattern, error) {
	clean := strings.ReplaceAll(raw, "\\", "/")
	clean = strings.TrimPrefix(clean, "./")
	clean = strings.Trim(clean, "/")
	if clean == "" {
		return nil, errors.Errorf("empty pattern %q", raw)
	}

	parts := strings.Split(clean, "/")
	segments := make([]Segment, 0, len(parts))
	recursive := false
	for _, part := range parts {
		if part == "" {
			return nil, errors.Errorf("pattern %q contains an empty component", raw)
		}
		seg := Segment{Kind: Literal, Text: part}
		switch {
		case part == "**":
			seg.Kind = Recursive
			recursive = true
		case strings.Contains(part, "*"):
			seg.Kind = Wildcard
		}
		segments = append(segments, seg)
	}

	return &Pattern{
		raw:         clean,
		segments:    segments,
		recursive:   recursive,
		fixedPrefix: fixedPrefix(segments),
	}, nil
}

// fixedPrefix joins the literal segments preceding the first wildcard or
// recursive segment. For a fully literal pattern the final component is a
// file name, not a directory, so it is excluded.
func fixedPrefix(segments []Segment) string {
	parts := []string{}
	for i, seg := range segments {
		if seg.Kind != Literal {
			break
		}
		if i == len(segments)-1 {
			break
		}
		parts = append(parts, seg.Text)
	}
	return path.Join(parts...)
}

// String returns the normalized pattern text
func (p *Pattern) String() string {
	return p.raw
}

// Segments returns the compiled segment sequence
func (p *Pattern) Segments() []Segment {
	return p.segments
}

// HasRecursive reports whether the pattern contains a '**' segment
func (p *Pattern) HasRecursive() bool {
	return p.recursive
}

// HasWildcard reports whether the pattern contains any wildcard segment
func (p *Pattern) HasWildcard() bool {
	for _, seg := range p.segments {
		if seg.Kind != Literal {
			return true
		}
	}
	return false
}

// FixedPrefix returns the deepest non-wildcard ancestor directory
func (p *Pattern) FixedPrefix() string {
	return p.fixedPrefix
}
