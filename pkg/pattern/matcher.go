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
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Match is one regular file selected by a pattern
type Match struct {
	// AbsPath is the absolute filesystem path of the matched file
	AbsPath string
	// RelPath is the file's slash-separated path relative to the project root
	RelPath string
	// PreservePath is the file's slash-separated path relative to the
	// pattern's fixed prefix, used to keep nested structure for recursive
	// patterns. For a literal pattern it degenerates to the bare file name.
	PreservePath string
}

// Match evaluates the pattern against the filesystem rooted at root and
// returns every matching regular file. Results are sorted lexicographically
// by RelPath so downstream folding and collision tie-breaks are reproducible
// across platforms and runs. A pattern that matches nothing returns an empty
// set, not an error; zero-match handling is the planner's concern.
func (p *Pattern) Match(ctx context.Context, root string) ([]Match, error) {
	if !p.HasWildcard() {
		return p.matchLiteral(root)
	}
	return p.matchWalk(ctx, root)
}

// matchLiteral resolves a wildcard-free pattern, which names at most one file
func (p *Pattern) matchLiteral(root string) ([]Match, error) {
	abs := filepath.Join(root, filepath.FromSlash(p.raw))
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("resolving %q: %w", p.raw, err)
	}
	if !info.Mode().IsRegular() {
		return nil, nil
	}
	return []Match{{
		AbsPath:      abs,
		RelPath:      p.raw,
		PreservePath: p.preservePath(p.raw),
	}}, nil
}

// matchWalk resolves a wildcard pattern by walking the tree below the
// pattern's fixed prefix and filtering candidates through the glob.
func (p *Pattern) matchWalk(ctx context.Context, root string) ([]Match, error) {
	base := filepath.Join(root, filepath.FromSlash(p.fixedPrefix))
	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("pattern", p.raw).Str("base", base).Msg("walk base does not exist")
			return nil, nil
		}
		return nil, errors.Errorf("resolving walk base for %q: %w", p.raw, err)
	}

	var matches []Match
	err := filepath.WalkDir(base, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", walkPath, err)
		}

		relOS, err := filepath.Rel(root, walkPath)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", walkPath, err)
		}
		rel := filepath.ToSlash(relOS)

		if d.IsDir() {
			// A non-recursive pattern cannot match below its own depth,
			// so deeper directories need not be walked at all.
			if !p.recursive && rel != "." && pathDepth(rel) >= len(p.segments) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ok, err := doublestar.Match(p.raw, rel)
		if err != nil {
			return errors.Errorf("matching %q against %s: %w", p.raw, rel, err)
		}
		if !ok {
			return nil
		}

		matches = append(matches, Match{
			AbsPath:      walkPath,
			RelPath:      rel,
			PreservePath: p.preservePath(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].RelPath < matches[j].RelPath
	})

	zerolog.Ctx(ctx).Debug().
		Str("pattern", p.raw).
		Int("matches", len(matches)).
		Msg("pattern evaluated")

	return matches, nil
}

// preservePath strips the fixed prefix from a root-relative path
func (p *Pattern) preservePath(rel string) string {
	if p.fixedPrefix == "" {
		return rel
	}
	return strings.TrimPrefix(rel, p.fixedPrefix+"/")
}

// pathDepth counts the components of a slash path
func pathDepth(rel string) int {
	return strings.Count(rel, "/") + 1
}
