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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/ziprc/pkg/ruleset"
)

// writeTree creates the given relative files under root with stub content
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, rel := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte("stub: "+rel), 0644))
	}
}

// buildPlan parses the rule text and builds an unresolved plan over root
func buildPlan(t *testing.T, root, rules string) (*Plan, error) {
	t.Helper()
	parsed, err := ruleset.Parse(rules)
	require.NoError(t, err)
	planner := NewPlanner(Options{Root: root})
	return planner.Build(context.Background(), parsed)
}

// mapping flattens plan entries into relSource -> archivePath
func mapping(pl *Plan) map[string]string {
	out := map[string]string{}
	for _, e := range pl.Entries {
		out[e.RelSource] = e.ArchivePath
	}
	return out
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		rules string
		want  map[string]string // relSource -> archivePath after Resolve
	}{
		{
			name:  "flatten_to_archive_root_without_target",
			files: []string{"Debug/TrayIconDll.dll", "Ping.dll"},
			rules: "Debug/TrayIconDll.dll\nPing.dll\n",
			want: map[string]string{
				"Debug/TrayIconDll.dll": "TrayIconDll.dll",
				"Ping.dll":              "Ping.dll",
			},
		},
		{
			name:  "recursive_preserves_structure",
			files: []string{"Sounds/a.wav", "Sounds/sub/c.ogg"},
			rules: "Sounds/**\n",
			want: map[string]string{
				"Sounds/a.wav":     "a.wav",
				"Sounds/sub/c.ogg": "sub/c.ogg",
			},
		},
		{
			name:  "single_level_wildcard_flattens",
			files: []string{"Sounds/a.wav", "Sounds/b.mp3", "Sounds/sub/c.ogg"},
			rules: "Sounds/*.*\nSounds/sub/c.ogg\n",
			want: map[string]string{
				"Sounds/a.wav":     "a.wav",
				"Sounds/b.mp3":     "b.mp3",
				"Sounds/sub/c.ogg": "c.ogg",
			},
		},
		{
			name:  "directory_target_keeps_filename",
			files: []string{"Debug/AgentExe.exe"},
			rules: "Debug/AgentExe.exe -> bin/*\n",
			want: map[string]string{
				"Debug/AgentExe.exe": "bin/AgentExe.exe",
			},
		},
		{
			name:  "verbatim_target_renames",
			files: []string{"Debug/AgentExe.exe"},
			rules: "Debug/AgentExe.exe -> bin/Agent.exe\n",
			want: map[string]string{
				"Debug/AgentExe.exe": "bin/Agent.exe",
			},
		},
		{
			name:  "recursive_with_directory_target_preserves_structure",
			files: []string{"Sounds/a.wav", "Sounds/sub/c.ogg"},
			rules: "Sounds/** -> Sounds1/**\n",
			want: map[string]string{
				"Sounds/a.wav":     "Sounds1/a.wav",
				"Sounds/sub/c.ogg": "Sounds1/sub/c.ogg",
			},
		},
		{
			name:  "exclusion_beats_inclusion",
			files: []string{"Sounds/a.wav", "Sounds/b.mp3"},
			rules: "Sounds/*.*\n!Sounds/a.wav\n",
			want: map[string]string{
				"Sounds/b.mp3": "b.mp3",
			},
		},
		{
			name:  "later_include_overrides_earlier_for_same_source",
			files: []string{"assets/icon.png"},
			rules: "assets/icon.png -> one/icon.png\nassets/icon.png -> two/icon.png\n",
			want: map[string]string{
				"assets/icon.png": "two/icon.png",
			},
		},
		{
			name:  "combined_rules_end_to_end",
			files: []string{"assets/icon.png", "assets/readme.tmp", "assets/sub/data.bin"},
			rules: "assets/**\n!**/*.tmp\nassets/icon.png -> images/icon.png\n",
			want: map[string]string{
				"assets/icon.png":     "images/icon.png",
				"assets/sub/data.bin": "sub/data.bin",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files...)

			pl, err := buildPlan(t, root, tt.rules)
			require.NoError(t, err)
			pl.Resolve()

			assert.Equal(t, tt.want, mapping(pl))
		})
	}
}

func TestBuildEmptyMatchIsFatal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "bin/tool.exe")

	_, err := buildPlan(t, root, "bin/tool.exe\nmissing/*.exe\n")
	require.Error(t, err)

	var emptyErr *EmptyMatchError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "missing/*.exe", emptyErr.Rule.Pattern)
	assert.Equal(t, 2, emptyErr.Rule.Line)
	assert.Contains(t, err.Error(), "missing/*.exe")
}

func TestBuildExcludeMayMatchNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "bin/tool.exe")

	pl, err := buildPlan(t, root, "bin/tool.exe\n!**/*.tmp\n")
	require.NoError(t, err, "zero-match exclude rules are not an error")
	assert.Len(t, pl.Entries, 1)
}

func TestBuildExclusionIsOrderIndependent(t *testing.T) {
	files := []string{"assets/icon.png", "assets/readme.tmp", "assets/sub/data.bin"}

	first := "!**/*.tmp\nassets/**\n"
	last := "assets/**\n!**/*.tmp\n"

	rootA := t.TempDir()
	writeTree(t, rootA, files...)
	plA, err := buildPlan(t, rootA, first)
	require.NoError(t, err)
	plA.Resolve()

	rootB := t.TempDir()
	writeTree(t, rootB, files...)
	plB, err := buildPlan(t, rootB, last)
	require.NoError(t, err)
	plB.Resolve()

	assert.Equal(t, mapping(plA), mapping(plB), "moving the exclude rule must not change the plan")
}

func TestDirectoryTargetSpellingsAreEquivalent(t *testing.T) {
	for _, target := range []string{"bin/", "bin/*", "bin/*.*", "bin/**"} {
		t.Run(target, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, "Debug/AgentExe.exe")

			pl, err := buildPlan(t, root, "Debug/AgentExe.exe -> "+target+"\n")
			require.NoError(t, err)
			pl.Resolve()

			assert.Equal(t, map[string]string{
				"Debug/AgentExe.exe": "bin/AgentExe.exe",
			}, mapping(pl))
		})
	}
}

// reporterSpy records planning events for assertions
type reporterSpy struct {
	rules   []string
	added   []string
	skipped []string
}

func (r *reporterSpy) Rule(rule ruleset.Rule)    { r.rules = append(r.rules, rule.String()) }
func (r *reporterSpy) FileAdded(rel, arc string) { r.added = append(r.added, rel+" -> "+arc) }
func (r *reporterSpy) FileSkipped(rel string)    { r.skipped = append(r.skipped, rel) }

func TestBuildReportsSkippedFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "Sounds/a.wav", "Sounds/b.mp3")

	parsed, err := ruleset.Parse("Sounds/*.*\n!**/*.wav\n")
	require.NoError(t, err)

	spy := &reporterSpy{}
	planner := NewPlanner(Options{Root: root, Reporter: spy})
	_, err = planner.Build(context.Background(), parsed)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sounds/a.wav"}, spy.skipped, "excluded file should be reported once, when its include rule folds")
	assert.Equal(t, []string{"Sounds/b.mp3 -> b.mp3"}, spy.added)
	assert.Len(t, spy.rules, 2, "both rules echoed")
}
