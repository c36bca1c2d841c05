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

package log

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/walteh/ziprc/pkg/ruleset"
)

// newTestConsole returns a console writing plain text into a buffer
func newTestConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	pterm.DisableColor()

	buf := &bytes.Buffer{}
	return New(buf, zerolog.Nop()), buf
}

func TestConsoleBanner(t *testing.T) {
	c, buf := newTestConsole(t)
	c.Banner("/proj", "/proj/pack.ziplist", "/proj/pack.zip")

	out := buf.String()
	assert.Contains(t, out, "project root: /proj")
	assert.Contains(t, out, "rule file:    /proj/pack.ziplist")
	assert.Contains(t, out, "output:       /proj/pack.zip")
}

func TestConsoleFileLines(t *testing.T) {
	c, buf := newTestConsole(t)

	c.Rule(ruleset.Rule{Pattern: "Sounds/**", Kind: ruleset.Include})
	c.FileAdded("Sounds/a.wav", "a.wav")
	c.FileSkipped("Sounds/b.wav")

	out := buf.String()
	assert.Contains(t, out, "rule: 'Sounds/**'")
	assert.Contains(t, out, "[add]  'Sounds/a.wav' -> 'a.wav'")
	assert.Contains(t, out, "[skip] 'Sounds/b.wav'")
}

func TestConsoleWarningsAndSummary(t *testing.T) {
	c, buf := newTestConsole(t)

	c.Missing("missing/*.exe", 3)
	c.Collision("bin/tool.exe", "new/tool.exe", []string{"old/tool.exe"})
	c.Summary(7, "dist.zip")
	c.NothingToPack()

	out := buf.String()
	assert.Contains(t, out, "MISSING: missing/*.exe (line 3)")
	assert.Contains(t, out, "archive path 'bin/tool.exe' contested")
	assert.Contains(t, out, "keeping 'new/tool.exe'")
	assert.Contains(t, out, "dropping 'old/tool.exe'")
	assert.Contains(t, out, "packed 7 files into dist.zip")
	assert.Contains(t, out, "nothing to pack")
}
