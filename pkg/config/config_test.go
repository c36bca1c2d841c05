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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		wantErr     bool
		errContains string
		check       func(t *testing.T, s *Settings)
	}{
		{
			name:     "yaml_settings",
			filename: ".ziprc.yaml",
			content: `
output: dist/release.zip
compression: store
no_color: true
debug: true
`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "dist/release.zip", s.Output)
				assert.Equal(t, CompressionStore, s.Compression)
				assert.True(t, s.NoColor)
				assert.True(t, s.Debug)
			},
		},
		{
			name:     "json_settings",
			filename: ".ziprc.json",
			content:  `{"output": "out.zip"}`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "out.zip", s.Output)
				assert.Equal(t, CompressionDeflate, s.Compression, "compression defaults to deflate")
			},
		},
		{
			name:     "hcl_settings",
			filename: ".ziprc.hcl",
			content: `
output      = "out.zip"
compression = "deflate"
`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "out.zip", s.Output)
				assert.Equal(t, CompressionDeflate, s.Compression)
			},
		},
		{
			name:     "bare_ziprc_tries_yaml_then_hcl",
			filename: ".ziprc",
			content:  `output = "out.zip"`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "out.zip", s.Output)
			},
		},
		{
			name:        "unknown_yaml_field_rejected",
			filename:    ".ziprc.yaml",
			content:     "outputs: oops.zip\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unsupported_extension",
			filename:    "settings.toml",
			content:     "output = 'out.zip'\n",
			wantErr:     true,
			errContains: "unsupported settings file extension",
		},
		{
			name:        "invalid_compression",
			filename:    ".ziprc.yaml",
			content:     "compression: brotli\n",
			wantErr:     true,
			errContains: "unsupported compression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			s, err := Load(context.Background(), path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, path, s.Location())
			tt.check(t, s)
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Run("no_settings_file_returns_defaults", func(t *testing.T) {
		s, err := Discover(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, CompressionDeflate, s.Compression)
		assert.Empty(t, s.Location())
	})

	t.Run("finds_yaml_in_root", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".ziprc.yaml"), []byte("output: found.zip\n"), 0644))

		s, err := Discover(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, "found.zip", s.Output)
		assert.Equal(t, filepath.Join(dir, ".ziprc.yaml"), s.Location())
	})

	t.Run("bare_ziprc_probed_first", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".ziprc"), []byte(`output = "bare.zip"`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".ziprc.yaml"), []byte("output: yaml.zip\n"), 0644))

		s, err := Discover(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, "bare.zip", s.Output)
	})
}
