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

// Package config manages the optional ziprc settings file. Rule semantics
// live entirely in the rule file; settings only tune tool behavior (output
// path, compression, colors, logging).
package config

import (
	"gitlab.com/tozd/go/errors"
)

// Compression methods for archive entries
const (
	CompressionDeflate = "deflate"
	CompressionStore   = "store"
)

// 📚 Settings represents the complete tool configuration
type Settings struct {
	Output      string `json:"output,omitempty"      yaml:"output,omitempty"      hcl:"output,optional"`      // override output archive path
	Compression string `json:"compression,omitempty" yaml:"compression,omitempty" hcl:"compression,optional"` // "deflate" (default) or "store"
	NoColor     bool   `json:"no_color,omitempty"    yaml:"no_color,omitempty"    hcl:"no_color,optional"`    // disable colored console output
	Debug       bool   `json:"debug,omitempty"       yaml:"debug,omitempty"       hcl:"debug,optional"`       // enable debug logging

	location string // path the settings were loaded from, empty for defaults
}

// Default returns the built-in settings
func Default() *Settings {
	return &Settings{Compression: CompressionDeflate}
}

// Location returns the path the settings were loaded from, or "" for defaults
func (s *Settings) Location() string {
	return s.location
}

// 🔍 Validate checks the settings and fills in defaults
func (s *Settings) Validate() error {
	if s.Compression == "" {
		s.Compression = CompressionDeflate
	}
	switch s.Compression {
	case CompressionDeflate, CompressionStore:
	default:
		return errors.Errorf("unsupported compression %q (want %q or %q)",
			s.Compression, CompressionDeflate, CompressionStore)
	}
	return nil
}
