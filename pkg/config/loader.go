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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// candidates are the settings file names probed by Discover, in order
var candidates = []string{
	".ziprc",
	".ziprc.yaml",
	".ziprc.yml",
	".ziprc.json",
	".ziprc.hcl",
}

// Load loads a settings file from the given path. The format is determined
// by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .ziprc will try both YAML and HCL formats
func Load(ctx context.Context, path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading settings file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var s *Settings

	// For bare .ziprc files, try both YAML and HCL
	if ext == ".ziprc" || filepath.Base(path) == ".ziprc" {
		s, err = loadYAML(data)
		if err != nil {
			s, err = loadHCL(data, path)
		}
		if err != nil {
			return nil, errors.Errorf("parsing %s as YAML or HCL: %w", path, err)
		}
	} else {
		switch ext {
		case ".json":
			s, err = loadJSON(data)
		case ".yaml", ".yml":
			s, err = loadYAML(data)
		case ".hcl":
			s, err = loadHCL(data, path)
		default:
			return nil, errors.Errorf("unsupported settings file extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	s.location = path
	if err := s.Validate(); err != nil {
		return nil, errors.Errorf("validating settings: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("settings loaded")
	return s, nil
}

// Discover probes the project root for a settings file and loads the first
// one found. When none exists the defaults are returned.
func Discover(ctx context.Context, root string) (*Settings, error) {
	for _, name := range candidates {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(ctx, path)
	}
	return Default(), nil
}

// loadJSON loads settings from JSON data
func loadJSON(data []byte) (*Settings, error) {
	var s Settings
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &s, nil
}

// loadYAML loads settings from YAML data
func loadYAML(data []byte) (*Settings, error) {
	var s Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &s, nil
}

// loadHCL loads settings from HCL data
func loadHCL(data []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var s Settings
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &s)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &s, nil
}
