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

// Package archive materializes a resolved plan as a zip file. It treats the
// plan as opaque: every entry is a (source path, archive path) pair, read
// once and stored under its archive path with forward-slash separators.
package archive

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/ziprc/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// Options configures the archive writer
type Options struct {
	// Output is the path of the zip file to produce
	Output string
	// Store disables deflate compression and stores entries verbatim
	Store bool
}

// Write materializes the resolved plan as a zip archive. The archive is
// assembled under a temporary name and renamed into place only after every
// entry has been written and flushed, so a failed run never leaves a
// partially written archive behind.
func Write(ctx context.Context, pl *plan.Plan, opts Options) (err error) {
	logger := zerolog.Ctx(ctx)

	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Errorf("creating output directory: %w", err)
		}
	}

	tmp := opts.Output + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Errorf("creating archive: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	method := zip.Deflate
	if opts.Store {
		method = zip.Store
	}

	zw := zip.NewWriter(f)
	for _, entry := range pl.Entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Errorf("archiving interrupted: %w", ctxErr)
		}
		if err := writeEntry(zw, entry, method); err != nil {
			return err
		}
		logger.Debug().
			Str("source", entry.RelSource).
			Str("archivePath", entry.ArchivePath).
			Msg("entry written")
	}

	if err := zw.Close(); err != nil {
		return errors.Errorf("finalizing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing archive: %w", err)
	}
	if err := os.Rename(tmp, opts.Output); err != nil {
		os.Remove(tmp)
		return errors.Errorf("moving archive into place: %w", err)
	}

	logger.Info().
		Int("entries", len(pl.Entries)).
		Str("output", opts.Output).
		Msg("archive written")

	return nil
}

// writeEntry copies one source file into the archive, closing the source
// before returning.
func writeEntry(zw *zip.Writer, entry plan.Entry, method uint16) error {
	src, err := os.Open(entry.Source)
	if err != nil {
		return errors.Errorf("opening %s: %w", entry.RelSource, err)
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   entry.ArchivePath,
		Method: method,
	})
	if err != nil {
		return errors.Errorf("creating entry %s: %w", entry.ArchivePath, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return errors.Errorf("writing entry %s: %w", entry.ArchivePath, err)
	}
	return nil
}
