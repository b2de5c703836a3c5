// presetify - camera raw presets from image metadata
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JayLindblad/presetify"
	"github.com/JayLindblad/presetify/exiftool"
	"github.com/JayLindblad/presetify/model"
)

// job is one image to convert.
type job struct {
	source string
	name   string
}

// batch converts a list of images.
type batch struct {
	conv      *presetify.Converter
	preset    model.PresetMetadata
	reader    exiftool.Reader
	log       *zap.Logger
	overwrite bool
	workers   int
}

// stats counts the outcomes of a batch.
type stats struct {
	written int
	skipped int
	failed  int
}

// jobs chooses the preset names.  Prompts run one at a time, before any
// conversion starts.
func (b *batch) jobs(ctx context.Context, n namer, paths []string) ([]job, error) {
	jobs := make([]job, 0, len(paths))
	for _, path := range paths {
		name, err := n.Name(ctx, path, presetify.PresetName(path))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{source: path, name: name})
	}
	return jobs, nil
}

// run converts the images concurrently.  A failing image is logged and
// counted; the other images are still converted.
func (b *batch) run(ctx context.Context, jobs []job) stats {
	var written, skipped, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(max(b.workers, 1))
	for _, j := range jobs {
		g.Go(func() error {
			ok, err := b.convert(ctx, j)
			switch {
			case err != nil:
				b.log.Error("conversion failed",
					zap.String("image", j.source),
					zap.Error(err))
				failed.Add(1)
			case ok:
				written.Add(1)
			default:
				skipped.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return stats{
		written: int(written.Load()),
		skipped: int(skipped.Load()),
		failed:  int(failed.Load()),
	}
}

// convert writes the preset for one image.  It reports false if the preset
// file exists and overwriting is disabled.
func (b *batch) convert(ctx context.Context, j job) (bool, error) {
	out := presetify.OutputPath(j.source)
	if !b.overwrite {
		if _, err := os.Stat(out); err == nil {
			b.log.Info("preset exists, skipping",
				zap.String("image", j.source),
				zap.String("preset", out))
			return false, nil
		}
	}

	tags, err := b.reader.ReadTags(ctx, j.source)
	if err != nil {
		return false, err
	}
	b.log.Debug("metadata read",
		zap.String("image", j.source),
		zap.Int("tags", len(tags)))

	preset := b.preset
	preset.Name = j.name
	res, err := b.conv.Convert(tags, preset)
	if err != nil {
		return false, err
	}
	for _, w := range res.Warnings {
		b.log.Warn("metadata repaired",
			zap.String("image", j.source),
			zap.Stringer("kind", w.Kind),
			zap.String("field", w.Field),
			zap.String("tag", w.Tag),
			zap.String("raw", w.Raw),
			zap.String("reason", w.Reason))
	}

	err = writePreset(out, res.Document, b.overwrite)
	if errors.Is(err, fs.ErrExist) {
		b.log.Info("preset exists, skipping",
			zap.String("image", j.source),
			zap.String("preset", out))
		return false, nil
	} else if err != nil {
		return false, err
	}

	b.log.Info("preset written",
		zap.String("image", j.source),
		zap.String("preset", out),
		zap.String("name", j.name),
		zap.Int("warnings", len(res.Warnings)))
	return true, nil
}

func writePreset(path string, doc []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	_, err = f.Write(doc)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
