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

// Presetify writes a camera raw preset for each of the given images.
//
// Usage:
//
//	presetify [flags] image...
//
// The develop settings are read from the image metadata using exiftool.
// The preset for "photo.jpg" is written to "photo_preset.xmp" in the same
// directory.  Existing presets are kept unless -force is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/JayLindblad/presetify/exiftool"
)

// cliFlags holds the command line settings which are not part of the
// configuration file.
type cliFlags struct {
	interactive bool
	debug       bool
}

// parseArgs parses the command line and loads the configuration file.
// Flags which are given explicitly override the file.
func parseArgs(args []string, stderr io.Writer) (*Config, *cliFlags, []string, error) {
	fs := flag.NewFlagSet("presetify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: presetify [flags] image...")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "read settings from this YAML `file`")
	exifTool := fs.String("exiftool", exiftool.DefaultPath, "the exiftool `program`")
	workers := fs.Int("workers", 0, "number of images to convert in parallel (default: number of CPUs)")
	force := fs.Bool("force", false, "overwrite existing presets")
	reportUnknown := fs.Bool("report-unknown", false, "warn about camera raw tags which are not supported")
	cli := &cliFlags{}
	fs.BoolVar(&cli.interactive, "interactive", false, "ask for the name of each preset")
	fs.BoolVar(&cli.debug, "debug", false, "enable debug logging")

	err := fs.Parse(args)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "exiftool":
			cfg.ExifTool = *exifTool
		case "workers":
			cfg.Workers = *workers
		case "force":
			cfg.Overwrite = *force
		case "report-unknown":
			cfg.ReportUnknown = *reportUnknown
		case "debug":
			if cli.debug {
				cfg.LogLevel = "debug"
			}
		}
	})
	err = cfg.validate()
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, cli, fs.Args(), nil
}

// run executes the command and returns the exit status.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg, cli, paths, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	} else if err != nil {
		fmt.Fprintln(stderr, "presetify:", err)
		return 2
	}
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "usage: presetify [flags] image...")
		return 2
	}

	log, err := newLogger(cfg.LogLevel, cli.debug)
	if err != nil {
		fmt.Fprintln(stderr, "presetify:", err)
		return 2
	}
	defer log.Sync()

	conv, preset, err := cfg.converter()
	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return 2
	}

	b := &batch{
		conv:      conv,
		preset:    preset,
		reader:    &exiftool.Tool{Path: cfg.ExifTool},
		log:       log,
		overwrite: cfg.Overwrite,
		workers:   cfg.Workers,
	}

	var n namer = fileNamer{}
	if cli.interactive {
		n = surveyNamer{}
	}
	jobs, err := b.jobs(ctx, n, paths)
	if err != nil {
		log.Error("cannot choose preset names", zap.Error(err))
		return 1
	}

	s := b.run(ctx, jobs)
	log.Info("done",
		zap.Int("written", s.written),
		zap.Int("skipped", s.skipped),
		zap.Int("failed", s.failed))
	if s.failed > 0 {
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
