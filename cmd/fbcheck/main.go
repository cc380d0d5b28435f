// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command fbcheck validates framebuffer layouts described in a TOML file
// and optionally allocates them on a backend.
//
// Usage:
//
//	fbcheck [-backend software|noop|native] [-alloc] [-v] layout.toml
//
// A layout file holds one [[framebuffer]] table per framebuffer:
//
//	[[framebuffer]]
//	name = "gbuffer"
//	dim = "2d"
//	width = 256
//	height = 256
//	mipmaps = 0
//	color = ["rgba8", "r16f"]
//	depth_format = "depth32f"
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gpures"
	"github.com/gogpu/gpures/backend"
	_ "github.com/gogpu/gpures/backend/native"
)

func main() {
	var (
		backendName = flag.String("backend", backend.BackendSoftware, "backend used with -alloc (software, noop, native)")
		alloc       = flag.Bool("alloc", false, "allocate every framebuffer on the backend")
		verbose     = flag.Bool("v", false, "log backend activity")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: fbcheck [flags] layout.toml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	gpures.SetLogger(logger)

	if err := run(os.Stdout, flag.Arg(0), *backendName, *alloc); err != nil {
		logger.Error("fbcheck failed", "error", err)
		os.Exit(1)
	}
}

func run(w io.Writer, path, backendName string, alloc bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	plans, err := cfg.plans()
	if err != nil {
		return err
	}
	for _, p := range plans {
		fmt.Fprintln(w, p)
	}
	if !alloc {
		return nil
	}

	dev, err := backend.Open(backendName)
	if err != nil {
		return err
	}
	defer dev.Close()

	for _, p := range plans {
		if err := allocate(w, dev, p); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
	}
	return nil
}

// allocate builds p on dev, reports its attachments and releases it.
func allocate(w io.Writer, dev backend.Device, p *plan) error {
	fb, err := p.allocate(dev)
	if err != nil {
		return err
	}
	defer fb.Destroy()

	for i, tex := range fb.ColorSlot().Textures() {
		fmt.Fprintf(w, "  %s color%d: %v %v levels=%d\n", p.name, i, tex.Format(), tex.Size(), tex.MipLevels())
	}
	if tex, ok := fb.DepthSlot().Texture(); ok {
		fmt.Fprintf(w, "  %s depth: %v %v levels=%d\n", p.name, tex.Format(), tex.Size(), tex.MipLevels())
	}
	fmt.Fprintf(w, "  %s: allocated on %s\n", p.name, dev.Name())
	return nil
}
