// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/gpures/framebuffer"
	"github.com/gogpu/gpures/pixel"
	"github.com/gogpu/gpures/texture"
)

var errNoFramebuffers = errors.New("fbcheck: layout file declares no framebuffer")

// config is a layout file.
type config struct {
	Framebuffers []framebufferConfig `toml:"framebuffer"`
}

// framebufferConfig is one [[framebuffer]] table.
type framebufferConfig struct {
	Name        string   `toml:"name"`
	Dim         string   `toml:"dim"`
	Width       uint32   `toml:"width"`
	Height      uint32   `toml:"height"`
	Depth       uint32   `toml:"depth"`
	Mipmaps     int      `toml:"mipmaps"`
	Color       []string `toml:"color"`
	DepthFormat string   `toml:"depth_format"`
}

// plan is a checked framebufferConfig, ready to allocate.
type plan struct {
	name    string
	dim     texture.Dim
	size    texture.Size
	mipmaps int
	color   framebuffer.ColorSlot
	depth   framebuffer.DepthSlot
}

// loadConfig decodes a layout file. Unknown keys are errors.
func loadConfig(r io.Reader) (*config, error) {
	var cfg config
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("fbcheck: %s", strict.String())
		}
		return nil, fmt.Errorf("fbcheck: decode layout: %w", err)
	}
	if len(cfg.Framebuffers) == 0 {
		return nil, errNoFramebuffers
	}
	return &cfg, nil
}

// plans checks every framebuffer of cfg, stopping at the first error.
func (cfg *config) plans() ([]*plan, error) {
	seen := make(map[string]bool, len(cfg.Framebuffers))
	out := make([]*plan, 0, len(cfg.Framebuffers))
	for i, fc := range cfg.Framebuffers {
		if fc.Name == "" {
			fc.Name = fmt.Sprintf("framebuffer[%d]", i)
		}
		if seen[fc.Name] {
			return nil, fmt.Errorf("fbcheck: duplicate framebuffer name %q", fc.Name)
		}
		seen[fc.Name] = true

		p, err := fc.plan()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fc.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (fc framebufferConfig) plan() (*plan, error) {
	dim := texture.Dim2
	if fc.Dim != "" {
		d, err := texture.ParseDim(fc.Dim)
		if err != nil {
			return nil, err
		}
		dim = d
	}

	size, err := texture.Normalize(dim, texture.Size{Width: fc.Width, Height: fc.Height, Depth: fc.Depth})
	if err != nil {
		return nil, err
	}
	if fc.Mipmaps < 0 {
		return nil, fmt.Errorf("%w: negative mipmaps %d", texture.ErrInvalidMipCount, fc.Mipmaps)
	}
	if maxLevels := texture.MaxMipLevels(dim, size); 1+fc.Mipmaps > maxLevels {
		return nil, fmt.Errorf("%w: %d levels requested, %v allows %d", texture.ErrInvalidMipCount, 1+fc.Mipmaps, size, maxLevels)
	}

	formats := make([]pixel.Format, len(fc.Color))
	for i, name := range fc.Color {
		f, err := pixel.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		formats[i] = f
	}
	color, err := framebuffer.ColorFormats(formats...)
	if err != nil {
		return nil, err
	}

	depth := framebuffer.NoDepth
	if fc.DepthFormat != "" {
		f, err := pixel.Parse(fc.DepthFormat)
		if err != nil {
			return nil, fmt.Errorf("depth: %w", err)
		}
		if depth, err = framebuffer.DepthFormat(f); err != nil {
			return nil, err
		}
	}

	return &plan{
		name:    fc.Name,
		dim:     dim,
		size:    size,
		mipmaps: fc.Mipmaps,
		color:   color,
		depth:   depth,
	}, nil
}

// layout returns the published formats of p.
func (p *plan) layout() framebuffer.Layout {
	return framebuffer.LayoutOf(p.color, p.depth)
}

// String formats p as "gbuffer: 2d 256x256x1 levels=1 color[rgba8,r16f] depth[depth32f]".
func (p *plan) String() string {
	return fmt.Sprintf("%s: %v %v levels=%d %v", p.name, p.dim, p.size, 1+p.mipmaps, p.layout())
}

// allocate builds p on ctx.
func (p *plan) allocate(ctx framebuffer.Context) (*framebuffer.Framebuffer, error) {
	return framebuffer.New(ctx, p.color, p.depth, p.size, p.mipmaps,
		framebuffer.WithDim(p.dim),
		framebuffer.WithLabel(p.name))
}
