// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framebuffer

import (
	"fmt"
	"strings"

	"github.com/gogpu/gpures/pixel"
)

// Layout is the published format list of a color/depth slot pair.
// It is computed without touching any backend, so a framebuffer can be
// checked before it is allocated.
type Layout struct {
	ColorFormats []pixel.Format
	DepthFormat  pixel.Format
	HasDepth     bool
}

// LayoutOf returns the layout of the given slots.
func LayoutOf(color ColorSlot, depth DepthSlot) Layout {
	df, ok := depth.Format()
	return Layout{
		ColorFormats: color.Formats(),
		DepthFormat:  df,
		HasDepth:     ok,
	}
}

// Slots converts l back into slots, checking every format.
func (l Layout) Slots() (ColorSlot, DepthSlot, error) {
	color, err := ColorFormats(l.ColorFormats...)
	if err != nil {
		return ColorSlot{}, DepthSlot{}, err
	}
	depth := NoDepth
	if l.HasDepth {
		depth, err = DepthFormat(l.DepthFormat)
		if err != nil {
			return ColorSlot{}, DepthSlot{}, err
		}
		if depth.IsEmpty() {
			return ColorSlot{}, DepthSlot{}, fmt.Errorf("%w: depth declared without a format", ErrIncompatibleFormat)
		}
	}
	return color, depth, nil
}

// Validate reports whether l describes a framebuffer that could be built.
func (l Layout) Validate() error {
	_, _, err := l.Slots()
	return err
}

// String formats l as "color[rgba8,r16f] depth[depth32f]".
func (l Layout) String() string {
	var b strings.Builder
	b.WriteString("color[")
	for i, f := range l.ColorFormats {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.String())
	}
	b.WriteString("] depth[")
	if l.HasDepth {
		b.WriteString(l.DepthFormat.String())
	}
	b.WriteByte(']')
	return b.String()
}
