// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framebuffer

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/gogpu/gpures/pixel"
	"github.com/gogpu/gpures/texture"
)

// MaxColorAttachments is the largest number of color attachments a
// ColorSlot may hold.
const MaxColorAttachments = 16

// ColorSlot is the ordered list of color formats of a framebuffer.
//
// The arity and order of a slot are fixed when it is built. Attachment i of
// a framebuffer is always the texture of format i. The zero ColorSlot is
// NoColor.
type ColorSlot struct {
	formats []pixel.Format
}

// NoColor is the empty color slot: no color attachment at all.
var NoColor = ColorSlot{}

// Color returns a slot with a single color attachment.
func Color[P pixel.ColorAttachment](p P) ColorSlot {
	return ColorSlot{formats: []pixel.Format{mustFormat(p)}}
}

// Color2 returns a slot with two color attachments, in argument order.
func Color2[P0, P1 pixel.ColorAttachment](p0 P0, p1 P1) ColorSlot {
	return ColorSlot{formats: []pixel.Format{mustFormat(p0), mustFormat(p1)}}
}

// Color3 returns a slot with three color attachments, in argument order.
func Color3[P0, P1, P2 pixel.ColorAttachment](p0 P0, p1 P1, p2 P2) ColorSlot {
	return ColorSlot{formats: []pixel.Format{mustFormat(p0), mustFormat(p1), mustFormat(p2)}}
}

// Color4 returns a slot with four color attachments, in argument order.
func Color4[P0, P1, P2, P3 pixel.ColorAttachment](p0 P0, p1 P1, p2 P2, p3 P3) ColorSlot {
	return ColorSlot{formats: []pixel.Format{mustFormat(p0), mustFormat(p1), mustFormat(p2), mustFormat(p3)}}
}

// ColorN returns a slot with one attachment per pixel, in argument order.
// Each argument is checked for compatibility at compile time; the arity and
// nil arguments are checked here.
func ColorN(ps ...pixel.ColorAttachment) (ColorSlot, error) {
	if len(ps) > MaxColorAttachments {
		return ColorSlot{}, fmt.Errorf("%w: %d > %d", ErrTooManyAttachments, len(ps), MaxColorAttachments)
	}
	if len(ps) == 0 {
		return NoColor, nil
	}
	formats := make([]pixel.Format, len(ps))
	for i, p := range ps {
		f, ok := formatOf(p)
		if !ok {
			return ColorSlot{}, fmt.Errorf("%w: color attachment %d is nil", ErrIncompatibleFormat, i)
		}
		formats[i] = f
	}
	return ColorSlot{formats: formats}, nil
}

// ColorFormats returns a slot built from runtime format values.
// Every format must be color renderable.
func ColorFormats(formats ...pixel.Format) (ColorSlot, error) {
	if len(formats) > MaxColorAttachments {
		return ColorSlot{}, fmt.Errorf("%w: %d > %d", ErrTooManyAttachments, len(formats), MaxColorAttachments)
	}
	for i, f := range formats {
		if !f.IsColorRenderable() {
			return ColorSlot{}, fmt.Errorf("%w: color attachment %d: %v is not a renderable color format", ErrIncompatibleFormat, i, f)
		}
	}
	if len(formats) == 0 {
		return NoColor, nil
	}
	return ColorSlot{formats: slices.Clone(formats)}, nil
}

// Formats returns the color formats of the slot in attachment order.
// The returned slice is a copy.
func (s ColorSlot) Formats() []pixel.Format {
	return slices.Clone(s.formats)
}

// Len returns the number of color attachments.
func (s ColorSlot) Len() int {
	return len(s.formats)
}

// IsEmpty reports whether the slot holds no color attachment.
func (s ColorSlot) IsEmpty() bool {
	return len(s.formats) == 0
}

// Format returns the format of attachment i.
func (s ColorSlot) Format(i int) pixel.Format {
	return s.formats[i]
}

// reify allocates one texture per format, in order. On failure every
// texture already created is destroyed and no texture is returned.
func (s ColorSlot) reify(r texture.Reifier, base texture.Descriptor) ([]texture.Texture, error) {
	if len(s.formats) == 0 {
		return nil, nil
	}
	textures := make([]texture.Texture, 0, len(s.formats))
	for i, f := range s.formats {
		desc := base
		desc.Format = f
		if base.Label != "" {
			desc.Label = fmt.Sprintf("%s_color%d", base.Label, i)
		}
		tex, err := r.ReifyTexture(&desc)
		if err != nil {
			destroyAll(textures)
			return nil, &AttachmentError{Slot: SlotColor, Index: i, Format: f, Err: err}
		}
		textures = append(textures, tex)
	}
	return textures, nil
}

// DepthSlot is the optional depth format of a framebuffer.
// The zero DepthSlot is NoDepth.
type DepthSlot struct {
	format pixel.Format
}

// NoDepth is the empty depth slot.
var NoDepth = DepthSlot{}

// Depth returns a slot with a depth attachment of pixel type P.
func Depth[P pixel.DepthPixel](p P) DepthSlot {
	return DepthSlot{format: mustFormat(p)}
}

// DepthFormat returns a slot built from a runtime format value, which must
// be a depth format. pixel.Invalid yields NoDepth.
func DepthFormat(f pixel.Format) (DepthSlot, error) {
	if f == pixel.Invalid {
		return NoDepth, nil
	}
	if !f.IsDepth() {
		return DepthSlot{}, fmt.Errorf("%w: %v is not a depth format", ErrIncompatibleFormat, f)
	}
	return DepthSlot{format: f}, nil
}

// Format returns the depth format, or false for NoDepth.
func (s DepthSlot) Format() (pixel.Format, bool) {
	return s.format, s.format != pixel.Invalid
}

// IsEmpty reports whether the slot holds no depth attachment.
func (s DepthSlot) IsEmpty() bool {
	return s.format == pixel.Invalid
}

func (s DepthSlot) reify(r texture.Reifier, base texture.Descriptor) (texture.Texture, error) {
	if s.IsEmpty() {
		return nil, nil
	}
	desc := base
	desc.Format = s.format
	if base.Label != "" {
		desc.Label = base.Label + "_depth"
	}
	tex, err := r.ReifyTexture(&desc)
	if err != nil {
		return nil, &AttachmentError{Slot: SlotDepth, Format: s.format, Err: err}
	}
	return tex, nil
}

// formatOf returns the format of p, or false if p is a nil interface or a
// nil pointer.
func formatOf(p pixel.Pixel) (pixel.Format, bool) {
	v := reflect.ValueOf(p)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return pixel.Invalid, false
	}
	return p.Format(), true
}

// mustFormat is formatOf for the typed constructors, which have no error
// to return.
func mustFormat[P pixel.Pixel](p P) pixel.Format {
	f, ok := formatOf(p)
	if !ok {
		panic(fmt.Sprintf("framebuffer: nil %v pixel", reflect.TypeFor[P]()))
	}
	return f
}

func destroyAll(textures []texture.Texture) {
	for _, tex := range textures {
		if tex != nil {
			tex.Destroy()
		}
	}
}
