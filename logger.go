// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpures

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record and reports every level as disabled.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var (
	silent = slog.New(discard{})
	active atomic.Pointer[slog.Logger]
)

func init() {
	active.Store(silent)
}

// SetLogger routes the device logs of package backend and backend/native
// to l. Pass nil to drop them again, which is the default. The typed
// resource packages (pixel, texture, framebuffer, buffer) report failures
// through errors only.
//
// Records and their attributes:
//   - [slog.LevelDebug] "software texture created", "HAL texture created":
//     label, format, size, levels; the matching "... destroyed" records
//   - [slog.LevelDebug] "software buffer created", "HAL buffer created":
//     handle, size (and aligned size on HAL); the matching "... destroyed"
//   - [slog.LevelInfo] "software device initialized", "HAL device opened"
//     (backend, adapter), "HAL device closed"
//   - [slog.LevelWarn] "... device closed with live resources": textures,
//     buffers left undestroyed at Close
//
// fbcheck installs a text handler at Debug with -v and at Warn otherwise.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	active.Store(l)
}

// Logger returns the logger installed by SetLogger. Backends fetch it at
// each log site, so SetLogger may be called at any time from any goroutine.
func Logger() *slog.Logger {
	return active.Load()
}
