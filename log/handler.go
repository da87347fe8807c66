// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Output formats accepted by NewHandler.
const (
	FormatTerminal = "terminal"
	FormatJSON     = "json"
	FormatLogfmt   = "logfmt"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h *discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h *discardHandler) WithGroup(string) slog.Handler             { return h }
func (h *discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }

// levelOrAll returns lvl, or a level enabling every record when lvl is nil.
func levelOrAll(lvl *slog.LevelVar) *slog.LevelVar {
	if lvl != nil {
		return lvl
	}
	var all slog.LevelVar
	all.Set(levelMaxVerbosity)
	return &all
}

// TerminalHandler formats records for human readability, with color-coded
// levels and padded attributes:
//
//	INFO [10-14|09:30:12.123] validators resolved    cadence=epoch validators=100
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
	// fieldPadding is the longest value seen per attribute key
	fieldPadding map[string]int

	buf []byte
}

// NewTerminalHandler returns a terminal handler dropping records below lvl.
// A nil lvl writes every record.
func NewTerminalHandler(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:           wr,
		lvl:          levelOrAll(lvl),
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf := h.format(h.buf, r, h.useColor)
	_, err := h.wr.Write(buf)
	h.buf = buf[:0]
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

// WithGroup is not supported, attributes stay flat.
func (h *TerminalHandler) WithGroup(string) slog.Handler { return h }

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		attrs:        append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
		fieldPadding: make(map[string]int),
	}
}

// JSONHandler returns a handler printing one json object per record.
// A nil lvl writes every record.
func JSONHandler(wr io.Writer, lvl *slog.LevelVar) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr(false),
		Level:       levelOrAll(lvl),
	})
}

// LogfmtHandler returns a handler printing records as logfmt key/value pairs.
// A nil lvl writes every record.
func LogfmtHandler(wr io.Writer, lvl *slog.LevelVar) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr(true),
		Level:       levelOrAll(lvl),
	})
}

// NewHandler returns the handler for the named format, one of FormatTerminal,
// FormatJSON and FormatLogfmt. Records below lvl are dropped.
func NewHandler(format string, wr io.Writer, lvl *slog.LevelVar, useColor bool) (slog.Handler, error) {
	switch strings.ToLower(format) {
	case "", FormatTerminal:
		return NewTerminalHandler(wr, lvl, useColor), nil
	case FormatJSON:
		return JSONHandler(wr, lvl), nil
	case FormatLogfmt:
		return LogfmtHandler(wr, lvl), nil
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}
}

// replaceAttr shortens the builtin keys and prints amounts in decimal.
func replaceAttr(logfmt bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() == slog.KindTime {
				if logfmt {
					return slog.String("t", attr.Value.Time().Format(timeFormat))
				}
				return slog.Attr{Key: "t", Value: attr.Value}
			}
		case slog.LevelKey:
			if l, ok := attr.Value.Any().(slog.Level); ok {
				return slog.Any("lvl", LevelString(l))
			}
		}

		switch v := attr.Value.Any().(type) {
		case time.Time:
			if logfmt {
				attr = slog.String(attr.Key, v.Format(timeFormat))
			}
		case *uint256.Int:
			if v == nil {
				attr.Value = slog.StringValue("<nil>")
			} else {
				attr.Value = slog.StringValue(v.Dec())
			}
		case uint256.Int:
			attr.Value = slog.StringValue(v.Dec())
		case fmt.Stringer:
			if v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil()) {
				attr.Value = slog.StringValue("<nil>")
			} else {
				attr.Value = slog.StringValue(v.String())
			}
		}
		return attr
	}
}
