/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package whatsapp

import (
	"github.com/charmbracelet/log"
	waLog "go.mau.fi/whatsmeow/util/log"

	"github.com/nephroclinic/clinic/logging"
)

var logger = logging.Logger(logging.SourceWhatsApp)

// whatsmeowComponent separates library output from the clinic's own
// WhatsApp log lines, which share the same source tag.
const whatsmeowComponent = "whatsmeow"

// waLogger feeds whatsmeow's logger interface into the clinic logger.
// Nested modules are joined with "/", e.g. client/Socket.
type waLogger struct {
	base   *log.Logger
	module string
}

func newWALogger(module string) waLog.Logger {
	return &waLogger{base: logger, module: module}
}

func (w *waLogger) entry() *log.Logger {
	entry := w.base.With("component", whatsmeowComponent)
	if w.module != "" {
		entry = entry.With("module", w.module)
	}

	return entry
}

func (w *waLogger) Errorf(msg string, args ...interface{}) {
	w.entry().Errorf(msg, args...)
}

func (w *waLogger) Warnf(msg string, args ...interface{}) {
	w.entry().Warnf(msg, args...)
}

func (w *waLogger) Infof(msg string, args ...interface{}) {
	w.entry().Infof(msg, args...)
}

func (w *waLogger) Debugf(msg string, args ...interface{}) {
	w.entry().Debugf(msg, args...)
}

func (w *waLogger) Sub(module string) waLog.Logger {
	if w.module != "" {
		module = w.module + "/" + module
	}

	return &waLogger{base: w.base, module: module}
}
