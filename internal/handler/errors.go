// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when no listen
	// address is configured. Callers treat it as "ops surface disabled".
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoServices is returned by NewHandlers when services is nil.
	errNoServices = errors.New("no services to serve")
)

// IsDisabled reports whether err means no handler was configured.
func IsDisabled(err error) bool {
	return errors.Is(err, errNoHandlersAreCreated)
}
