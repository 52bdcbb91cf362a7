// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "context"

// Runner defines the minimal lifecycle contract of the process.
type Runner interface {
	// Run starts the application and blocks until ctx is cancelled or a
	// one-shot run completes.
	Run(ctx context.Context) error
}
