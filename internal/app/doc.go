// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app implements the table mirror process runtime.
//
// It wires the mirror services, the background refresh job and the optional
// ops listener into a single process lifecycle.
package app
