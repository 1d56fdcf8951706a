// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the uploader application runtime.
//
// It expands command-line inputs into upload records, restores a previously
// saved batch token, drives the batch upload service, and writes the
// resulting report as JSON to stdout or a file.
package client
