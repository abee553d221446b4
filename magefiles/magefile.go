//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the pantry project using Mage.
//
// Usage:
//
//	mage build          Compile the pantry binary to bin/
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Write coverage.out and print per-function coverage
//	mage lint           Run golangci-lint
//	mage vet            Run go vet
//	mage clean          Remove build artifacts
//	mage install        Install pantry to GOPATH/bin
//	mage stats          Print Go line counts per package
package main

const (
	binGo      = "go"
	binaryName = "pantry"
	binaryDir  = "bin"
	cmdDir     = "./cmd/pantry"
	coverFile  = "coverage.out"
)
