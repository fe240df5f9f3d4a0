//go:build tools
// +build tools

// Package tools pins the development tools used to lint, test and release
// cdv so that `go run` resolves them at the versions recorded in go.mod.
package tools

import (
	// Linting
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"

	// Import formatting
	_ "golang.org/x/tools/cmd/goimports"

	// Coverage reports for the command and cordova packages
	_ "golang.org/x/tools/cmd/cover"

	// Release builds (sets main.version)
	_ "github.com/goreleaser/goreleaser"
)
