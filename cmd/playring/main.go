// Package main is the entry point for playring.
//
// Build:
//
//	go build -ldflags "-X github.com/tejashwikalptaru/playring/internal/app.Version=1.0.0" -o build/playring ./cmd/playring
//
// Run:
//
//	./build/playring serve
//	./build/playring menu
package main

import "github.com/tejashwikalptaru/playring/internal/cli"

func main() {
	cli.Execute()
}
