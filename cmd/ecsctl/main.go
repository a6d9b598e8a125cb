// Package main is the entry point for the ecsctl CLI.
//
// ecsctl deploys containerized applications to Amazon ECS by
// provisioning each piece of infrastructure as its own CloudFormation
// stack, in dependency order. It replaces per-application deploy
// scripts with one declarative, idempotent tool.
//
// Commands: deploy, update, delete, status, validate, init, version.
//
// For detailed usage information, run:
//
//	ecsctl --help
package main

import (
	"fmt"
	"os"

	"github.com/rpx-platform/ecsctl/cmd/ecsctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
