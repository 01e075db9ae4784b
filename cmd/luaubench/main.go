// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"go.luau.dev/cst/internal/luaubench"
)

func main() {
	rootCommand := luaubench.New()
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "luaubench:", err)
		os.Exit(1)
	}
}
