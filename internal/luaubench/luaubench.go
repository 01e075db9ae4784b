// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

// Package luaubench provides a Cobra command that benchmarks [luau.Parse]
// against a set of source files. Its command-line options and the shape of
// its report are independent of the parser itself: this package is an
// external collaborator, not part of the core contract.
package luaubench

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"zombiezen.com/go/log"

	"go.luau.dev/cst"
	"go.luau.dev/cst/internal/xio"
	"go.luau.dev/cst/internal/xmaps"
	"go.luau.dev/cst/sets"
	"go.luau.dev/cst/sortedset"
)

type options struct {
	inputs       []string
	manifestPath string
	iterations   int
	concurrency  int
	jsonOutput   bool
	showDebug    bool
}

// manifest is the shape of an optional TOML file passed via --manifest, an
// alternative to listing source paths on the command line.
type manifest struct {
	Files      []string `toml:"files"`
	Iterations int      `toml:"iterations"`
}

// New returns a new luaubench command.
func New() *cobra.Command {
	opts := new(options)
	c := &cobra.Command{
		Use:                   "luaubench [FILE...]",
		Short:                 "benchmark the Luau CST parser",
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.Flags().IntVarP(&opts.iterations, "iterations", "n", 1, "number of parse iterations per file")
	c.Flags().IntVar(&opts.concurrency, "concurrency", 1, "number of files to parse concurrently")
	c.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the report as JSON instead of a table")
	c.Flags().StringVar(&opts.manifestPath, "manifest", "", "path to a TOML manifest of files and iteration count")
	c.Flags().BoolVar(&opts.showDebug, "debug", false, "show debug-level log output")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		initLogging(opts.showDebug)
		opts.inputs = args
		return run(cmd.Context(), opts)
	}
	return c
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLevel := log.Info
		if showDebug {
			minLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLevel,
			Output: log.New(os.Stderr, "luaubench: ", log.StdFlags, nil),
		})
	})
}

// Result is one row of the benchmark report.
type Result struct {
	Name      string  `json:"name"`
	SizeKB    float64 `json:"sizeKB"`
	TimeMS    float64 `json:"timeMS"`
	SpeedKBPS float64 `json:"speedKBPerSec"`
	OK        bool    `json:"ok"`
	Error     string  `json:"error,omitempty"`
}

func run(ctx context.Context, opts *options) error {
	files := opts.inputs
	iterations := opts.iterations
	if opts.manifestPath != "" {
		var m manifest
		if _, err := toml.DecodeFile(opts.manifestPath, &m); err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}
		files = append(files, m.Files...)
		if m.Iterations > 0 {
			iterations = m.Iterations
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files (pass paths or --manifest)")
	}
	if iterations < 1 {
		iterations = 1
	}
	// Command-line paths and a manifest's file list commonly overlap; dedupe
	// so a file named both ways isn't benchmarked twice.
	uniqueFiles := sortedset.New(files...)
	files = make([]string, uniqueFiles.Len())
	for i := range files {
		files[i] = uniqueFiles.At(i)
	}

	// Warn about each unrecognized extension once, not once per file.
	unknownExts := make(sets.Set[string])
	for _, name := range files {
		if ext := filepath.Ext(name); ext != ".lua" && ext != ".luau" {
			unknownExts.Add(ext)
		}
	}
	for _, ext := range xmaps.SortedKeys(unknownExts) {
		log.Warnf(ctx, "benchmarking file(s) with unrecognized extension %q", ext)
	}

	results := make([]Result, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, opts.concurrency))
	for i, name := range files {
		i, name := i, name
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = benchmarkFile(name, iterations)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if opts.jsonOutput {
		return jsonv2.MarshalWrite(os.Stdout, results, jsontext.WithIndent("  "))
	}
	printTable(results)
	return nil
}

func benchmarkFile(name string, iterations int) Result {
	f, err := os.Open(name)
	if err != nil {
		log.Errorf(context.Background(), "%s: %v", name, err)
		return Result{Name: name, Error: err.Error()}
	}
	closer := xio.CloseOnce(f)
	defer closer.Close()
	src, err := io.ReadAll(f)
	if err != nil {
		log.Errorf(context.Background(), "%s: %v", name, err)
		return Result{Name: name, Error: err.Error()}
	}
	if err := closer.Close(); err != nil {
		log.Errorf(context.Background(), "%s: %v", name, err)
		return Result{Name: name, Error: err.Error()}
	}

	start := time.Now()
	var parseErr error
	for i := 0; i < iterations; i++ {
		if _, err := luau.Parse(src); err != nil {
			parseErr = err
			break
		}
	}
	elapsed := time.Since(start)

	sizeKB := float64(len(src)) / 1024
	timeMS := elapsed.Seconds() * 1000 / float64(iterations)
	var speed float64
	if elapsed > 0 {
		speed = sizeKB * float64(iterations) / elapsed.Seconds()
	}
	if parseErr != nil {
		log.Errorf(context.Background(), "%s: %v", name, parseErr)
		return Result{Name: name, SizeKB: sizeKB, Error: parseErr.Error()}
	}
	log.Debugf(context.Background(), "%s: parsed %d time(s) in %s", name, iterations, elapsed)
	return Result{Name: name, SizeKB: sizeKB, TimeMS: timeMS, SpeedKBPS: speed, OK: true}
}

func printTable(results []Result) {
	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	fmt.Printf("%-40s %10s %10s %14s %8s\n", "name", "size KB", "time ms", "speed KB/s", "result")
	for _, r := range results {
		status := ok("ok")
		if !r.OK {
			status = fail("FAIL")
		}
		fmt.Printf("%-40s %10.2f %10.3f %14.1f %8s\n", r.Name, r.SizeKB, r.TimeMS, r.SpeedKBPS, status)
		if r.Error != "" {
			fmt.Printf("%-40s %s\n", "", r.Error)
		}
	}
}
