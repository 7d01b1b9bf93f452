// Copyright 2026 EzKito
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	convert "github.com/ezkito/convert-go"
)

var version = "dev"

func main() {
	var (
		from        string
		to          string
		mode        string
		output      string
		workers     int
		timeout     time.Duration
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&from, "from", "", "Source format (e.g. png)")
	flag.StringVar(&to, "to", "", "Target format (e.g. pdf)")
	flag.StringVar(&mode, "mode", "merge", "Image-to-PDF mode: merge or separate")
	flag.StringVar(&output, "o", "", "Output path (default: converted filename in current directory)")
	flag.StringVar(&output, "output", "", "Output path (default: converted filename in current directory)")
	flag.IntVar(&workers, "workers", 1, "Parallel conversions per batch")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Per-tool invocation timeout")
	flag.BoolVar(&verbose, "verbose", false, "Log conversion progress to stderr")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: convert -from FORMAT -to FORMAT [flags] file...\n\n")
		fmt.Fprintf(os.Stderr, "Convert files between formats.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("convert %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	req := &convert.ConversionRequest{
		SourceFormat: from,
		TargetFormat: to,
		PDFMode:      convert.PDFMode(mode),
	}
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		req.Files = append(req.Files, convert.InputFile{
			Name: filepath.Base(path),
			Data: data,
		})
	}

	opts := []convert.Option{
		convert.WithWorkers(workers),
		convert.WithToolTimeout(timeout),
	}
	if verbose {
		opts = append(opts, convert.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}
	engine := convert.New(opts...)

	resp, err := engine.Convert(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if convert.IsToolMissing(err) {
			os.Exit(3)
		}
		os.Exit(1)
	}

	outPath := output
	if outPath == "" {
		outPath = resp.Filename
	} else if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := os.WriteFile(outPath, resp.Data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s (%s, %d bytes)\n", outPath, resp.ContentType, len(resp.Data))
}
