// Command tabinspect runs the upload pipeline over local files and prints
// the same JSON the server would return.
//
// Usage:
//
//	tabinspect [-format] [-summary] [-log-level=warn] file...
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/tabplot/internal/core"
	"github.com/JonMunkholm/tabplot/internal/logging"
)

func main() {
	formatOnly := flag.Bool("format", false, "only print the detected format")
	summary := flag.Bool("summary", false, "print column statistics instead of data")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, *logLevel, "text")
	slog.SetDefault(logger)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := false
	for _, path := range flag.Args() {
		out, err := inspect(path, *formatOnly, *summary)
		if err != nil {
			logger.Debug("inspect failed", "file", path, "error", err)
			reportError(os.Stderr, path, err)
			failed = true
			continue
		}
		if err := enc.Encode(out); err != nil {
			logger.Error("encode output", "file", path, "error", err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// reportError prints the user message and support code for a failed file,
// followed by the technical detail.
func reportError(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s: %s\n", path, core.FormatUserError(err))
	fmt.Fprintf(w, "  detail: %v\n", err)
}

func inspect(path string, formatOnly, summary bool) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)

	if formatOnly {
		return map[string]any{
			"filename": name,
			"format":   core.Detect(core.Decode(data)),
		}, nil
	}

	table, format, replaced, err := core.ReadTable(data)
	if err != nil {
		return nil, err
	}
	slog.Debug("parsed", "file", name, "format", format, "replaced_cells", replaced)

	if summary {
		cols, err := core.Summarize(table)
		if err != nil {
			return nil, err
		}
		return core.SummaryResult{Filename: name, Format: format, Rows: table.NumRows(), Columns: cols}, nil
	}

	columnar, err := core.Serialize(table)
	if err != nil {
		return nil, err
	}
	return core.Result{Filename: name, Columnar: columnar}, nil
}
