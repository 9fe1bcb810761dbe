package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/reoring/godos/openapi"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "godos CLI\n\nUsage:\n  godos lint <open_api.json|yaml>\n  godos convert [-o out.yaml] <open_api.json>\n\nNotes:\n  - lint loads and validates the document with kin-openapi.\n  - convert rewrites a JSON document as YAML, keeping key order.")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "lint":
		return lintCmd(args[1:], stdout, stderr)
	case "convert":
		return convertCmd(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func lintCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "lint: %v\n", err)
		return 1
	}
	spec, err := openapi.Load(context.Background(), data)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", path, err)
		return 1
	}
	ops := 0
	for _, item := range spec.Paths.Map() {
		ops += len(item.Operations())
	}
	fmt.Fprintf(stdout, "%s: ok (%d paths, %d operations)\n", path, spec.Paths.Len(), ops)
	return 0
}

func convertCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var out string
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "convert: %v\n", err)
		return 1
	}
	y, err := openapi.JSONToYAML(data)
	if err != nil {
		fmt.Fprintf(stderr, "convert: %v\n", err)
		return 1
	}
	if out == "" {
		_, _ = stdout.Write(y)
		return 0
	}
	if err := os.WriteFile(out, y, 0o644); err != nil {
		fmt.Fprintf(stderr, "convert: writing output: %v\n", err)
		return 1
	}
	return 0
}
