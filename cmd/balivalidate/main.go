/*
Balivalidate runs one or more literal event fixtures against a compiled
schema description and reports pass/fail.

It is deliberately not a document parser: it does not read XML or any other
markup. It reads a TOML fixture file that spells out a sequence of
start-element / characters / end-element events directly, and drives those
events through the validator package. Wiring a real parser to the same
Events-shaped interface is left to the caller.

Usage:

	balivalidate [flags] SCHEMA-FILE FIXTURE-FILE...

The flags are:

	-c, --cache DIR
		Cache the resolved form of SCHEMA-FILE under DIR, keyed by a UUID
		derived from SCHEMA-FILE's path, so repeated runs against the same
		schema skip the TOML parse.

	-w, --width N
		Wrap width for failure diagnostics. Defaults to 80.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/bali/internal/schema"
	"github.com/dekarrin/bali/internal/version"
)

const (
	exitSuccess = iota
	exitValidationFailure
	exitUsageError
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	cacheDir    = pflag.StringP("cache", "c", "", "Cache directory for resolved schema forms; empty disables caching")
	wrapWidth   = pflag.IntP("width", "w", 80, "Wrap width for failure diagnostics")
	returnCode  = exitSuccess
)

func main() {
	defer func() {
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: balivalidate [flags] SCHEMA-FILE FIXTURE-FILE...")
		returnCode = exitUsageError
		return
	}

	schemaFile := args[0]
	fixtureFiles := args[1:]

	sch, err := loadSchema(schemaFile, *cacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: load schema: %s\n", err.Error())
		returnCode = exitUsageError
		return
	}

	allPassed := true
	for _, fx := range fixtureFiles {
		passed, err := runFixture(sch, fx, *wrapWidth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", fx, err.Error())
			returnCode = exitUsageError
			return
		}
		if !passed {
			allPassed = false
		}
	}

	if !allPassed {
		returnCode = exitValidationFailure
	}
}

func loadSchema(path, cacheDir string) (*schema.Schema, error) {
	if cacheDir == "" {
		return schema.Load(path)
	}

	cache, err := schema.OpenCache(cacheDir)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	return cache.Load(cacheKeyFor(path), path)
}
