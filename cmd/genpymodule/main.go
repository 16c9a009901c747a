// Copyright 2024 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// genpymodule generates the C++ file registering a library's Python module
// and its direct dependencies with TfScriptModuleLoader.
//
// The build system runs it once per library with Python bindings:
//
//	genpymodule out/moduleDeps.cpp usdGeom pxr.Geom tf,sdf,usd
//
// The output file is overwritten on every run. deps_csv may be empty.
//
// Usage: genpymodule [-d] <output_path> <library_name> <module_name> <deps_csv>
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/goterm/term"
	"github.com/u-root/uio/ulog"

	"github.com/usdmeson/pymodgen/pkg/pymodule"
)

const usageLine = "genpymodule [-d] <output_path> <library_name> <module_name> <deps_csv>"

var debug = flag.Bool("d", false, "Log the generated file")

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s\n", usageLine)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	log.SetPrefix("[genpymodule] ")

	if flag.NArg() != 4 {
		log.Fatalf("%s: got %d arguments, want 4. Usage: %s", term.Bold("Usage error"), flag.NArg(), usageLine)
	}

	var l ulog.Logger = ulog.Null
	if *debug {
		l = ulog.Log
	}

	args := flag.Args()
	if err := pymodule.Emit(l, args[0], args[1], args[2], args[3]); err != nil {
		log.Fatalf("Could not write %s: %v", args[0], err)
	}
}
