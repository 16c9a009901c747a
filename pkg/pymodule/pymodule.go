// Copyright 2024 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pymodule generates the C++ source file that registers a library's
// Python binding module with TfScriptModuleLoader.
//
// The generated file declares the library's direct dependencies so that the
// script module loader can import Python bindings in dependency order:
//
//	TF_REGISTRY_FUNCTION(TfScriptModuleLoader) {
//	    // List of direct dependencies for this library.
//	    const std::vector<TfToken> reqs = {
//	        TfToken("tf"), TfToken("sdf")
//	    };
//	    TfScriptModuleLoader::GetInstance().
//	        RegisterLibrary(TfToken("usdGeom"), TfToken("pxr.Geom"), reqs);
//	}
//
// Values are embedded verbatim. Nothing is quoted or escaped, so callers must
// not pass names containing a double quote.
package pymodule

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/u-root/uio/ulog"
)

// Template is the text/template source of the generated file.
//
// Downstream build steps compile the output, so its bytes (leading newline and
// trailing blank line included) must not change.
const Template = `
#include "pxr/pxr.h"
#include "pxr/base/tf/registryManager.h"
#include "pxr/base/tf/scriptModuleLoader.h"
#include "pxr/base/tf/token.h"

#include <vector>

PXR_NAMESPACE_OPEN_SCOPE

TF_REGISTRY_FUNCTION(TfScriptModuleLoader) {
    // List of direct dependencies for this library.
    const std::vector<TfToken> reqs = {
        {{range $i, $dep := .Deps}}{{if $i}}, {{end}}TfToken("{{$dep}}"){{end}}
    };
    TfScriptModuleLoader::GetInstance().
        RegisterLibrary(TfToken("{{.Library}}"), TfToken("{{.Module}}"), reqs);
}

PXR_NAMESPACE_CLOSE_SCOPE

`

var tpl = template.Must(template.New("pymodule").Parse(Template))

// Registration is one library's entry in the script module loader registry.
type Registration struct {
	// Library is the native library name, e.g. usdGeom.
	Library string

	// Module is the Python module name, e.g. pxr.Geom.
	Module string

	// Deps are the library's direct dependencies, in declaration order.
	Deps []string
}

// SplitDeps splits a comma-separated dependency list.
//
// Tokens are not trimmed, sorted or deduplicated. An empty list yields a
// single empty token, which renders as TfToken("").
func SplitDeps(depsCSV string) []string {
	return strings.Split(depsCSV, ",")
}

// New returns the Registration for library and module with deps given as a
// comma-separated list.
func New(library, module, depsCSV string) Registration {
	return Registration{
		Library: library,
		Module:  module,
		Deps:    SplitDeps(depsCSV),
	}
}

// Render writes the generated source for r to w.
func (r Registration) Render(w io.Writer) error {
	return tpl.Execute(w, r)
}

// Bytes returns the generated source for r.
func (r Registration) Bytes() ([]byte, error) {
	var b bytes.Buffer
	if err := r.Render(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Emit renders the registration source and writes it to outputPath,
// truncating any existing file.
//
// The parent directory must exist. A failed write may leave a partial file
// behind.
func Emit(l ulog.Logger, outputPath, library, module, depsCSV string) error {
	r := New(library, module, depsCSV)
	content, err := r.Bytes()
	if err != nil {
		return fmt.Errorf("rendering %s: %w", library, err)
	}
	if err := writeFile(outputPath, content); err != nil {
		return err
	}
	l.Printf("Wrote %s for %s (%d deps, %s)", outputPath, r.Module, len(r.Deps), humanize.IBytes(uint64(len(content))))
	return nil
}

func writeFile(path string, content []byte) (nerr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			nerr = multierror.Append(nerr, err)
		}
	}()

	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
