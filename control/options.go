// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import (
	"fmt"
)

// entry records one declared option's metadata for -help output,
// mirroring the documentation string gofem's CLI hands to
// io.ArgsTable alongside each io.ArgTo* call.
type entry struct {
	group, name, doc string
	value            string
}

// Options is a small configuration oracle modeled on gosl/io's
// ArgToFilename/ArgToBool/ArgsTable argument style: a driver declares
// each option it reads with Declare, and the registry renders them
// back as a table for -help, the way main.go renders io.ArgsTable
// before running.
type Options struct {
	entries []entry
}

// Declare records name/doc/value for later Table rendering. It
// mirrors the original's add_option<T>, which is documentation-only:
// the actual value still comes from wherever the caller read it
// (flag.Float64, io.ArgToBool, ...).
func (o *Options) Declare(group, name, doc string, value interface{}) {
	o.entries = append(o.entries, entry{group, name, doc, fmt.Sprintf("%v", value)})
}

// Table renders the declared options grouped in declaration order,
// the way io.ArgsTable lays out "description", "name", value triples.
func (o *Options) Table() string {
	s := ""
	group := ""
	for _, e := range o.entries {
		if e.group != group {
			s += fmt.Sprintf("\n%s\n", e.group)
			group = e.group
		}
		s += fmt.Sprintf("  %-28s %-12s = %s\n", e.doc, e.name, e.value)
	}
	return s
}
