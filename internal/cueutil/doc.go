// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates JSON documents against embedded CUE schemas.
//
// Parsing follows three steps:
//
//  1. Compile the embedded schema
//  2. Compile the document and unify it with a schema definition
//  3. Validate, then decode the unified value into a Go struct
//
// Decoding goes through the unified value's JSON form so that target types
// implementing json.Unmarshaler (such as version.Version) are honoured.
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schema []byte
//
//	m, err := cueutil.ParseAndDecode[Manifest](
//	    schema,
//	    data,
//	    "#Manifest",
//	    cueutil.WithFilename("Foo.version"),
//	)
package cueutil
