// Package io reads and writes CDG graphs, coverage files and extracted paths.
//
// # Graph files
//
// A graph is a flat list of node records. JSON files carry a "nodes" array:
//
//	{
//	  "nodes": [
//	    {"id": 1, "expr": "x > 0"},
//	    {"id": 2, "parent": 1, "branch": "true"},
//	    {"id": 3, "parent": 1, "branch": "false", "covered": true}
//	  ]
//	}
//
// TOML files use one [[node]] table per record with the same keys:
//
//	[[node]]
//	id = 1
//	expr = "x > 0"
//
//	[[node]]
//	id = 2
//	parent = 1
//	branch = true
//
// Records without "parent" are top-level. "branch" accepts true/false, t/f,
// 1/0 and the JSON booleans. Records may appear in any order. Unknown keys are
// rejected so that typos do not silently drop structure.
//
// # Coverage files
//
// A coverage file lists decision outcomes that real executions observed:
//
//	{"covered": [{"id": 1, "outcome": "true"}]}
//
// or in TOML, one [[covered]] table per entry.
//
// # Path export
//
// [WritePaths] encodes a ranked path list as nested JSON, one entry per rank,
// each holding the path tree's top-level nodes with their chosen outcome and
// children.
//
// All readers return coded errors from pkg/errors: INVALID_FORMAT for
// malformed input, FILE_NOT_FOUND for missing files, and the builder's codes
// for impossible trees.
package io
