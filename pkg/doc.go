// Package pkg holds the cdgpath libraries.
//
// # Overview
//
// A control dependence graph (CDG) is a forest of decisions (branch
// predicates) and leaves (basic blocks). Each decision has a true and a false
// child list. cdgpath scores every decision by how many still-uncovered
// leaves its better outcome reaches, then pulls out the decision paths that
// reach the most uncovered code. The packages are:
//
//  1. [cdg] - nodes, scoring, path extraction and coverage
//  2. [builder] - constructing a forest from flat id/parent records
//  3. [io] - JSON and TOML import/export of graphs, coverage and paths
//  4. [render] - text outlines, Graphviz DOT and SVG
//  5. [pipeline] - load, cover, rank, render with caching and logging
//  6. [cache] - file, Redis and no-op result caches
//
// # Data Flow
//
//	graph.json ── io ──▶ builder ──▶ cdg forest ── UpdateCDG ──▶ scored forest
//	                                       ▲                          │
//	coverage.json ── io ── CoverNodes ─────┘                       TopPaths
//	                                                                  ▼
//	                                              render / io ◀── ranked paths
//
// # Quick Start
//
//	b, _ := io.ImportGraph("graph.json")
//	root := b.Root()
//	cdg.UpdateCDG(root)
//
//	paths := cdg.TopPaths(root, 3)
//	defer cdg.DeletePaths(paths)
//	for i, tree := range paths.Slice() {
//	    fmt.Println(i+1, cdg.Decisions(tree))
//	}
//
// [cdg]: github.com/matzehuels/cdgpath/pkg/cdg
// [builder]: github.com/matzehuels/cdgpath/pkg/builder
// [io]: github.com/matzehuels/cdgpath/pkg/io
// [render]: github.com/matzehuels/cdgpath/pkg/render
// [pipeline]: github.com/matzehuels/cdgpath/pkg/pipeline
// [cache]: github.com/matzehuels/cdgpath/pkg/cache
package pkg
