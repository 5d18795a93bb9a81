// Package builder constructs CDG forests from flat node records.
//
// Instrumentation tools describe a control dependence graph as a stream of
// (id, parent, branch) triples, optionally followed by predicate text per id.
// A [Builder] owns the id → node mapping for one graph and turns that stream
// into linked [cdg.Node] values:
//
//	b := builder.New()
//	_ = b.Add(builder.Record{ID: 1, Expr: "x > 0"})
//	_ = b.Add(builder.Record{ID: 2, Parent: builder.Ref(1), Branch: builder.On(cdg.True)})
//	root := b.Root()
//
// Records without a parent form the top-level sibling list. Children keep the
// order in which their records arrive. [Build] accepts records in any order;
// [Builder.Add] requires the parent to exist already.
//
// Every node starts uncovered (score 1) unless its record sets Covered.
// Decision scores are placeholders until [cdg.UpdateCDG] runs.
package builder
