// Package macro provides macro tables for BibTeX field values.
//
// A [Resolver] maps case-insensitive macro names to values and expands the
// macro references of [ir.Value]s. Definitions may refer to other macros,
// and may do so circularly: expansion and dependency checks track the
// names they have visited and never loop.
//
// Resolvers nest. A document resolver is usually created under a shared
// default resolver such as [Standard]; lookups fall back to the parent and
// local definitions shadow it, while edits only ever touch the resolver
// they are made on.
//
// Every edit increments [Resolver.Modification] and, when the resolver's
// [Owner] exposes an [UndoLog], is recorded there as a [Change] carrying the
// old and new values, which is enough to invert it. [History] is an
// in-memory UndoLog.
//
// A Resolver does no locking. Expansion only reads the table, so readers
// may run concurrently with each other but not with an edit.
package macro
