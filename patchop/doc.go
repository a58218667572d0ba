// Package patchop provides the patch instruction set.
//
// # Overview
//
// Instructions are the unit of work in a patch run. Each instruction
// targets one resource kind and is applied against that resource's
// in-memory model, in strict declaration order. Order is correctness:
// later instructions may read token memory slots or row indices that only
// exist because earlier instructions produced them.
//
// Instructions are divided by resource kind:
//
//   - AppendStrings: TLK string table appends
//   - AddRow, ModifyRow, CopyRow, AddColumn: 2DA table mutations
//   - ModifyField, AddField: GFF tree mutations
//   - SetSound: SSF soundset entries
//
// File installs and script compilation are orchestrated by the install
// package since they work on raw bytes rather than parsed models.
//
// # Outcomes
//
// Applying an instruction yields one of three results:
//
//   - Applied: the mutation happened
//   - Skipped with a warning: a recoverable authoring problem (unknown
//     column, existing destination file); the run continues
//   - error: a data-integrity problem (unresolved token, missing row or
//     field); the whole run aborts
//
// Two silent compatibility fallbacks exist by design: an exclusive-column
// match converts an add into a modify, and adding a field that already
// exists with the same label and type converts into a value modify.
//
// # Value Sources
//
// Cell and field values are Value implementations resolved at apply time:
// literals, token references (StrRef<N>, 2DAMEMORY<N>), column high-water
// marks, the index of the row or list struct being produced, and opt-in
// computed expressions.
package patchop
