// Package splitview implements a resizable split-pane layout engine.
//
// A Container owns one row or one column of sibling views separated by
// draggable handles. Views are kept in a doubly-linked chain stored in an
// arena; two fixed sentinel nodes bound the chain so walks never need nil
// checks. Three algorithms move space around:
//
//   - negotiation: a requested delta on one view is absorbed by its
//     neighbours on one side, each shrinking down to its minimum
//   - drag: every pointer move restores the snapshot taken when the drag
//     began and renegotiates from scratch, so the result depends only on
//     the snapshot and the current pointer position
//   - redistribution: when the host changes size, views are visited from
//     least to most slack and receive a proportional share of what is left
//
// Listeners registered with Subscribe run after a mutation has been
// committed and the container lock released.
package splitview
