// Package merge combines configuration fragments into one tree.
//
// Merge folds its arguments left to right:
//
//   - mapping + mapping: keys keep their first-seen position, shared keys
//     merge recursively
//   - sequence + sequence: concatenated in source order; an element of the
//     later sequence is dropped when an equal element is already present
//   - anything else: the later value wins
//
// Inputs are never modified and the result shares no nodes with them.
package merge
