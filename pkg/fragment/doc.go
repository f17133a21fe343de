// Package fragment defines the configuration tree that every template
// produces and every encoder consumes.
//
// A tree is made of three node kinds:
//
//	Mapping   ordered string keys to nodes; first insertion fixes key position
//	Sequence  ordered list of nodes
//	Scalar    string, int64, float64, bool or null
//
// Trees built by this package are plain values with no shared state. The
// merge package combines them; the codec package serializes them in key order.
package fragment
