// Package serial is the binary snapshot format for parse trees.
//
// Layout: the 4-byte magic "RBSN", three version bytes, then a msgpack
// stream of the fixture name, the source length and the root node. Each
// node is an array [kind, start, end, attrs..., fields...]. Names that can
// be sliced out of the source are stored as locations only, so Load needs
// the exact source the tree was dumped from.
package serial
