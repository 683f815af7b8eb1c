// Package ast defines the syntax tree produced by the parser: a closed set
// of node types behind the Node interface, traversal helpers (Walk,
// Inspect, FindFirst), structural comparison (Compare) and a text dump
// (Format).
package ast
