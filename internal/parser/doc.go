// Package parser implements a recursive-descent parser for the supported
// Ruby subset. It consumes tokens from internal/lexer, reports problems
// through a diag.Reporter and always returns a tree.
//
// Locals are tracked per def/class/module scope: an identifier that was
// assigned (or is a parameter) reads as a LocalVariableReadNode, anything
// else becomes a receiver-less CallNode, as in Ruby.
package parser
