// Package diagfmt renders engine diagnostics and compatibility token
// streams for the command line.
package diagfmt
