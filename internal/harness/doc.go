// Package harness drives differential checks of the parsing engine.
//
// A Suite discovers fixture files, asks the reference oracle whether each
// one is valid, parses it with the engine and then runs, in order:
//
//	oracle     fixture must be valid according to the oracle
//	parse      engine must report no errors
//	snapshot   serialized tree is compared against the stored snapshot
//	roundtrip  loading the serialized tree gives back the same tree
//	newlines   engine line offsets match the raw bytes
//	lex        compat token stream matches the oracle stream
//
// Snapshots heal themselves: a missing one is written, a stale one is
// rewritten and reported as drift. Drift never stops the remaining checks.
package harness
