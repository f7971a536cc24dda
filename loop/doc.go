// Package loop provides a single-threaded cooperative scheduler for Go.
// Routines started on a Loop take turns holding its run token and give it
// up only at explicit suspension points (Yield, Sleep, Await), so at most
// one routine of a loop executes at any moment. Run drives one routine to
// completion and blocks the caller until it returns.
package loop
