// Package core implements the task store engine: the priority ordered task
// collection, the status state machine, dependency blocking, timed sleep and
// id prefix resolution.
//
// A TaskStore is loaded wholesale from its file, mutated in memory and written
// back by Close. It assumes a single writer. Two processes working on the same
// file at once both write their own view on close and the last writer wins.
package core
