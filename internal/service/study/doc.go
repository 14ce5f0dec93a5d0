// Package study contains the scheduling application services: the command
// and query types the dispatcher routes, their handlers, and the
// study-block assembler. Handlers load entities through the store
// interfaces, invoke the retention state machine or the assembler, persist
// the results, and emit domain events after the enclosing transaction
// commits.
package study
