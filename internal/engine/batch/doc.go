// Package batch splits a slice into fixed-size batches and runs a callback
// over them, sequentially or with bounded concurrency, reporting progress
// after every batch.
//
// The engine uses it to evaluate scenario files: each batch is a run of
// scenarios and the callback writes results into caller-owned slots, so
// one failing scenario never stops its siblings.
package batch
