// Package ingest loads movie catalog exports into a catalog store.
//
// The Loader type parses csv rows on the calling goroutine and writes
// them to storage in batches through a worker pool, including:
//   - Header driven column mapping, tolerant of extra columns
//   - Row validation that drops entries missing a title or vote average
//   - Retried batch writes with exponential backoff
//
// Batch writes run concurrently to maximize throughput. A write failure
// is logged and reflected in the load stats; a single bad row or batch
// never aborts the load.
package ingest
