// Package reembed rebuilds the vectors of every stored resource after the
// embedding model changes.
//
// Resources are paged from the repository in id order, embedded in
// batches with retry and exponential backoff, normalized for cosine
// search and written back in place. Progress is reported to a writer.
package reembed
