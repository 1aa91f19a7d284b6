// Package eval measures retrieval quality offline.
//
// Relevance judgments are normalized once into a Relevance map of
// non-negative grades. RecallAtK and NDCGAtK score a ranked list of ids
// against it, and Harness runs a set of cases through any Retriever.
package eval
