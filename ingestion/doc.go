// Package ingestion loads a resource corpus into a vector index.
//
// The Pipeline type manages the indexing workflow, including:
//   - Cleaning and validating corpus records
//   - Dropping records whose URL repeats
//   - Generating and normalizing embeddings in concurrent batches
//   - Writing the embedded resources to the index
//
// A failed batch is counted and reported but does not stop the others.
package ingestion
