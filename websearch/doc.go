// Package websearch provides live web search providers used as a retrieval
// fallback when the local index cannot fill a request.
//
// Two providers are available:
//
//   - DuckDuckGo: scrapes the keyless HTML endpoint with goquery
//   - Brave: calls the Brave Search JSON API (requires an API key)
//
// Both send requests through DoWithRetry, which waits out HTTP 429 using
// Retry-After or a capped exponential backoff.
package websearch
