// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package search finds learning resources for a free-text query.
//
// A Finder runs three stages per call:
//   - the QueryExpander rewords the query into a few variants
//   - the Merger embeds every variant, queries the vector index once per
//     variant and rank-merges the hits
//   - the Fallback tops the list up from a web search provider, ending in a
//     single synthetic search link when nothing else is found
//
// Upstream failures are recovered inside each stage. FindResources only
// returns an error for a caller mistake.
package search
