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

package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/poiesic/roadmapper/core"
)

// Record is one row of a unified corpus file.
type Record struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Description  string  `json:"description"`
	ContentType  string  `json:"content_type"`
	Source       string  `json:"source"`
	QualityScore float32 `json:"quality_score"`
}

// LoadCorpus reads a JSON array of records.
func LoadCorpus(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode corpus %s: %w", path, err)
	}
	return records, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanText strips HTML markup and collapses whitespace.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	if strings.ContainsAny(text, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			text = doc.Text()
		}
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// toResource cleans a record and maps it to an IndexedResource. A missing
// source id is filled with a random UUID.
func (r Record) toResource() *core.IndexedResource {
	sourceID := strings.TrimSpace(r.ID)
	if sourceID == "" {
		sourceID = uuid.NewString()
	}
	res := &core.IndexedResource{
		SourceID:     sourceID,
		Title:        CleanText(r.Title),
		URL:          strings.TrimSpace(r.URL),
		Description:  CleanText(r.Description),
		ContentType:  strings.TrimSpace(r.ContentType),
		Source:       strings.TrimSpace(r.Source),
		QualityScore: r.QualityScore,
	}
	res.Id = core.IDFromContent(res.ContentKey())
	return res
}
