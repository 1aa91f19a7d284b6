package eval

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Case is one evaluation query with its normalized relevance judgment.
type Case struct {
	Query    string
	Relevant Relevance
}

// caseFile is the on-disk shape of a case. Exactly one of the two judgment
// fields may be set.
type caseFile struct {
	Query       string             `yaml:"query"`
	RelevantIDs []string           `yaml:"relevant_resource_ids"`
	Graded      map[string]float64 `yaml:"relevant_resources"`
}

// LoadCases reads evaluation cases from a YAML or JSON file holding a list
// of cases.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases: %w", err)
	}
	return ParseCases(data)
}

// ParseCases decodes a YAML or JSON list of cases.
func ParseCases(data []byte) ([]Case, error) {
	var raw []caseFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode cases: %w", err)
	}

	cases := make([]Case, 0, len(raw))
	for i, rc := range raw {
		c, err := rc.normalize()
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (rc caseFile) normalize() (Case, error) {
	query := strings.TrimSpace(rc.Query)
	if query == "" {
		return Case{}, ErrEmptyQuery
	}
	if len(rc.RelevantIDs) > 0 && len(rc.Graded) > 0 {
		return Case{}, fmt.Errorf("%w: %q", ErrAmbiguousCase, query)
	}
	if len(rc.Graded) > 0 {
		rel, err := GradedRelevance(rc.Graded)
		if err != nil {
			return Case{}, err
		}
		return Case{Query: query, Relevant: rel}, nil
	}
	return Case{Query: query, Relevant: BinaryRelevance(rc.RelevantIDs...)}, nil
}
