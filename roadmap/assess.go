package roadmap

import "github.com/poiesic/roadmapper/core"

// MinimumNodes is the node count below which a roadmap is considered short.
const MinimumNodes = 3

// Assessment is a structural quality check of a roadmap.
type Assessment struct {
	Score    float64  `json:"score" yaml:"score"`
	Feedback []string `json:"feedback" yaml:"feedback"`
}

// Assess scores a roadmap's structure. It starts from 1.0, deducts 0.2
// when there are fewer than MinimumNodes nodes and 0.5 when no topic has
// any resource.
func Assess(r *core.Roadmap) Assessment {
	a := Assessment{Score: 1.0, Feedback: []string{}}
	if r == nil {
		r = &core.Roadmap{}
	}
	if len(r.Nodes) < MinimumNodes {
		a.Score -= 0.2
		a.Feedback = append(a.Feedback, "Roadmap is a bit short.")
	}
	if r.ResourceCount() == 0 {
		a.Score -= 0.5
		a.Feedback = append(a.Feedback, "No resources found for any topic.")
	}
	return a
}
