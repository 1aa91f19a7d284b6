package ai

import "fmt"

// PlannerSystemPrompt frames the topic planner.
const PlannerSystemPrompt = "You are an expert curriculum designer."

const plannerPromptTemplate = `Create a learning roadmap for the goal: %q.

Return a JSON object with a list of "nodes". Use at most %d nodes.
Each node must have:
- "id": unique string id (e.g., "basics", "advanced_topic")
- "title": short display title
- "description": brief explanation of what to learn
- "prerequisites": list of node ids that must be completed before this one

Ensure the roadmap is logical and covers the necessary steps.
Prerequisites may only reference ids of other nodes in the list and must not form a cycle.
Return ONLY valid JSON. Start your response directly with the opening brace { and end with the closing brace }.

Example:
{
  "nodes": [
    {"id": "starter", "title": "The Starter", "description": "Creating Starter, Feeding Schedule, Discard", "prerequisites": []},
    {"id": "dough_management", "title": "Dough Management", "description": "Autolyse, Folding, Bulk Fermentation", "prerequisites": ["starter"]},
    {"id": "baking", "title": "Baking", "description": "Shaping, Scoring, Oven Spring", "prerequisites": ["dough_management"]}
  ]
}`

// PlannerPrompt builds the user prompt asking for a roadmap of at most maxTopics nodes.
func PlannerPrompt(goal string, maxTopics int) string {
	return fmt.Sprintf(plannerPromptTemplate, goal, maxTopics)
}
