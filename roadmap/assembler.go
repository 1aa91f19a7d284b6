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

// Package roadmap assembles learning roadmaps from planned topics and
// retrieved resources.
package roadmap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/roadmapper/ai"
	"github.com/poiesic/roadmapper/core"
)

const (
	// DefaultResourcesPerTopic is the number of resources fetched per topic.
	DefaultResourcesPerTopic = 3
	defaultPoolSize          = 4
)

// ResourceFinder returns ranked resources for a query.
// search.Finder satisfies it.
type ResourceFinder interface {
	FindResources(ctx context.Context, query string, limit int) ([]core.Resource, error)
}

// Assembler builds a Roadmap for a learning goal.
type Assembler struct {
	planner           ai.TopicPlanner
	finder            ResourceFinder
	resourcesPerTopic int
	pool              *ants.Pool
	logger            *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler) error

// WithResourcesPerTopic sets how many resources each topic gets.
func WithResourcesPerTopic(n int) Option {
	return func(a *Assembler) error {
		if n < 1 {
			return fmt.Errorf("resources per topic must be at least 1, got %d", n)
		}
		a.resourcesPerTopic = n
		return nil
	}
}

// WithPoolSize sets how many topics are searched concurrently.
func WithPoolSize(size int) Option {
	return func(a *Assembler) error {
		if size < 1 {
			return fmt.Errorf("pool size must be at least 1, got %d", size)
		}
		if a.pool != nil {
			a.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		a.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssembler creates an assembler. Call Release when done.
func NewAssembler(planner ai.TopicPlanner, finder ResourceFinder, opts ...Option) (*Assembler, error) {
	if planner == nil {
		return nil, ErrPlannerRequired
	}
	if finder == nil {
		return nil, ErrFinderRequired
	}

	a := &Assembler{
		planner:           planner,
		finder:            finder,
		resourcesPerTopic: DefaultResourcesPerTopic,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			a.Release()
			return nil, err
		}
	}
	if a.pool == nil {
		pool, err := ants.NewPool(defaultPoolSize)
		if err != nil {
			return nil, err
		}
		a.pool = pool
	}
	a.logger = a.logger.With("component", "roadmap-assembler")
	return a, nil
}

// Release frees the worker pool.
func (a *Assembler) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}

// Generate plans topics for goal, validates the topic graph and attaches
// resources to every topic. Node order follows the planner. Planner and
// validation failures are returned; resource lookups never fail the roadmap.
func (a *Assembler) Generate(ctx context.Context, goal string) (*core.Roadmap, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}

	topics, err := a.planner.PlanTopics(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to plan topics: %w", err)
	}
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}
	if err := core.ValidateTopicNodes(topics); err != nil {
		return nil, err
	}
	a.logger.Info("topics planned", "goal", goal, "count", len(topics))

	nodes := make([]core.RoadmapNode, len(topics))
	var wg sync.WaitGroup
	for i, topic := range topics {
		nodes[i].TopicNode = topic
		wg.Add(1)
		task := func() {
			defer wg.Done()
			nodes[i].Resources = a.findFor(ctx, topic)
		}
		if err := a.pool.Submit(task); err != nil {
			a.logger.Warn("pool rejected task, searching inline", "topic", topic.ID, "err", err)
			task()
		}
	}
	wg.Wait()

	return &core.Roadmap{Goal: goal, Nodes: nodes}, nil
}

func (a *Assembler) findFor(ctx context.Context, topic core.TopicNode) []core.Resource {
	resources, err := a.finder.FindResources(ctx, topic.Query(), a.resourcesPerTopic)
	if err != nil {
		a.logger.Warn("resource lookup failed", "topic", topic.ID, "err", err)
		return []core.Resource{}
	}
	return resources
}
