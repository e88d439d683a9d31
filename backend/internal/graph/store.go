package graph

import (
	"sort"
	"sync"

	"github.com/emirpasic/gods/sets/hashset"
	"go.uber.org/zap"

	"github.com/diug22/BeCreativIA/backend/internal/text"
	"github.com/diug22/BeCreativIA/backend/pkg/logger"
)

// Store is the in-memory concept graph. A single RWMutex guards every
// structure; each ingest runs under one write lock so concurrent callers
// can never observe a node without its edges.
type Store struct {
	mu     sync.RWMutex
	nodes  []Node
	edges  []Edge
	labels map[string]int // normalized label -> node ID

	// concepts accumulates every label ever tracked, including ones that
	// never became nodes. Reset clears the graph but not this set.
	concepts *hashset.Set

	logger *zap.Logger
}

// NewStore creates an empty concept graph
func NewStore() *Store {
	return &Store{
		nodes:    make([]Node, 0),
		edges:    make([]Edge, 0),
		labels:   make(map[string]int),
		concepts: hashset.New(),
		logger:   logger.Get(),
	}
}

// Ingest normalizes a concept, finds or creates its node, links it to its
// parent when that parent already has a node, and connects it to every
// sufficiently similar existing concept. The whole operation is atomic.
//
// An empty parent means no parent. A parent label with no node is skipped
// silently rather than created.
func (s *Store) Ingest(rawConcept, rawParent string) IngestResult {
	concept := text.Normalize(rawConcept)
	parent := ""
	if rawParent != "" {
		parent = text.Normalize(rawParent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.concepts.Add(concept)

	id, exists := s.labels[concept]
	if !exists {
		id = len(s.nodes)
		s.nodes = append(s.nodes, Node{ID: id, Label: concept})
		s.labels[concept] = id
		s.logger.Info("Concept node created",
			zap.Int("id", id),
			zap.String("label", concept))
	}

	if parent != "" {
		if parentID, ok := s.labels[parent]; ok && !s.hasDirectedEdge(parentID, id) {
			s.edges = append(s.edges, Edge{Source: parentID, Target: id})
			s.logger.Debug("Parent edge created",
				zap.Int("source", parentID),
				zap.Int("target", id))
		}
	}

	// Match against every current label, the freshly inserted one
	// included. The reported count is the matcher's full result; only
	// edge creation skips the concept itself and its parent.
	allLabels := make([]string, len(s.nodes))
	for i, node := range s.nodes {
		allLabels[i] = node.Label
	}

	similar := text.FindSimilar(concept, allLabels)
	for _, label := range similar {
		if label == concept || label == parent {
			continue
		}
		similarID := s.labels[label]
		if !s.hasUndirectedEdge(id, similarID) {
			s.edges = append(s.edges, Edge{Source: id, Target: similarID})
			s.logger.Debug("Similarity edge created",
				zap.Int("source", id),
				zap.Int("target", similarID))
		}
	}

	return IngestResult{NodeID: id, SimilarConnections: len(similar)}
}

// TrackConcept records a label in the global concept set without touching
// the graph itself
func (s *Store) TrackConcept(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concepts.Add(label)
}

// Snapshot returns a copy of all nodes and edges. Mutating the returned
// slices does not affect the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]Node, len(s.nodes))
	copy(nodes, s.nodes)
	edges := make([]Edge, len(s.edges))
	copy(edges, s.edges)

	return Snapshot{Nodes: nodes, Edges: edges}
}

// AllConcepts returns every tracked concept label in sorted order
func (s *Store) AllConcepts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := s.concepts.Values()
	labels := make([]string, 0, len(values))
	for _, v := range values {
		labels = append(labels, v.(string))
	}
	sort.Strings(labels)

	return labels
}

// Reset drops all nodes and edges. The global concept set survives so the
// concept history outlives individual graph sessions.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = make([]Node, 0)
	s.edges = make([]Edge, 0)
	s.labels = make(map[string]int)

	s.logger.Info("Graph reset",
		zap.Int("tracked_concepts", s.concepts.Size()))
}

// Helper functions

func (s *Store) hasDirectedEdge(source, target int) bool {
	for _, e := range s.edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

func (s *Store) hasUndirectedEdge(a, b int) bool {
	for _, e := range s.edges {
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return true
		}
	}
	return false
}
