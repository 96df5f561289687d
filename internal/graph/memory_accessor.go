package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/smehra/proconnect/internal/domain"
)

// MemoryAccessor is an in-memory implementation of the Accessor interface
// used for unit testing engine logic without a running graph database.
// Connections are stored symmetrically: professional KNOWS relationships are
// mutual.
type MemoryAccessor struct {
	mu        sync.RWMutex
	users     map[string]domain.UserVectors
	adjacency map[string]map[string]struct{}
	jobs      map[string]domain.Job
	err       error
}

// NewMemoryAccessor instantiates an empty in-memory graph.
func NewMemoryAccessor() *MemoryAccessor {
	return &MemoryAccessor{
		users:     make(map[string]domain.UserVectors),
		adjacency: make(map[string]map[string]struct{}),
		jobs:      make(map[string]domain.Job),
	}
}

// WithError configures the accessor to fail every subsequent call with err.
func (m *MemoryAccessor) WithError(err error) *MemoryAccessor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// AddUser inserts or replaces a user node. Nil vectors model users the ETL
// has not (fully) processed yet.
func (m *MemoryAccessor) AddUser(id, name string, features, embedding []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = domain.UserVectors{
		ID:        id,
		Name:      name,
		Features:  features,
		Embedding: embedding,
	}
	if m.adjacency[id] == nil {
		m.adjacency[id] = make(map[string]struct{})
	}
}

// AddJob inserts or replaces a job node.
func (m *MemoryAccessor) AddJob(job domain.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
}

// Connect records a mutual KNOWS relationship between two existing users.
func (m *MemoryAccessor) Connect(userA, userB string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.adjacency[userA] == nil {
		m.adjacency[userA] = make(map[string]struct{})
	}
	if m.adjacency[userB] == nil {
		m.adjacency[userB] = make(map[string]struct{})
	}
	m.adjacency[userA][userB] = struct{}{}
	m.adjacency[userB][userA] = struct{}{}
}

func (m *MemoryAccessor) DirectNeighbors(_ context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.users[userID]; !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	neighbors := make([]string, 0, len(m.adjacency[userID]))
	for id := range m.adjacency[userID] {
		neighbors = append(neighbors, id)
	}
	sort.Strings(neighbors)
	return neighbors, nil
}

func (m *MemoryAccessor) FeatureVector(_ context.Context, userID string) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return user.Features, nil
}

func (m *MemoryAccessor) EmbeddingVector(_ context.Context, userID string) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return user.Embedding, nil
}

func (m *MemoryAccessor) ListUsers(_ context.Context) ([]domain.UserVectors, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	users := make([]domain.UserVectors, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemoryAccessor) ListJobs(_ context.Context) ([]domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	jobs := make([]domain.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if job.Embedding == nil {
			continue
		}
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func (m *MemoryAccessor) EdgeExists(_ context.Context, userA, userB string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.adjacency[userA][userB]
	return ok, nil
}
