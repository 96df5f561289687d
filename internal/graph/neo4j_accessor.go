package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/smehra/proconnect/internal/domain"
)

// KNOWS edges are traversed undirected: relationships are mutual, and the
// loader stores each edge once in an arbitrary direction.
const (
	directNeighborsCypher = `
MATCH (u:User {id: $userId})
OPTIONAL MATCH (u)-[:KNOWS]-(n:User)
RETURN u.id AS id, collect(DISTINCT n.id) AS neighbors
`

	featureVectorCypher = `
MATCH (u:User {id: $userId})
RETURN u.features AS vector
`

	embeddingVectorCypher = `
MATCH (u:User {id: $userId})
RETURN u.embedding AS vector
`

	listUsersCypher = `
MATCH (u:User)
RETURN u.id AS id, u.name AS name, u.features AS features, u.embedding AS embedding
ORDER BY u.id
`

	listJobsCypher = `
MATCH (j:Job)
WHERE j.embedding IS NOT NULL
RETURN j.job_id AS jobId,
       j.title AS title,
       j.company AS company,
       j.location AS location,
       j.job_posting_url AS postingUrl,
       j.normalized_salary AS normalizedSalary,
       j.embedding AS embedding
ORDER BY j.job_id
`

	edgeExistsCypher = `
RETURN EXISTS {
    MATCH (:User {id: $fromId})-[:KNOWS]-(:User {id: $toId})
} AS present
`
)

// Neo4jAccessor reads the professional graph over Bolt. Neptune's openCypher
// endpoint is wire-compatible with the Bolt protocol, so the same accessor
// serves both local Neo4j and AWS Neptune.
type Neo4jAccessor struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jAccessor establishes a Bolt connection using the official driver
// and verifies connectivity before returning.
func NewNeo4jAccessor(ctx context.Context, opts Options) (*Neo4jAccessor, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &Neo4jAccessor{
		driver:   driver,
		database: opts.Database,
	}, nil
}

// VerifyConnectivity probes the backing store, used by health checks.
func (a *Neo4jAccessor) VerifyConnectivity(ctx context.Context) error {
	return a.driver.VerifyConnectivity(ctx)
}

// Close releases the driver's connection pool.
func (a *Neo4jAccessor) Close(ctx context.Context) error {
	return a.driver.Close(ctx)
}

func (a *Neo4jAccessor) DirectNeighbors(ctx context.Context, userID string) ([]string, error) {
	records, err := a.read(ctx, directNeighborsCypher, map[string]any{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("direct neighbors query: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	raw, _ := records[0].Get("neighbors")
	items, ok := raw.([]any)
	if !ok {
		return nil, nil
	}

	neighbors := make([]string, 0, len(items))
	for _, item := range items {
		if id := toString(item); id != "" {
			neighbors = append(neighbors, id)
		}
	}
	return neighbors, nil
}

func (a *Neo4jAccessor) FeatureVector(ctx context.Context, userID string) ([]float64, error) {
	return a.vectorProperty(ctx, featureVectorCypher, userID)
}

func (a *Neo4jAccessor) EmbeddingVector(ctx context.Context, userID string) ([]float64, error) {
	return a.vectorProperty(ctx, embeddingVectorCypher, userID)
}

func (a *Neo4jAccessor) ListUsers(ctx context.Context) ([]domain.UserVectors, error) {
	records, err := a.read(ctx, listUsersCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list users query: %w", err)
	}

	users := make([]domain.UserVectors, 0, len(records))
	for _, record := range records {
		id, _ := record.Get("id")
		name, _ := record.Get("name")
		features, _ := record.Get("features")
		embedding, _ := record.Get("embedding")
		users = append(users, domain.UserVectors{
			ID:        toString(id),
			Name:      toString(name),
			Features:  toFloat64Slice(features),
			Embedding: toFloat64Slice(embedding),
		})
	}
	return users, nil
}

func (a *Neo4jAccessor) ListJobs(ctx context.Context) ([]domain.Job, error) {
	records, err := a.read(ctx, listJobsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list jobs query: %w", err)
	}

	jobs := make([]domain.Job, 0, len(records))
	for _, record := range records {
		jobID, _ := record.Get("jobId")
		title, _ := record.Get("title")
		company, _ := record.Get("company")
		location, _ := record.Get("location")
		postingURL, _ := record.Get("postingUrl")
		salary, _ := record.Get("normalizedSalary")
		embedding, _ := record.Get("embedding")
		jobs = append(jobs, domain.Job{
			ID:               toString(jobID),
			Title:            toString(title),
			Company:          toString(company),
			Location:         toString(location),
			PostingURL:       toString(postingURL),
			NormalizedSalary: toFloat64(salary),
			Embedding:        toFloat64Slice(embedding),
		})
	}
	return jobs, nil
}

func (a *Neo4jAccessor) EdgeExists(ctx context.Context, userA, userB string) (bool, error) {
	records, err := a.read(ctx, edgeExistsCypher, map[string]any{
		"fromId": userA,
		"toId":   userB,
	})
	if err != nil {
		return false, fmt.Errorf("edge exists query: %w", err)
	}
	if len(records) == 0 {
		return false, nil
	}

	present, _ := records[0].Get("present")
	value, ok := present.(bool)
	return ok && value, nil
}

func (a *Neo4jAccessor) vectorProperty(ctx context.Context, cypher, userID string) ([]float64, error) {
	records, err := a.read(ctx, cypher, map[string]any{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("vector property query: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	raw, _ := records[0].Get("vector")
	return toFloat64Slice(raw), nil
}

type record map[string]any

func (r record) Get(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

func (a *Neo4jAccessor) read(ctx context.Context, cypher string, params map[string]any) ([]record, error) {
	session := a.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: a.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	var records []record
	for res.Next(ctx) {
		rec := res.Record()
		row := make(record, len(rec.Keys))
		for _, key := range rec.Keys {
			value, _ := rec.Get(key)
			row[key] = value
		}
		records = append(records, row)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return ""
	}
}

func toFloat64(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func toFloat64Slice(value any) []float64 {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		out = append(out, toFloat64(item))
	}
	return out
}
