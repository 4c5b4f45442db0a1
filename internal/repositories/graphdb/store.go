// Package graphdb implements the repositories on a Neo4j property graph.
//
// Node labels are User, Post and Comment. Authorship is (User)-[:WROTE]->(Post|Comment),
// comments hang off posts via (Comment)-[:COMMENTS]->(Post) and notifications
// are (Post|Comment)-[:NOTIFIED {read, reason, createdAt}]->(User).
package graphdb

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// timeLayout is fixed-width so that createdAt strings sort chronologically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed.UTC()
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// Store wraps a Neo4j driver and the database the repositories use
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	now      func() time.Time
}

// NewStore creates a Store on an already connected driver
func NewStore(driver neo4j.DriverWithContext, database string) *Store {
	return &Store{
		driver:   driver,
		database: database,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to stamp new nodes and edges
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

var schemaStatements = []string{
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
	"CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
	"CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.id IS UNIQUE",
	"CREATE CONSTRAINT comment_id_unique IF NOT EXISTS FOR (c:Comment) REQUIRE c.id IS UNIQUE",
	"CREATE INDEX notified_created_at IF NOT EXISTS FOR ()-[n:NOTIFIED]-() ON (n.createdAt)",
}

// EnsureSchema creates constraints and indexes. It is idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := neo4j.ExecuteQuery(ctx, s.driver, stmt, nil, neo4j.EagerResultTransformer,
			neo4j.ExecuteQueryWithDatabase(s.database)); err != nil {
			return fmt.Errorf("ensure schema %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *Store) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: s.database})
}

func (s *Store) read(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)
	return session.ExecuteRead(ctx, work)
}

func (s *Store) write(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	return session.ExecuteWrite(ctx, work)
}

// collect runs one statement inside tx and returns all of its records
func collect(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return res.Collect(ctx)
}
