package graphdb

import (
	"testing"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery(t *testing.T) {
	read := false
	cypher, params := listQuery("you", repositories.NotificationFilter{
		Read:    &read,
		OrderBy: models.OrderCreatedAtAsc,
		First:   10,
		Offset:  5,
	})

	assert.Contains(t, cypher, "(user:User {id: $userId})")
	assert.Contains(t, cypher, "AND notification.read = $read")
	assert.Contains(t, cypher, "ORDER BY notification.createdAt ASC, elementId(notification) ASC")
	assert.Contains(t, cypher, "SKIP $offset")
	assert.Contains(t, cypher, "LIMIT $first")
	assert.Equal(t, map[string]any{"userId": "you", "read": false, "offset": int64(5), "first": int64(10)}, params)
}

func TestListQueryDefaults(t *testing.T) {
	cypher, params := listQuery("you", repositories.NotificationFilter{})

	assert.NotContains(t, cypher, "$read")
	assert.NotContains(t, cypher, "SKIP")
	assert.NotContains(t, cypher, "LIMIT")
	assert.Contains(t, cypher, "createdAt DESC")
	assert.Equal(t, map[string]any{"userId": "you"}, params)
}

func TestSourceLabel(t *testing.T) {
	label, err := sourceLabel(models.SourceKindComment)
	require.NoError(t, err)
	assert.Equal(t, "Comment", label)
	assert.Contains(t, upsertQuery(label), "MATCH (source:Comment {id: $sourceId})")

	_, err = sourceLabel("Story")
	assert.Error(t, err)
}

func TestTimeRoundTripSortsLexically(t *testing.T) {
	early := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	late := early.Add(500 * time.Millisecond)

	assert.Less(t, formatTime(early), formatTime(late))
	assert.True(t, parseTime(formatTime(late)).Equal(late))
	assert.True(t, parseTime("2024-03-01T12:00:00Z").Equal(early))
	assert.True(t, parseTime(nil).IsZero())
}

func TestUpsertQueries(t *testing.T) {
	checks := upsertChecksQuery("Comment")
	assert.Contains(t, checks, "OPTIONAL MATCH (source:Comment {id: $sourceId})")
	assert.Contains(t, checks, "MATCH (source)-[:COMMENTS]->(parent:Post)")

	upsert := upsertQuery("Post")
	assert.Contains(t, upsert, "MERGE (source)-[notification:NOTIFIED {reason: $reason}]->(user)")
	assert.NotContains(t, upsert, "RETURN")
}
