package graphdb

import (
	"fmt"
	"strings"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
)

// activeSourcePredicate is the cascade rule of this backend: a notification
// is visible only while its source is a live Post, or a live Comment on a
// live Post. Hard-deleted nodes take their relationships with them.
const activeSourcePredicate = `(
    (source:Post AND coalesce(source.deleted, false) = false)
    OR (source:Comment AND coalesce(source.deleted, false) = false
        AND EXISTS {
          MATCH (source)-[:COMMENTS]->(parent:Post)
          WHERE coalesce(parent.deleted, false) = false
        })
  )`

// returnNotification expands a matched (source, notification, user) row
// into everything the read model needs.
const returnNotification = `
OPTIONAL MATCH (author:User)-[:WROTE]->(source)
OPTIONAL MATCH (source)-[:COMMENTS]->(parent:Post)
OPTIONAL MATCH (parentAuthor:User)-[:WROTE]->(parent)
RETURN source, notification, user, author, parent, parentAuthor`

func direction(o models.Ordering) string {
	if o == models.OrderCreatedAtAsc {
		return "ASC"
	}
	return "DESC"
}

func listQuery(targetID string, f repositories.NotificationFilter) (string, map[string]any) {
	params := map[string]any{"userId": targetID}

	var b strings.Builder
	b.WriteString("MATCH (source)-[notification:NOTIFIED]->(user:User {id: $userId})\n")
	b.WriteString("WHERE " + activeSourcePredicate)
	if f.Read != nil {
		b.WriteString("\n  AND notification.read = $read")
		params["read"] = *f.Read
	}
	b.WriteString(returnNotification)
	dir := direction(f.OrderBy)
	fmt.Fprintf(&b, "\nORDER BY notification.createdAt %s, elementId(notification) %s", dir, dir)
	if f.Offset > 0 {
		b.WriteString("\nSKIP $offset")
		params["offset"] = int64(f.Offset)
	}
	if f.First > 0 {
		b.WriteString("\nLIMIT $first")
		params["first"] = int64(f.First)
	}
	return b.String(), params
}

func sourceLabel(kind models.SourceKind) (string, error) {
	switch kind {
	case models.SourceKindPost, models.SourceKindComment:
		return string(kind), nil
	}
	return "", fmt.Errorf("unknown source kind %q", kind)
}

func upsertChecksQuery(label string) string {
	return fmt.Sprintf(`OPTIONAL MATCH (source:%s {id: $sourceId})
WHERE coalesce(source.deleted, false) = false
  AND (NOT source:Comment OR EXISTS {
    MATCH (source)-[:COMMENTS]->(parent:Post)
    WHERE coalesce(parent.deleted, false) = false
  })
OPTIONAL MATCH (user:User {id: $userId})
RETURN source IS NOT NULL AS hasSource, user IS NOT NULL AS hasUser`, label)
}

// upsertQuery relies on MERGE: the relationship is created only when no
// NOTIFIED edge with the same reason joins the two nodes. ON CREATE keeps
// read and createdAt of an existing edge intact. Whether an edge was written
// is read from the result summary counters.
func upsertQuery(label string) string {
	return fmt.Sprintf(`MATCH (source:%s {id: $sourceId})
MATCH (user:User {id: $userId})
MERGE (source)-[notification:NOTIFIED {reason: $reason}]->(user)
ON CREATE SET notification.createdAt = $createdAt, notification.read = false`, label)
}

// lockEdgesQuery takes write locks on every edge from the source to the
// user so the following conditional update sees the latest committed state.
const lockEdgesQuery = `MATCH (source:Post|Comment {id: $sourceId})-[notification:NOTIFIED]->(user:User {id: $userId})
SET notification.read = notification.read`

var markAsReadQuery = `MATCH (source:Post|Comment {id: $sourceId})-[notification:NOTIFIED {read: false}]->(user:User {id: $userId})
WHERE ` + activeSourcePredicate + `
SET notification.read = true
WITH source, notification, user` + returnNotification + `
ORDER BY notification.createdAt ASC, elementId(notification) ASC`

var markAllAsReadQuery = `MATCH (source)-[notification:NOTIFIED {read: false}]->(user:User {id: $userId})
WHERE ` + activeSourcePredicate + `
SET notification.read = true
RETURN count(notification) AS marked`

var countUnreadQuery = `MATCH (source)-[notification:NOTIFIED {read: false}]->(user:User {id: $userId})
WHERE ` + activeSourcePredicate + `
RETURN count(notification) AS unread`
