package graphdb

import (
	"fmt"
	"slices"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

func propString(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func propBool(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}

// nodeValue returns the node stored under key, or nil for a null column
// produced by an OPTIONAL MATCH.
func nodeValue(rec *neo4j.Record, key string) (*dbtype.Node, error) {
	v, ok := rec.Get(key)
	if !ok {
		return nil, fmt.Errorf("record has no column %q", key)
	}
	if v == nil {
		return nil, nil
	}
	n, ok := v.(dbtype.Node)
	if !ok {
		return nil, fmt.Errorf("column %q is %T, want node", key, v)
	}
	return &n, nil
}

func userFromNode(n *dbtype.Node) *models.User {
	if n == nil {
		return nil
	}
	u := &models.User{
		ID:        propString(n.Props, "id"),
		Name:      propString(n.Props, "name"),
		Email:     propString(n.Props, "email"),
		CreatedAt: parseTime(n.Props["createdAt"]),
		UpdatedAt: parseTime(n.Props["updatedAt"]),
	}
	if uid := propString(n.Props, "firebaseUid"); uid != "" {
		u.FirebaseUID = &uid
	}
	return u
}

func postFromNode(n *dbtype.Node, author *models.User) *models.Post {
	if n == nil {
		return nil
	}
	p := &models.Post{
		ID:        propString(n.Props, "id"),
		Title:     propString(n.Props, "title"),
		Content:   propString(n.Props, "content"),
		Deleted:   propBool(n.Props, "deleted"),
		CreatedAt: parseTime(n.Props["createdAt"]),
		UpdatedAt: parseTime(n.Props["updatedAt"]),
		Author:    author,
	}
	if author != nil {
		p.AuthorID = author.ID
	}
	return p
}

func commentFromNode(n *dbtype.Node, author *models.User, post *models.Post) *models.Comment {
	if n == nil {
		return nil
	}
	c := &models.Comment{
		ID:        propString(n.Props, "id"),
		Content:   propString(n.Props, "content"),
		Deleted:   propBool(n.Props, "deleted"),
		CreatedAt: parseTime(n.Props["createdAt"]),
		UpdatedAt: parseTime(n.Props["updatedAt"]),
		Author:    author,
		Post:      post,
	}
	if author != nil {
		c.AuthorID = author.ID
	}
	if post != nil {
		c.PostID = post.ID
	}
	return c
}

// notificationFromRecord decodes a row produced by returnNotification
func notificationFromRecord(rec *neo4j.Record) (*models.Notification, error) {
	source, err := nodeValue(rec, "source")
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("notification row without source")
	}
	userNode, err := nodeValue(rec, "user")
	if err != nil {
		return nil, err
	}
	authorNode, err := nodeValue(rec, "author")
	if err != nil {
		return nil, err
	}

	relValue, ok := rec.Get("notification")
	if !ok {
		return nil, fmt.Errorf("record has no column %q", "notification")
	}
	rel, ok := relValue.(dbtype.Relationship)
	if !ok {
		return nil, fmt.Errorf("column notification is %T, want relationship", relValue)
	}

	to := userFromNode(userNode)
	n := &models.Notification{
		Edge: models.Notified{
			SourceID:  propString(source.Props, "id"),
			Reason:    models.Reason(propString(rel.Props, "reason")),
			Read:      propBool(rel.Props, "read"),
			CreatedAt: parseTime(rel.Props["createdAt"]),
		},
		ToUser: to,
	}
	if to != nil {
		n.Edge.TargetID = to.ID
	}

	author := userFromNode(authorNode)
	switch {
	case slices.Contains(source.Labels, string(models.SourceKindPost)):
		n.Edge.SourceType = models.SourceKindPost
		n.From = postFromNode(source, author)
	case slices.Contains(source.Labels, string(models.SourceKindComment)):
		parentNode, err := nodeValue(rec, "parent")
		if err != nil {
			return nil, err
		}
		parentAuthorNode, err := nodeValue(rec, "parentAuthor")
		if err != nil {
			return nil, err
		}
		n.Edge.SourceType = models.SourceKindComment
		n.From = commentFromNode(source, author, postFromNode(parentNode, userFromNode(parentAuthorNode)))
	default:
		return nil, fmt.Errorf("notification source has unexpected labels %v", source.Labels)
	}
	return n, nil
}
