package models

import (
	"fmt"
	"time"
)

// SourceKind is the type tag of the node a notification points from
type SourceKind string

const (
	SourceKindPost    SourceKind = "Post"
	SourceKindComment SourceKind = "Comment"
)

// Reason explains why a user was notified. New reasons can be added freely;
// the storage layer treats the value as an opaque key.
type Reason string

const (
	ReasonMentionedInPost    Reason = "mentioned_in_post"
	ReasonMentionedInComment Reason = "mentioned_in_comment"
	ReasonCommentedOnPost    Reason = "commented_on_post"
)

// Valid reports whether r is a known reason
func (r Reason) Valid() bool {
	switch r {
	case ReasonMentionedInPost, ReasonMentionedInComment, ReasonCommentedOnPost:
		return true
	}
	return false
}

// Ordering selects the createdAt direction of a notification listing
type Ordering string

const (
	OrderCreatedAtAsc  Ordering = "created_at_asc"
	OrderCreatedAtDesc Ordering = "created_at_desc"
)

// ParseOrdering maps the API enum onto an Ordering. An empty string yields
// the newest-first default.
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case "":
		return OrderCreatedAtDesc, nil
	case OrderCreatedAtAsc, OrderCreatedAtDesc:
		return Ordering(s), nil
	}
	return "", fmt.Errorf("unknown ordering %q", s)
}

// HasContent is implemented by nodes carrying a text body
type HasContent interface {
	ContentBody() string
}

// HasAuthor is implemented by nodes written by a user
type HasAuthor interface {
	AuthorUserID() string
	AuthorUser() *User
}

// Source is the tagged union {*Post, *Comment} a NOTIFIED edge starts from.
// Callers switch on Kind() or type-assert to the concrete type.
type Source interface {
	HasContent
	HasAuthor
	Kind() SourceKind
	NodeID() string
	IsDeleted() bool
}

var (
	_ Source = (*Post)(nil)
	_ Source = (*Comment)(nil)
)

// Notified is the NOTIFIED relationship (source node -> recipient user).
// Only Read changes after creation.
type Notified struct {
	ID         uint       `json:"-" gorm:"primaryKey"`
	SourceID   string     `json:"source_id" gorm:"size:64;not null;uniqueIndex:idx_notified_source_target_reason;index"`
	SourceType SourceKind `json:"source_type" gorm:"size:20;not null"`
	TargetID   string     `json:"target_id" gorm:"size:64;not null;uniqueIndex:idx_notified_source_target_reason;index:idx_notified_target_created"`
	Reason     Reason     `json:"reason" gorm:"size:40;not null;uniqueIndex:idx_notified_source_target_reason"`
	Read       bool       `json:"read" gorm:"column:read;not null;default:false"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime:false;index:idx_notified_target_created"`
}

// TableName pins the edge table name
func (Notified) TableName() string { return "notified" }

// Notification is the read model of one NOTIFIED edge with its source
// resolved to a concrete node.
type Notification struct {
	Edge   Notified
	From   Source
	ToUser *User
}

// Read reports the edge's read flag
func (n *Notification) Read() bool { return n.Edge.Read }

// CreatedAt reports when the edge was first written
func (n *Notification) CreatedAt() time.Time { return n.Edge.CreatedAt }
