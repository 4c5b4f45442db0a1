package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	PostID    string    `json:"post_id" gorm:"size:64;index"` // ID of the post the comment belongs to
	Post      *Post     `json:"post,omitempty" gorm:"foreignKey:PostID"`
	AuthorID  string    `json:"author_id" gorm:"size:64;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content   string    `json:"content"`
	Deleted   bool      `json:"deleted" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) Kind() SourceKind { return SourceKindComment }
func (c *Comment) NodeID() string { return c.ID }
func (c *Comment) AuthorUserID() string { return c.AuthorID }
func (c *Comment) AuthorUser() *User { return c.Author }
func (c *Comment) ContentBody() string { return c.Content }
func (c *Comment) IsDeleted() bool { return c.Deleted }

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}
