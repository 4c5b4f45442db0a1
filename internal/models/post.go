package models

import "time"

// Post is a piece of content written by a user. A post can be the source
// of NOTIFIED relationships.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	AuthorID  string    `json:"author_id" gorm:"size:64;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Deleted   bool      `json:"deleted" gorm:"default:false;index"` // soft-delete flag
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) Kind() SourceKind { return SourceKindPost }
func (p *Post) NodeID() string { return p.ID }
func (p *Post) AuthorUserID() string { return p.AuthorID }
func (p *Post) AuthorUser() *User { return p.Author }
func (p *Post) ContentBody() string { return p.Content }
func (p *Post) IsDeleted() bool { return p.Deleted }

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required,min=1,max=20000"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=20000"`
}
