package graphdb

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// UserRepository implements repositories.UserRepository on Neo4j
type UserRepository struct{ store *Store }

// PostRepository implements repositories.PostRepository on Neo4j
type PostRepository struct{ store *Store }

// CommentRepository implements repositories.CommentRepository on Neo4j
type CommentRepository struct{ store *Store }

func NewUserRepository(store *Store) *UserRepository       { return &UserRepository{store: store} }
func NewPostRepository(store *Store) *PostRepository       { return &PostRepository{store: store} }
func NewCommentRepository(store *Store) *CommentRepository { return &CommentRepository{store: store} }

var (
	_ repositories.UserRepository    = (*UserRepository)(nil)
	_ repositories.PostRepository    = (*PostRepository)(nil)
	_ repositories.CommentRepository = (*CommentRepository)(nil)
)

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := r.store.now()
	user.CreatedAt, user.UpdatedAt = now, now
	params := map[string]any{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"createdAt": formatTime(now),
	}
	if user.FirebaseUID != nil {
		params["firebaseUid"] = *user.FirebaseUID
	} else {
		params["firebaseUid"] = nil
	}
	_, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, `CREATE (u:User {id: $id, name: $name, email: $email, firebaseUid: $firebaseUid,
  createdAt: $createdAt, updatedAt: $createdAt})`, params)
	})
	return err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *UserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.findOne(ctx, "firebaseUid", firebaseUID)
}

func (r *UserRepository) findOne(ctx context.Context, prop, value string) (*models.User, error) {
	cypher := fmt.Sprintf("MATCH (u:User {%s: $value}) RETURN u LIMIT 1", prop)
	out, err := r.store.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := collect(ctx, tx, cypher, map[string]any{"value": value})
		if err != nil || len(records) == 0 {
			return nil, err
		}
		n, err := nodeValue(records[0], "u")
		if err != nil {
			return nil, err
		}
		return userFromNode(n), nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &repositories.NotFoundError{Kind: "user", ID: value}
	}
	return out.(*models.User), nil
}

func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := r.store.now()
	post.CreatedAt, post.UpdatedAt = now, now
	params := map[string]any{
		"id":        post.ID,
		"authorId":  post.AuthorID,
		"title":     post.Title,
		"content":   post.Content,
		"createdAt": formatTime(now),
	}
	out, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, `MATCH (author:User {id: $authorId})
CREATE (author)-[:WROTE]->(post:Post {id: $id, title: $title, content: $content, deleted: false,
  createdAt: $createdAt, updatedAt: $createdAt})
RETURN post`, params)
	})
	if err != nil {
		return err
	}
	if len(out.([]*neo4j.Record)) == 0 {
		return &repositories.NotFoundError{Kind: "user", ID: post.AuthorID}
	}
	return nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	out, err := r.store.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := collect(ctx, tx, `MATCH (post:Post {id: $id})
OPTIONAL MATCH (author:User)-[:WROTE]->(post)
RETURN post, author`, map[string]any{"id": id})
		if err != nil || len(records) == 0 {
			return nil, err
		}
		postNode, err := nodeValue(records[0], "post")
		if err != nil {
			return nil, err
		}
		authorNode, err := nodeValue(records[0], "author")
		if err != nil {
			return nil, err
		}
		return postFromNode(postNode, userFromNode(authorNode)), nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &repositories.NotFoundError{Kind: "post", ID: id}
	}
	return out.(*models.Post), nil
}

func (r *PostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = r.store.now()
	params := map[string]any{
		"id":        post.ID,
		"title":     post.Title,
		"content":   post.Content,
		"updatedAt": formatTime(post.UpdatedAt),
	}
	out, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, `MATCH (post:Post {id: $id})
SET post.title = $title, post.content = $content, post.updatedAt = $updatedAt
RETURN post`, params)
	})
	if err != nil {
		return err
	}
	if len(out.([]*neo4j.Record)) == 0 {
		return &repositories.NotFoundError{Kind: "post", ID: post.ID}
	}
	return nil
}

func (r *PostRepository) SoftDeletePost(ctx context.Context, id string) error {
	params := map[string]any{"id": id, "updatedAt": formatTime(r.store.now())}
	out, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, `MATCH (post:Post {id: $id})
SET post.deleted = true, post.updatedAt = $updatedAt
WITH post
OPTIONAL MATCH (comment:Comment)-[:COMMENTS]->(post)
SET comment.deleted = true, comment.updatedAt = $updatedAt
RETURN DISTINCT post.id AS id`, params)
	})
	if err != nil {
		return err
	}
	if len(out.([]*neo4j.Record)) == 0 {
		return &repositories.NotFoundError{Kind: "post", ID: id}
	}
	return nil
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := r.store.now()
	comment.CreatedAt, comment.UpdatedAt = now, now
	params := map[string]any{
		"id":        comment.ID,
		"authorId":  comment.AuthorID,
		"postId":    comment.PostID,
		"content":   comment.Content,
		"createdAt": formatTime(now),
	}
	out, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, `MATCH (author:User {id: $authorId})
MATCH (post:Post {id: $postId})
CREATE (author)-[:WROTE]->(comment:Comment {id: $id, content: $content, deleted: false,
  createdAt: $createdAt, updatedAt: $createdAt})-[:COMMENTS]->(post)
RETURN comment`, params)
	})
	if err != nil {
		return err
	}
	if len(out.([]*neo4j.Record)) == 0 {
		return &repositories.NotFoundError{Kind: "post", ID: comment.PostID}
	}
	return nil
}

func (r *CommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	out, err := r.store.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := collect(ctx, tx, `MATCH (comment:Comment {id: $id})
OPTIONAL MATCH (author:User)-[:WROTE]->(comment)
OPTIONAL MATCH (comment)-[:COMMENTS]->(post:Post)
OPTIONAL MATCH (postAuthor:User)-[:WROTE]->(post)
RETURN comment, author, post, postAuthor`, map[string]any{"id": id})
		if err != nil || len(records) == 0 {
			return nil, err
		}
		nodes := make(map[string]*dbtype.Node, 4)
		for _, key := range []string{"comment", "author", "post", "postAuthor"} {
			n, err := nodeValue(records[0], key)
			if err != nil {
				return nil, err
			}
			nodes[key] = n
		}
		post := postFromNode(nodes["post"], userFromNode(nodes["postAuthor"]))
		return commentFromNode(nodes["comment"], userFromNode(nodes["author"]), post), nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &repositories.NotFoundError{Kind: "comment", ID: id}
	}
	return out.(*models.Comment), nil
}

func (r *CommentRepository) SoftDeleteComment(ctx context.Context, id string) error {
	params := map[string]any{"id": id, "updatedAt": formatTime(r.store.now())}
	out, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, `MATCH (comment:Comment {id: $id})
SET comment.deleted = true, comment.updatedAt = $updatedAt
RETURN comment.id AS id`, params)
	})
	if err != nil {
		return err
	}
	if len(out.([]*neo4j.Record)) == 0 {
		return &repositories.NotFoundError{Kind: "comment", ID: id}
	}
	return nil
}
