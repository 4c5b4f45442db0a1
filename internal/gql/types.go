package gql

import (
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	graphql "github.com/graph-gophers/graphql-go"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type timestampResolver struct{ t time.Time }

func (r *timestampResolver) Formatted() string { return r.t.UTC().Format(timestampLayout) }

type userResolver struct{ u *models.User }

func newUser(u *models.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{u: u}
}

func (r *userResolver) ID() graphql.ID { return graphql.ID(r.u.ID) }
func (r *userResolver) Name() string { return r.u.Name }

type postResolver struct{ p *models.Post }

func newPost(p *models.Post) *postResolver {
	if p == nil {
		return nil
	}
	return &postResolver{p: p}
}

func (r *postResolver) ID() graphql.ID { return graphql.ID(r.p.ID) }
func (r *postResolver) Title() string { return r.p.Title }
func (r *postResolver) Content() string { return r.p.Content }
func (r *postResolver) Author() *userResolver { return newUser(r.p.Author) }
func (r *postResolver) Deleted() bool { return r.p.Deleted }
func (r *postResolver) CreatedAt() *timestampResolver { return &timestampResolver{r.p.CreatedAt} }

type commentResolver struct{ c *models.Comment }

func newComment(c *models.Comment) *commentResolver {
	if c == nil {
		return nil
	}
	return &commentResolver{c: c}
}

func (r *commentResolver) ID() graphql.ID { return graphql.ID(r.c.ID) }
func (r *commentResolver) Content() string { return r.c.Content }
func (r *commentResolver) Author() *userResolver { return newUser(r.c.Author) }
func (r *commentResolver) Post() *postResolver { return newPost(r.c.Post) }
func (r *commentResolver) Deleted() bool { return r.c.Deleted }
func (r *commentResolver) CreatedAt() *timestampResolver { return &timestampResolver{r.c.CreatedAt} }

// sourceResolver resolves the NotificationSource union
type sourceResolver struct{ src models.Source }

func (r *sourceResolver) ToPost() (*postResolver, bool) {
	p, ok := r.src.(*models.Post)
	return newPost(p), ok
}

func (r *sourceResolver) ToComment() (*commentResolver, bool) {
	c, ok := r.src.(*models.Comment)
	return newComment(c), ok
}

type notificationResolver struct{ n *models.Notification }

func (r *notificationResolver) From() *sourceResolver { return &sourceResolver{src: r.n.From} }
func (r *notificationResolver) To() *userResolver { return newUser(r.n.ToUser) }
func (r *notificationResolver) Read() bool { return r.n.Read() }
func (r *notificationResolver) Reason() string { return string(r.n.Edge.Reason) }
func (r *notificationResolver) CreatedAt() *timestampResolver { return &timestampResolver{r.n.CreatedAt()} }
