package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNotifySkipsAuthorWithoutStoreAccess(t *testing.T) {
	n := NewNotifier(storeSpy{t: t}, nil)
	post := &models.Post{ID: "p1", AuthorID: "author"}

	assert.NoError(t, n.Notify(context.Background(), post, "author", models.ReasonMentionedInPost))
	assert.NoError(t, n.Notify(context.Background(), post, "", models.ReasonMentionedInPost))
}

func TestNotifyRejectsUnknownReason(t *testing.T) {
	n := NewNotifier(storeSpy{t: t}, nil)
	post := &models.Post{ID: "p1", AuthorID: "author"}

	assert.Error(t, n.Notify(context.Background(), post, "you", models.Reason("liked")))
}
