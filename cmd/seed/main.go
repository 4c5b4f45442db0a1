// Command seed fills the configured graph backend with a small demo network:
// three users, a handful of mentions across posts and comments, some of them
// already read.
package main

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/services"
	"github.com/anonto42/nano-midea/graph-backend/pkg/config"
	"github.com/anonto42/nano-midea/graph-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func mention(u *models.User) string {
	return fmt.Sprintf(`<a class="mention" data-mention-id="%s" href="/profile/%s">@%s</a>`, u.ID, u.ID, u.Name)
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Filename: cfg.LogFile, Stdout: true})
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	if err := seed(ctx, db.Repos, log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("seed completed")
}

func seed(ctx context.Context, repos config.Repositories, log *zap.Logger) error {
	validate := validator.New()
	users := make(map[string]*models.User)
	for _, req := range []models.CreateUserRequest{
		{ID: "author", Name: "Jenny Rostock", Email: "author@example.org"},
		{ID: "you", Name: "Al Capone", Email: "you@example.org"},
		{ID: "neighbor", Name: "Peter Lustig", Email: "neighbor@example.org"},
	} {
		if err := validate.Struct(req); err != nil {
			return err
		}
		u := &models.User{ID: req.ID, Name: req.Name, Email: req.Email}
		if err := repos.Users.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("create user %s: %w", req.ID, err)
		}
		users[u.ID] = u
	}
	author, you, neighbor := users["author"], users["you"], users["neighbor"]

	content := services.NewContentService(repos.Posts, repos.Comments, services.NewNotifier(repos.Notifications, log), log)
	notifications := services.NewNotificationService(repos.Notifications, log)

	if _, err := content.CreatePost(ctx, author, models.CreatePostRequest{
		Title: "Mentioning my neighbor", Content: "Hey " + mention(neighbor) + ", what's up?",
	}); err != nil {
		return err
	}
	seen, err := content.CreatePost(ctx, author, models.CreatePostRequest{
		Title: "Already seen post", Content: "Hey " + mention(you) + ", you have seen this already",
	})
	if err != nil {
		return err
	}
	mentioned, err := content.CreatePost(ctx, author, models.CreatePostRequest{
		Title: "Have been mentioned", Content: "Hey " + mention(you) + ", how do you do?",
	})
	if err != nil {
		return err
	}

	c1, err := content.CreateComment(ctx, author, mentioned.ID, models.CreateCommentRequest{
		Content: "You have seen this comment mentioning " + mention(you) + " already",
	})
	if err != nil {
		return err
	}
	if _, err := content.CreateComment(ctx, author, mentioned.ID, models.CreateCommentRequest{
		Content: "You have been mentioned in a comment " + mention(you),
	}); err != nil {
		return err
	}
	if _, err := content.CreateComment(ctx, author, mentioned.ID, models.CreateCommentRequest{
		Content: "Somebody else was mentioned in a comment " + mention(neighbor),
	}); err != nil {
		return err
	}

	for _, id := range []string{seen.ID, c1.ID} {
		if _, err := notifications.MarkAsRead(ctx, you, id); err != nil {
			return err
		}
	}
	return nil
}
