package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iamvkosarev/post-generator-bot/internal/model"
	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidJournalSize = errors.New("journal size must be positive")
)

type postInternal struct {
	PostID      string    `json:"post_id"`
	UserID      int64     `json:"user_id"`
	Topic       string    `json:"topic"`
	Temperature float64   `json:"temperature"`
	TextLength  int       `json:"text_length"`
	Tokens      int       `json:"tokens"`
	HasImage    bool      `json:"has_image"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostStorage keeps a capped list of delivered posts per user, newest first.
type PostStorage struct {
	rdb  *redis.Client
	size int
}

func NewPostStorage(rdb *redis.Client, size int) (*PostStorage, error) {
	if size <= 0 {
		return nil, ErrInvalidJournalSize
	}
	return &PostStorage{
		rdb:  rdb,
		size: size,
	}, nil
}

func (p *PostStorage) Record(ctx context.Context, post model.Post) error {
	postJSON, err := json.Marshal(
		postInternal{
			PostID:      post.ID.String(),
			UserID:      post.UserID,
			Topic:       post.Topic,
			Temperature: post.Temperature,
			TextLength:  post.TextLength,
			Tokens:      post.Tokens,
			HasImage:    post.HasImage,
			CreatedAt:   post.CreatedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to marshal post %s: %w", post.ID, err)
	}

	key := getUserPostsKey(post.UserID)
	_, err = p.rdb.TxPipelined(
		ctx, func(pipe redis.Pipeliner) error {
			pipe.LPush(ctx, key, postJSON)
			pipe.LTrim(ctx, key, 0, int64(p.size-1))
			return nil
		},
	)
	if err != nil {
		return fmt.Errorf("failed to save post %s: %w", post.ID, err)
	}
	return nil
}

// ListUserPosts returns up to limit posts of the user, newest first. A
// non-positive limit returns all stored posts.
func (p *PostStorage) ListUserPosts(ctx context.Context, userID int64, limit int) ([]model.Post, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	key := getUserPostsKey(userID)
	rawPosts, err := p.rdb.LRange(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get posts %s: %w", key, err)
	}

	posts := make([]model.Post, 0, len(rawPosts))
	for _, raw := range rawPosts {
		var postInt postInternal
		if err = json.Unmarshal([]byte(raw), &postInt); err != nil {
			return nil, fmt.Errorf("failed to unmarshal post of user %d: %w", userID, err)
		}
		postID, err := uuid.Parse(postInt.PostID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse post id %s: %w", postInt.PostID, err)
		}
		posts = append(
			posts, model.Post{
				ID:          postID,
				UserID:      postInt.UserID,
				Topic:       postInt.Topic,
				Temperature: postInt.Temperature,
				TextLength:  postInt.TextLength,
				Tokens:      postInt.Tokens,
				HasImage:    postInt.HasImage,
				CreatedAt:   postInt.CreatedAt,
			},
		)
	}
	return posts, nil
}

func getUserPostsKey(userID int64) string {
	return fmt.Sprintf("posts_%d", userID)
}
