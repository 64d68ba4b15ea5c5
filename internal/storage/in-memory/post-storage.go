package in_memory

import (
	"context"
	"errors"
	"sync"

	"github.com/iamvkosarev/post-generator-bot/internal/model"
)

var (
	ErrInvalidJournalSize = errors.New("journal size must be positive")
)

type PostStorage struct {
	mu    sync.RWMutex
	size  int
	posts map[int64][]model.Post
}

func NewPostStorage(size int) (*PostStorage, error) {
	if size <= 0 {
		return nil, ErrInvalidJournalSize
	}
	return &PostStorage{
		size:  size,
		posts: make(map[int64][]model.Post),
	}, nil
}

func (p *PostStorage) Record(_ context.Context, post model.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	userPosts := append([]model.Post{post}, p.posts[post.UserID]...)
	if len(userPosts) > p.size {
		userPosts = userPosts[:p.size]
	}
	p.posts[post.UserID] = userPosts
	return nil
}

// ListUserPosts returns up to limit posts of the user, newest first. A
// non-positive limit returns all of them.
func (p *PostStorage) ListUserPosts(_ context.Context, userID int64, limit int) ([]model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	userPosts := p.posts[userID]
	if limit <= 0 || limit > len(userPosts) {
		limit = len(userPosts)
	}
	result := make([]model.Post, limit)
	copy(result, userPosts[:limit])
	return result, nil
}
