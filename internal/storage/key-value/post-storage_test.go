package key_value

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/iamvkosarev/post-generator-bot/internal/model"
	"github.com/redis/go-redis/v9"
)

func newTestStorage(t *testing.T, size int) (*PostStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	storage, err := NewPostStorage(rdb, size)
	if err != nil {
		t.Fatalf("NewPostStorage() error = %v", err)
	}
	return storage, mr
}

func TestNewPostStorage_InvalidSize(t *testing.T) {
	if _, err := NewPostStorage(nil, -1); !errors.Is(err, ErrInvalidJournalSize) {
		t.Errorf("error = %v, want ErrInvalidJournalSize", err)
	}
}

func TestPostStorage_RecordAndList(t *testing.T) {
	ctx := context.Background()
	storage, mr := newTestStorage(t, 2)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := model.Post{
		ID: uuid.New(), UserID: 42, Topic: "sea", Temperature: 0.1,
		TextLength: 120, Tokens: 40, HasImage: true, CreatedAt: createdAt,
	}
	second := model.Post{ID: uuid.New(), UserID: 42, Topic: "mountains", Temperature: 0.7, CreatedAt: createdAt}
	third := model.Post{ID: uuid.New(), UserID: 42, Topic: "forest", Temperature: 1.0, CreatedAt: createdAt}

	for _, post := range []model.Post{first, second, third} {
		if err := storage.Record(ctx, post); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	items, err := mr.List("posts_42")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("stored %d posts, want 2", len(items))
	}

	posts, err := storage.ListUserPosts(ctx, 42, 0)
	if err != nil {
		t.Fatalf("ListUserPosts() error = %v", err)
	}
	if len(posts) != 2 || posts[0].ID != third.ID || posts[1].ID != second.ID {
		t.Fatalf("posts = %+v, want [forest mountains]", posts)
	}

	latest, err := storage.ListUserPosts(ctx, 42, 1)
	if err != nil {
		t.Fatalf("ListUserPosts() error = %v", err)
	}
	if len(latest) != 1 || latest[0].Topic != "forest" {
		t.Errorf("latest = %+v", latest)
	}
}

func TestPostStorage_RoundTripFields(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t, 10)

	post := model.Post{
		ID: uuid.New(), UserID: 5, Topic: "кофе", Temperature: 0.6,
		TextLength: 300, Tokens: 90, HasImage: true,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := storage.Record(ctx, post); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	posts, err := storage.ListUserPosts(ctx, 5, 0)
	if err != nil {
		t.Fatalf("ListUserPosts() error = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	got := posts[0]
	if got.ID != post.ID || got.Topic != post.Topic || got.Temperature != post.Temperature ||
		got.TextLength != post.TextLength || got.Tokens != post.Tokens || !got.HasImage ||
		!got.CreatedAt.Equal(post.CreatedAt) {
		t.Errorf("post = %+v, want %+v", got, post)
	}
}

func TestPostStorage_UnknownUser(t *testing.T) {
	storage, _ := newTestStorage(t, 10)
	posts, err := storage.ListUserPosts(context.Background(), 404, 0)
	if err != nil {
		t.Fatalf("ListUserPosts() error = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("posts = %+v, want none", posts)
	}
}

func TestPostStorage_CorruptedEntry(t *testing.T) {
	storage, mr := newTestStorage(t, 10)
	if _, err := mr.Lpush("posts_1", "not json"); err != nil {
		t.Fatalf("Lpush() error = %v", err)
	}
	if _, err := storage.ListUserPosts(context.Background(), 1, 0); err == nil {
		t.Error("expected error for corrupted entry")
	}
}
