package in_memory

import (
	"context"
	"errors"
	"testing"

	"github.com/iamvkosarev/post-generator-bot/internal/model"
)

func TestNewPostStorage_InvalidSize(t *testing.T) {
	if _, err := NewPostStorage(0); !errors.Is(err, ErrInvalidJournalSize) {
		t.Errorf("error = %v, want ErrInvalidJournalSize", err)
	}
}

func TestPostStorage_RecordAndList(t *testing.T) {
	ctx := context.Background()
	storage, err := NewPostStorage(3)
	if err != nil {
		t.Fatalf("NewPostStorage() error = %v", err)
	}

	for _, topic := range []string{"a", "b", "c", "d"} {
		if err = storage.Record(ctx, model.Post{UserID: 7, Topic: topic}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err = storage.Record(ctx, model.Post{UserID: 8, Topic: "other"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all capped", 0, []string{"d", "c", "b"}},
		{"limited", 2, []string{"d", "c"}},
		{"limit above size", 10, []string{"d", "c", "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			posts, err := storage.ListUserPosts(ctx, 7, tc.limit)
			if err != nil {
				t.Fatalf("ListUserPosts() error = %v", err)
			}
			if len(posts) != len(tc.want) {
				t.Fatalf("len(posts) = %d, want %d", len(posts), len(tc.want))
			}
			for i, post := range posts {
				if post.Topic != tc.want[i] {
					t.Errorf("posts[%d].Topic = %q, want %q", i, post.Topic, tc.want[i])
				}
			}
		})
	}

	other, err := storage.ListUserPosts(ctx, 8, 0)
	if err != nil || len(other) != 1 || other[0].Topic != "other" {
		t.Errorf("ListUserPosts(8) = %+v, %v", other, err)
	}
	empty, err := storage.ListUserPosts(ctx, 9, 0)
	if err != nil || len(empty) != 0 {
		t.Errorf("ListUserPosts(9) = %+v, %v", empty, err)
	}
}
