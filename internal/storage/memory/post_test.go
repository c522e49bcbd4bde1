package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// fixedClock выдает время, сдвигающееся на секунду при каждом вызове
func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	s := NewPostMemoryStorage()
	ctx := context.Background()

	p, err := s.CreatePost(ctx, "1", "Test post", "Test content")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Test post", p.Title)
	assert.Equal(t, "Test content", p.Content)
	assert.Equal(t, "1", p.AuthorID)
	assert.False(t, p.Published)
	assert.False(t, p.CreatedAt.IsZero())

	t.Run("Returned post is a copy", func(t *testing.T) {
		p.Title = "changed outside"

		saved, err := s.GetPostByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Test post", saved.Title)
	})
}

func TestPostMemoryStorage_GetPostByID(t *testing.T) {
	s := NewPostMemoryStorage()

	_, err := s.GetPostByID(context.Background(), "non-existent-id")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPostMemoryStorage_ListPosts(t *testing.T) {
	s := NewPostMemoryStorage()
	s.now = fixedClock()
	ctx := context.Background()

	a1, _ := s.CreatePost(ctx, "1", "A1", "c")
	a2, _ := s.CreatePost(ctx, "1", "A2", "c")
	b1, _ := s.CreatePost(ctx, "2", "B1", "c")
	_, err := s.UpdatePost(ctx, a1.ID, post.Update{Published: boolPtr(true)})
	require.NoError(t, err)
	_, err = s.UpdatePost(ctx, b1.ID, post.Update{Published: boolPtr(true)})
	require.NoError(t, err)

	ids := func(filter post.Filter) []string {
		posts, err := s.ListPosts(ctx, filter)
		require.NoError(t, err)
		out := make([]string, 0, len(posts))
		for _, p := range posts {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{b1.ID, a2.ID, a1.ID}, ids(post.Filter{}))
	assert.Equal(t, []string{b1.ID, a1.ID}, ids(post.Filter{PublishedOnly: true}))
	assert.Equal(t, []string{a2.ID, a1.ID}, ids(post.Filter{AuthorID: "1"}))
	assert.Equal(t, []string{a1.ID}, ids(post.Filter{AuthorID: "1", PublishedOnly: true}))
	assert.Empty(t, ids(post.Filter{AuthorID: "3"}))

	t.Run("Same timestamp falls back to id order", func(t *testing.T) {
		s := NewPostMemoryStorage()
		at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return at }

		for i := 0; i < 11; i++ {
			_, err := s.CreatePost(ctx, "1", "t", "c")
			require.NoError(t, err)
		}

		posts, err := s.ListPosts(ctx, post.Filter{})
		require.NoError(t, err)
		require.Len(t, posts, 11)
		assert.Equal(t, "11", posts[0].ID)
		assert.Equal(t, "10", posts[1].ID)
		assert.Equal(t, "1", posts[10].ID)
	})
}

func TestPostMemoryStorage_UpdatePost(t *testing.T) {
	s := NewPostMemoryStorage()
	ctx := context.Background()

	p, err := s.CreatePost(ctx, "1", "Title", "Content")
	require.NoError(t, err)

	t.Run("Partial update", func(t *testing.T) {
		updated, err := s.UpdatePost(ctx, p.ID, post.Update{Content: strPtr("New content")})
		require.NoError(t, err)
		assert.Equal(t, "Title", updated.Title)
		assert.Equal(t, "New content", updated.Content)
		assert.False(t, updated.Published)
	})

	t.Run("Publish and unpublish", func(t *testing.T) {
		updated, err := s.UpdatePost(ctx, p.ID, post.Update{Published: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, updated.Published)

		updated, err = s.UpdatePost(ctx, p.ID, post.Update{Published: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, updated.Published)
	})

	t.Run("Missing post", func(t *testing.T) {
		_, err := s.UpdatePost(ctx, "999", post.Update{Title: strPtr("x")})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPostMemoryStorage_DeletePost(t *testing.T) {
	s := NewPostMemoryStorage()
	ctx := context.Background()

	p, err := s.CreatePost(ctx, "1", "Title", "Content")
	require.NoError(t, err)

	require.NoError(t, s.DeletePost(ctx, p.ID))

	_, err = s.GetPostByID(ctx, p.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = s.DeletePost(ctx, p.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPostMemoryStorage_Concurrency(t *testing.T) {
	s := NewPostMemoryStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreatePost(ctx, strconv.Itoa(i%3+1), "t", "c")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	posts, err := s.ListPosts(ctx, post.Filter{})
	require.NoError(t, err)
	assert.Len(t, posts, 50)

	seen := make(map[string]bool)
	for _, p := range posts {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}
