package graph

import (
	"context"
	"errors"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/storage"
)

// Me - текущий пользователь; nil для анонима или если пользователя уже нет.
func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return nil, nil
	}
	return r.findUser(ctx, userID)
}

// Profile сначала ищет пользователя и не трогает профили, если его нет.
func (r *queryResolver) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	u, err := r.findUser(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}

	profile, err := r.ProfileStore.GetProfileByUserID(ctx, u.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *queryResolver) Posts(ctx context.Context) ([]*model.Post, error) {
	return r.PostStore.ListPosts(ctx, post.Filter{PublishedOnly: true})
}

func (r *postResolver) User(ctx context.Context, obj *model.Post) (*model.User, error) {
	return r.findUser(ctx, obj.AuthorID)
}

func (r *profileResolver) User(ctx context.Context, obj *model.Profile) (*model.User, error) {
	return r.findUser(ctx, obj.UserID)
}

// Posts: автор видит и черновики, остальные - только опубликованное.
func (r *userResolver) Posts(ctx context.Context, obj *model.User) ([]*model.Post, error) {
	viewerID, _ := currentUserID(ctx)

	return r.PostStore.ListPosts(ctx, post.Filter{
		AuthorID:      obj.ID,
		PublishedOnly: viewerID != obj.ID,
	})
}

func (r *subscriptionResolver) PostPublished(ctx context.Context) (<-chan *model.Post, error) {
	if r.SubscriptionManager == nil {
		return nil, errors.New("subscriptions are disabled")
	}

	ch, cancel := r.SubscriptionManager.Subscribe()
	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, nil
}

func (r *Resolver) findUser(ctx context.Context, id string) (*model.User, error) {
	u, err := r.UserStore.GetUserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
