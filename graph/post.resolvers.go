package graph

import (
	"context"
	"errors"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/storage"
)

func (r *mutationResolver) PostCreate(ctx context.Context, title *string, content *string) (*model.PostPayload, error) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return r.postError("postCreate", MsgUnauthenticated), nil
	}

	if blank(title) || blank(content) {
		return r.postError("postCreate", MsgTitleAndContent), nil
	}

	p, err := r.PostStore.CreatePost(ctx, userID, *title, *content)
	if err != nil {
		return nil, err
	}

	return &model.PostPayload{UserErrors: noErrors(), Post: p}, nil
}

// PostUpdate меняет только переданные непустые поля.
func (r *mutationResolver) PostUpdate(ctx context.Context, postID string, input model.PostInput) (*model.PostPayload, error) {
	payload, err := r.authorize(ctx, "postUpdate", postID)
	if payload != nil || err != nil {
		return payload, err
	}

	if blank(input.Title) && blank(input.Content) {
		return r.postError("postUpdate", MsgNothingToUpdate), nil
	}

	// гард уже смотрел пост, но между проверками его могли удалить
	payload, _, err = r.existingPost(ctx, "postUpdate", postID)
	if payload != nil || err != nil {
		return payload, err
	}

	var upd post.Update
	if !blank(input.Title) {
		upd.Title = input.Title
	}
	if !blank(input.Content) {
		upd.Content = input.Content
	}

	return r.update(ctx, "postUpdate", postID, upd)
}

// PostDelete возвращает пост в том виде, каким он был до удаления.
func (r *mutationResolver) PostDelete(ctx context.Context, postID string) (*model.PostPayload, error) {
	payload, err := r.authorize(ctx, "postDelete", postID)
	if payload != nil || err != nil {
		return payload, err
	}

	payload, existing, err := r.existingPost(ctx, "postDelete", postID)
	if payload != nil || err != nil {
		return payload, err
	}

	err = r.PostStore.DeletePost(ctx, postID)
	if errors.Is(err, storage.ErrNotFound) {
		return r.postError("postDelete", MsgPostDoesNotExist), nil
	}
	if err != nil {
		return nil, err
	}

	return &model.PostPayload{UserErrors: noErrors(), Post: existing}, nil
}

func (r *mutationResolver) PostPublish(ctx context.Context, postID string) (*model.PostPayload, error) {
	payload, err := r.setPublished(ctx, "postPublish", postID, true)
	if err != nil || len(payload.UserErrors) > 0 {
		return payload, err
	}

	if r.SubscriptionManager != nil {
		r.SubscriptionManager.Publish(payload.Post)
	}
	return payload, nil
}

// PostUnpublish снимает пост с публикации (published = false).
func (r *mutationResolver) PostUnpublish(ctx context.Context, postID string) (*model.PostPayload, error) {
	return r.setPublished(ctx, "postUnpublish", postID, false)
}

func (r *mutationResolver) setPublished(ctx context.Context, operation, postID string, published bool) (*model.PostPayload, error) {
	payload, err := r.authorize(ctx, operation, postID)
	if payload != nil || err != nil {
		return payload, err
	}

	return r.update(ctx, operation, postID, post.Update{Published: &published})
}

// authorize: нужен токен, затем гард владельца. nil, nil - можно продолжать.
func (r *mutationResolver) authorize(ctx context.Context, operation, postID string) (*model.PostPayload, error) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return r.postError(operation, MsgUnauthenticated), nil
	}

	err := r.guard().CanUserMutatePost(ctx, userID, postID)
	if err == nil {
		return nil, nil
	}
	if msg, denied := guardMessage(err); denied {
		return r.postError(operation, msg), nil
	}
	return nil, err
}

func (r *mutationResolver) existingPost(ctx context.Context, operation, postID string) (*model.PostPayload, *model.Post, error) {
	existing, err := r.PostStore.GetPostByID(ctx, postID)
	if errors.Is(err, storage.ErrNotFound) {
		return r.postError(operation, MsgPostDoesNotExist), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return nil, existing, nil
}

func (r *mutationResolver) update(ctx context.Context, operation, postID string, upd post.Update) (*model.PostPayload, error) {
	p, err := r.PostStore.UpdatePost(ctx, postID, upd)
	if errors.Is(err, storage.ErrNotFound) {
		return r.postError(operation, MsgPostDoesNotExist), nil
	}
	if err != nil {
		return nil, err
	}

	return &model.PostPayload{UserErrors: noErrors(), Post: p}, nil
}

func (r *mutationResolver) postError(operation, msg string) *model.PostPayload {
	r.recorder().RecordUserError(operation)
	return &model.PostPayload{UserErrors: userErrors(msg)}
}
