package graph

import (
	"context"
	"strconv"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/auth"
	"github.com/VitaminP8/blogql/internal/metrics"
	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/subscription"
	"github.com/VitaminP8/blogql/internal/user"
)

// Resolver служит корневой точкой для всех резолверов.
// Все зависимости внедряются сюда при старте; состояния запроса здесь нет,
// личность пользователя приходит только через context.
type Resolver struct {
	PostStore           post.PostStorage
	UserStore           user.UserStorage
	ProfileStore        user.ProfileStorage
	Tokens              *auth.TokenService
	Passwords           *auth.PasswordHasher
	SubscriptionManager subscription.Manager
	Metrics             metrics.Recorder
}

type QueryResolver interface {
	Me(ctx context.Context) (*model.User, error)
	Profile(ctx context.Context, userID string) (*model.Profile, error)
	Posts(ctx context.Context) ([]*model.Post, error)
}

type MutationResolver interface {
	SignUp(ctx context.Context, credentials model.CredentialsInput, name *string, bio *string) (*model.AuthPayload, error)
	SignIn(ctx context.Context, credentials model.CredentialsInput) (*model.AuthPayload, error)
	PostCreate(ctx context.Context, title *string, content *string) (*model.PostPayload, error)
	PostUpdate(ctx context.Context, postID string, input model.PostInput) (*model.PostPayload, error)
	PostDelete(ctx context.Context, postID string) (*model.PostPayload, error)
	PostPublish(ctx context.Context, postID string) (*model.PostPayload, error)
	PostUnpublish(ctx context.Context, postID string) (*model.PostPayload, error)
}

type SubscriptionResolver interface {
	PostPublished(ctx context.Context) (<-chan *model.Post, error)
}

type PostResolver interface {
	User(ctx context.Context, obj *model.Post) (*model.User, error)
}

type ProfileResolver interface {
	User(ctx context.Context, obj *model.Profile) (*model.User, error)
}

type UserResolver interface {
	Posts(ctx context.Context, obj *model.User) ([]*model.Post, error)
}

func (r *Resolver) Query() QueryResolver               { return &queryResolver{r} }
func (r *Resolver) Mutation() MutationResolver         { return &mutationResolver{r} }
func (r *Resolver) Subscription() SubscriptionResolver { return &subscriptionResolver{r} }
func (r *Resolver) Post() PostResolver                 { return &postResolver{r} }
func (r *Resolver) Profile() ProfileResolver           { return &profileResolver{r} }
func (r *Resolver) User() UserResolver                 { return &userResolver{r} }

type queryResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }
type postResolver struct{ *Resolver }
type profileResolver struct{ *Resolver }
type userResolver struct{ *Resolver }

func (r *Resolver) guard() *post.Guard {
	return post.NewGuard(r.UserStore, r.PostStore)
}

func (r *Resolver) recorder() metrics.Recorder {
	if r.Metrics == nil {
		return metrics.Nop{}
	}
	return r.Metrics
}

// currentUserID - ID пользователя из проверенного токена; false для анонимного запроса
func currentUserID(ctx context.Context) (string, bool) {
	id, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return "", false
	}
	return strconv.FormatUint(uint64(id), 10), true
}

func blank(s *string) bool {
	return s == nil || *s == ""
}
