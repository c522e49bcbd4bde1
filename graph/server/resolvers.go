package server

import (
	"context"
	"time"

	"github.com/VitaminP8/blogql/graph"
	"github.com/VitaminP8/blogql/graph/model"
	graphql "github.com/graph-gophers/graphql-go"
)

// Обертки ниже только переводят типы graph/model в то, что ждет graphql-go.
// Вся логика живет в пакете graph.

type credentialsInput struct {
	Email    string
	Password string
}

type postInput struct {
	Title   *string
	Content *string
}

type rootResolver struct {
	r *graph.Resolver
}

func (q *rootResolver) Me(ctx context.Context) (*userResolver, error) {
	u, err := q.r.Query().Me(ctx)
	return newUser(q.r, u), err
}

func (q *rootResolver) Profile(ctx context.Context, args struct{ UserID graphql.ID }) (*profileResolver, error) {
	p, err := q.r.Query().Profile(ctx, string(args.UserID))
	return newProfile(q.r, p), err
}

func (q *rootResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := q.r.Query().Posts(ctx)
	if err != nil {
		return nil, err
	}
	return newPosts(q.r, posts), nil
}

func (q *rootResolver) SignUp(ctx context.Context, args struct {
	Credentials credentialsInput
	Name        *string
	Bio         *string
}) (*authPayloadResolver, error) {
	payload, err := q.r.Mutation().SignUp(ctx, model.CredentialsInput{
		Email:    args.Credentials.Email,
		Password: args.Credentials.Password,
	}, args.Name, args.Bio)
	return newAuthPayload(payload), err
}

func (q *rootResolver) SignIn(ctx context.Context, args struct{ Credentials credentialsInput }) (*authPayloadResolver, error) {
	payload, err := q.r.Mutation().SignIn(ctx, model.CredentialsInput{
		Email:    args.Credentials.Email,
		Password: args.Credentials.Password,
	})
	return newAuthPayload(payload), err
}

func (q *rootResolver) PostCreate(ctx context.Context, args struct {
	Title   *string
	Content *string
}) (*postPayloadResolver, error) {
	payload, err := q.r.Mutation().PostCreate(ctx, args.Title, args.Content)
	return newPostPayload(q.r, payload), err
}

func (q *rootResolver) PostUpdate(ctx context.Context, args struct {
	PostID graphql.ID
	Post   postInput
}) (*postPayloadResolver, error) {
	payload, err := q.r.Mutation().PostUpdate(ctx, string(args.PostID), model.PostInput{
		Title:   args.Post.Title,
		Content: args.Post.Content,
	})
	return newPostPayload(q.r, payload), err
}

func (q *rootResolver) PostDelete(ctx context.Context, args struct{ PostID graphql.ID }) (*postPayloadResolver, error) {
	payload, err := q.r.Mutation().PostDelete(ctx, string(args.PostID))
	return newPostPayload(q.r, payload), err
}

func (q *rootResolver) PostPublish(ctx context.Context, args struct{ PostID graphql.ID }) (*postPayloadResolver, error) {
	payload, err := q.r.Mutation().PostPublish(ctx, string(args.PostID))
	return newPostPayload(q.r, payload), err
}

func (q *rootResolver) PostUnpublish(ctx context.Context, args struct{ PostID graphql.ID }) (*postPayloadResolver, error) {
	payload, err := q.r.Mutation().PostUnpublish(ctx, string(args.PostID))
	return newPostPayload(q.r, payload), err
}

func (q *rootResolver) PostPublished(ctx context.Context) (<-chan *postResolver, error) {
	posts, err := q.r.Subscription().PostPublished(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan *postResolver)
	go func() {
		defer close(out)
		for p := range posts {
			select {
			case out <- newPost(q.r, p):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

type userResolver struct {
	root *graph.Resolver
	u    *model.User
}

func newUser(root *graph.Resolver, u *model.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{root: root, u: u}
}

func (u *userResolver) ID() graphql.ID { return graphql.ID(u.u.ID) }
func (u *userResolver) Name() string   { return u.u.Name }
func (u *userResolver) Email() string  { return u.u.Email }

func (u *userResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := u.root.User().Posts(ctx, u.u)
	if err != nil {
		return nil, err
	}
	return newPosts(u.root, posts), nil
}

type postResolver struct {
	root *graph.Resolver
	p    *model.Post
}

func newPost(root *graph.Resolver, p *model.Post) *postResolver {
	if p == nil {
		return nil
	}
	return &postResolver{root: root, p: p}
}

func newPosts(root *graph.Resolver, posts []*model.Post) []*postResolver {
	out := make([]*postResolver, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPost(root, p))
	}
	return out
}

func (p *postResolver) ID() graphql.ID    { return graphql.ID(p.p.ID) }
func (p *postResolver) Title() string     { return p.p.Title }
func (p *postResolver) Content() string   { return p.p.Content }
func (p *postResolver) Published() bool   { return p.p.Published }
func (p *postResolver) CreatedAt() string { return p.p.CreatedAt.Format(time.RFC3339Nano) }

func (p *postResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := p.root.Post().User(ctx, p.p)
	return newUser(p.root, u), err
}

type profileResolver struct {
	root *graph.Resolver
	p    *model.Profile
}

func newProfile(root *graph.Resolver, p *model.Profile) *profileResolver {
	if p == nil {
		return nil
	}
	return &profileResolver{root: root, p: p}
}

func (p *profileResolver) ID() graphql.ID { return graphql.ID(p.p.ID) }
func (p *profileResolver) Bio() string    { return p.p.Bio }

func (p *profileResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := p.root.Profile().User(ctx, p.p)
	return newUser(p.root, u), err
}

type userErrorResolver struct {
	e *model.UserError
}

func (e *userErrorResolver) Message() string { return e.e.Message }

func newUserErrors(errs []*model.UserError) []*userErrorResolver {
	out := make([]*userErrorResolver, 0, len(errs))
	for _, e := range errs {
		out = append(out, &userErrorResolver{e: e})
	}
	return out
}

type postPayloadResolver struct {
	root    *graph.Resolver
	payload *model.PostPayload
}

func newPostPayload(root *graph.Resolver, payload *model.PostPayload) *postPayloadResolver {
	if payload == nil {
		return nil
	}
	return &postPayloadResolver{root: root, payload: payload}
}

func (p *postPayloadResolver) UserErrors() []*userErrorResolver {
	return newUserErrors(p.payload.UserErrors)
}

func (p *postPayloadResolver) Post() *postResolver {
	return newPost(p.root, p.payload.Post)
}

type authPayloadResolver struct {
	payload *model.AuthPayload
}

func newAuthPayload(payload *model.AuthPayload) *authPayloadResolver {
	if payload == nil {
		return nil
	}
	return &authPayloadResolver{payload: payload}
}

func (a *authPayloadResolver) UserErrors() []*userErrorResolver {
	return newUserErrors(a.payload.UserErrors)
}

func (a *authPayloadResolver) Token() *string {
	return a.payload.Token
}
