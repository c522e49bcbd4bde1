package graph

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/auth"
	"github.com/VitaminP8/blogql/internal/storage"
)

// SignUp проверяет ввод (email -> пароль -> имя и био), первая же ошибка возвращается одна.
func (r *mutationResolver) SignUp(ctx context.Context, credentials model.CredentialsInput, name *string, bio *string) (*model.AuthPayload, error) {
	if !auth.IsEmail(credentials.Email) {
		return r.authError("signUp", MsgInvalidEmail), nil
	}

	if !auth.ValidPassword(credentials.Password) {
		return r.authError("signUp", MsgInvalidPassword), nil
	}

	if blank(name) || blank(bio) {
		return r.authError("signUp", MsgInvalidNameOrBio), nil
	}

	hashedPassword, err := r.Passwords.Hash(credentials.Password)
	if err != nil {
		return nil, err
	}

	u, err := r.UserStore.CreateUserWithProfile(ctx, *name, credentials.Email, hashedPassword, *bio)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return r.authError("signUp", MsgEmailAlreadyInUse), nil
	}
	if err != nil {
		return nil, err
	}

	return r.issueToken(u)
}

// SignIn отвечает одинаково и на неизвестный email, и на неверный пароль.
func (r *mutationResolver) SignIn(ctx context.Context, credentials model.CredentialsInput) (*model.AuthPayload, error) {
	u, hash, err := r.UserStore.GetCredentials(ctx, credentials.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return r.authError("signIn", MsgInvalidCredentials), nil
	}
	if err != nil {
		return nil, err
	}

	if !r.Passwords.Compare(hash, credentials.Password) {
		return r.authError("signIn", MsgInvalidCredentials), nil
	}

	return r.issueToken(u)
}

func (r *mutationResolver) issueToken(u *model.User) (*model.AuthPayload, error) {
	userID, err := strconv.ParseUint(u.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unexpected user id %q: %w", u.ID, err)
	}

	token, err := r.Tokens.Issue(uint(userID))
	if err != nil {
		return nil, err
	}

	return &model.AuthPayload{
		UserErrors: noErrors(),
		Token:      &token,
	}, nil
}

func (r *mutationResolver) authError(operation, msg string) *model.AuthPayload {
	r.recorder().RecordUserError(operation)
	return &model.AuthPayload{UserErrors: userErrors(msg)}
}
