package graph

import (
	"errors"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/post"
)

// Сообщения userErrors. Клиенты сравнивают их как строки, менять нельзя.
const (
	MsgUnauthenticated    = "Forbidden access (unauthenticated)"
	MsgTitleAndContent    = "You must provide a title and content to create a post"
	MsgNothingToUpdate    = "Need to have atleast one field to update"
	MsgPostDoesNotExist   = "Post does not exists"
	MsgUserNotFound       = "User not found"
	MsgPostNotFound       = "Post not found"
	MsgNotOwner           = "Post not owned by user"
	MsgInvalidEmail       = "Not a valid email"
	MsgInvalidPassword    = "Not a valid password"
	MsgInvalidNameOrBio   = "Not a valid name or bio"
	MsgInvalidCredentials = "Invalid credentials"
	MsgEmailAlreadyInUse  = "Email is already in use"
)

func userErrors(msg string) []*model.UserError {
	return []*model.UserError{{Message: msg}}
}

func noErrors() []*model.UserError {
	return []*model.UserError{}
}

// guardMessage переводит отказ гарда в сообщение; false - это не отказ, а сбой хранилища
func guardMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, post.ErrUserNotFound):
		return MsgUserNotFound, true
	case errors.Is(err, post.ErrPostNotFound):
		return MsgPostNotFound, true
	case errors.Is(err, post.ErrNotOwner):
		return MsgNotOwner, true
	}
	return "", false
}
