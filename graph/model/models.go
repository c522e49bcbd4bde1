package model

import "time"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Profile struct {
	ID     string `json:"id"`
	Bio    string `json:"bio"`
	UserID string `json:"userId"`
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserError struct {
	Message string `json:"message"`
}

// PostPayload - общий ответ всех мутаций над постами: либо ошибка, либо пост.
type PostPayload struct {
	UserErrors []*UserError `json:"userErrors"`
	Post       *Post        `json:"post,omitempty"`
}

// AuthPayload - ответ signUp/signIn: либо ошибка, либо токен.
type AuthPayload struct {
	UserErrors []*UserError `json:"userErrors"`
	Token      *string      `json:"token,omitempty"`
}

type CredentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PostInput struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
