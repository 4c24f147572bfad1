package domain

import "errors"

var (
	// ErrMissingID indicates a post result came back without an identifier.
	ErrMissingID = errors.New("post has no id")

	// ErrUnknownReaction indicates a reaction outside the fixed set.
	ErrUnknownReaction = errors.New("unknown reaction")

	// ErrInvalidPost indicates an API payload that does not decode into a post.
	ErrInvalidPost = errors.New("invalid post payload")

	// ErrEmptyTitle indicates the user submitted a post without a title.
	ErrEmptyTitle = errors.New("post title cannot be empty")

	// ErrEmptyBody indicates the user submitted a post without content.
	ErrEmptyBody = errors.New("post body cannot be empty")

	// ErrInvalidAuthor indicates the author field is not a user id.
	ErrInvalidAuthor = errors.New("author must be a numeric user id")
)
