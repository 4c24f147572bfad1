package jsonapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/CrestNiraj12/postboard/app"
	"github.com/CrestNiraj12/postboard/domain"
)

const postsPath = "/posts"

// postService implements app.PostService against a JSONPlaceholder-style
// /posts resource.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the given client.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

func postPath(id domain.PostID) string {
	return postsPath + "/" + url.PathEscape(string(id))
}

func (s *postService) List(ctx context.Context) ([]domain.Post, error) {
	resp, err := s.client.Get(ctx, postsPath)
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	posts, err := decodePosts(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Create(ctx context.Context, draft domain.Draft) (domain.Post, error) {
	resp, err := s.client.Post(ctx, postsPath, draftBody(draft))
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	post, err := decodePost(resp.Body, true)
	if err != nil {
		return domain.Post{}, fmt.Errorf("parsing created post: %w", err)
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, post domain.Post) (domain.Post, error) {
	resp, err := s.client.Put(ctx, postPath(post.ID), fromDomain(post))
	if err != nil {
		return domain.Post{}, fmt.Errorf("updating post %s: %w", post.ID, err)
	}
	updated, err := decodePost(resp.Body, false)
	if err != nil {
		return domain.Post{}, fmt.Errorf("parsing updated post: %w", err)
	}
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, id domain.PostID) (app.DeleteStatus, error) {
	resp, err := s.client.Delete(ctx, postPath(id))
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return app.DeleteStatus{Code: se.Response.StatusCode, Text: se.Response.StatusText}, nil
		}
		return app.DeleteStatus{}, fmt.Errorf("deleting post %s: %w", id, err)
	}
	return app.DeleteStatus{Code: resp.StatusCode, Text: resp.StatusText}, nil
}
