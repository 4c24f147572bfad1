package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/CrestNiraj12/postboard/domain"
)

// DeleteStatus is the HTTP outcome of a delete call.
type DeleteStatus struct {
	Code int
	Text string
}

// OK reports whether the server confirmed the delete.
func (s DeleteStatus) OK() bool { return s.Code == http.StatusOK }

func (s DeleteStatus) String() string {
	return fmt.Sprintf("%d: %s", s.Code, s.Text)
}

// PostService talks to the remote posts resource.
// Dates and reactions are not part of the remote model; returned posts
// leave them zero.
type PostService interface {
	// List returns every post in server order.
	List(ctx context.Context) ([]domain.Post, error)

	// Create persists a draft and returns the server's copy with its new id.
	Create(ctx context.Context, draft domain.Draft) (domain.Post, error)

	// Update replaces a post. The returned post may lack an id if the
	// server echoed a malformed body.
	Update(ctx context.Context, post domain.Post) (domain.Post, error)

	// Delete removes a post. A response with any status is not an error;
	// only a failed round trip is.
	Delete(ctx context.Context, id domain.PostID) (DeleteStatus, error)
}
