package upstream

import (
	"context"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/go-resty/resty/v2"
)

const upstreamComments = "comments"

// CommentsClient wraps the public comments API.
type CommentsClient struct {
	http *resty.Client
}

func NewCommentsClient(baseURL string) *CommentsClient {
	return &CommentsClient{http: newClient(baseURL, commentsTimeout)}
}

func (c *CommentsClient) ListComments(ctx context.Context, q model.CommentQuery) ([]model.Comment, error) {
	var comments []model.Comment
	req := c.http.R().SetContext(ctx).SetResult(&comments)
	setInt(req, "limit", q.Limit)
	setInt(req, "offset", q.Offset)
	if q.Order != "" {
		req.SetQueryParam("order", q.Order)
	}
	setBool(req, "ascending", q.Ascending)
	if q.ParentEntityType != "" {
		req.SetQueryParam("parent_entity_type", q.ParentEntityType)
	}
	if q.ParentEntityID != "" {
		req.SetQueryParam("parent_entity_id", q.ParentEntityID)
	}
	setBool(req, "get_positions", q.GetPositions)
	setBool(req, "holders_only", q.HoldersOnly)
	resp, err := req.Get("/comments")
	if appErr := translate(upstreamComments, resp, err); appErr != nil {
		return nil, appErr
	}
	return comments, nil
}
