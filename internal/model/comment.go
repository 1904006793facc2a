package model

// Comment is a user comment attached to an event or series.
type Comment struct {
	ID               string `json:"id"`
	Body             string `json:"body"`
	ParentEntityType string `json:"parentEntityType"`
	ParentEntityID   int64  `json:"parentEntityID"`
	ParentCommentID  string `json:"parentCommentID,omitempty"`
	UserAddress      string `json:"userAddress,omitempty"`
	ReplyAddress     string `json:"replyAddress,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"`
	ReactionCount    int    `json:"reactionCount,omitempty"`
	ReportCount      int    `json:"reportCount,omitempty"`
}

// CommentQuery filters the comments listing. Pointer fields are tri-state.
type CommentQuery struct {
	Limit            *int
	Offset           *int
	Order            string
	Ascending        *bool
	ParentEntityType string
	ParentEntityID   string
	GetPositions     *bool
	HoldersOnly      *bool
}
