// Package types declares the results of the blog queries and mutations.
package types

import (
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// PostsQueryItem is one row of the posts query.
type PostsQueryItem struct {
	ID               *models.RecordID `json:"id"`
	Title            string           `json:"title"`
	Content          string           `json:"content"`
	Status           string           `json:"status"`
	NumberOfComments uint16           `json:"number_of_comments"`
}

// PostsQuery is the result of queries/posts.surql.
type PostsQuery []PostsQueryItem

// PostByIdQueryComment is a comment of a post returned by the post_by_id query.
type PostByIdQueryComment struct {
	ID        *models.RecordID `json:"id"`
	Content   string           `json:"content"`
	Author    string           `json:"author"`
	CreatedAt time.Time        `json:"created_at"`
}

// PostByIdQueryItem is one row of the post_by_id query.
type PostByIdQueryItem struct {
	ID        *models.RecordID       `json:"id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Status    string                 `json:"status"`
	Author    string                 `json:"author"`
	CreatedAt time.Time              `json:"created_at"`
	Comments  []PostByIdQueryComment `json:"comments"`
}

// PostByIdQuery is the result of queries/post_by_id.surql.
type PostByIdQuery []PostByIdQueryItem

// CommentMutationItem is the comment created by the comment mutation.
type CommentMutationItem struct {
	ID      *models.RecordID `json:"id"`
	Content string           `json:"content"`
}

// CommentMutation is the result of mutations/comment.surql.
type CommentMutation []CommentMutationItem
