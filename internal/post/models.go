package post

import (
	"time"

	"backend-quillhub/internal/shared/paginate"
)

// Post is a user-authored text item, optionally grouped and illustrated.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	GroupID   *string   `json:"group_id,omitempty"`
	GroupSlug *string   `json:"group,omitempty"`
	Text      string    `json:"text"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// PostInput is the create/edit submission. The author always comes from the
// token, never from the payload.
type PostInput struct {
	Text     string `json:"text" validate:"required"`
	Group    string `json:"group" validate:"omitempty,max=64"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// Page is one listing window plus its pagination metadata.
type Page struct {
	Items []Post `json:"items"`
	paginate.Meta
}

type GroupInfo struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type GroupPage struct {
	Group GroupInfo `json:"group"`
	Page
}

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Profile is an author's page: their identity, post count, posts, and for an
// authenticated viewer whether they follow the author.
type Profile struct {
	Author    Author `json:"author"`
	PostCount int    `json:"post_count"`
	Following *bool  `json:"following,omitempty"`
	Posts     Page   `json:"posts"`
}

type Detail struct {
	Post      Post      `json:"post"`
	Comments  []Comment `json:"comments"`
	PostCount int       `json:"post_count"`
}
