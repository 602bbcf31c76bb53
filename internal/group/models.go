package group

import "time"

// Group is a named category of posts.
type Group struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroupInput struct {
	Slug        string `json:"slug" validate:"required,max=64"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}
