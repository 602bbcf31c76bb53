// Package follow manages the directed "user watches author" edges and the
// feed they produce.
package follow

import (
	"context"
	"errors"

	"backend-quillhub/internal/db"
	"backend-quillhub/internal/post"
	"backend-quillhub/internal/shared/paginate"
)

// ErrSelfFollow is returned when a user tries to follow themselves. The
// action layer is the only guard; the schema allows the edge.
var ErrSelfFollow = errors.New("cannot follow yourself")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Follow creates the (user, author) edge. A duplicate edge is not pre-checked
// here; it surfaces as a unique-constraint violation from the database.
func (s *Service) Follow(ctx context.Context, userID, authorUsername string) error {
	authorID, err := s.authorIDByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	if authorID == userID {
		return ErrSelfFollow
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1,$2)
	`, userID, authorID)
	return err
}

// Unfollow deletes the matching edge. Deleting an absent edge is a no-op.
func (s *Service) Unfollow(ctx context.Context, userID, authorUsername string) error {
	authorID, err := s.authorIDByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		DELETE FROM follows
		WHERE user_id=$1 AND author_id=$2
	`, userID, authorID)
	return err
}

func (s *Service) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE user_id=$1 AND author_id=$2
		)
	`, userID, authorID)
	var following bool
	if err := row.Scan(&following); err != nil {
		return false, err
	}
	return following, nil
}

// Feed lists posts by the authors the user follows, newest first.
func (s *Service) Feed(ctx context.Context, userID string, page int) (post.Page, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM posts
		WHERE author_id IN (SELECT author_id FROM follows WHERE user_id=$1)
	`, userID).Scan(&count)
	if err != nil {
		return post.Page{}, err
	}
	meta, offset := paginate.Window(count, page)

	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.author_id, u.username, p.group_id, g.slug, p.text, p.image_url, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN groups g ON g.id = p.group_id
		WHERE p.author_id IN (SELECT author_id FROM follows WHERE user_id=$1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, paginate.PerPage, offset)
	if err != nil {
		return post.Page{}, err
	}
	defer rows.Close()

	var items []post.Post
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Author, &p.GroupID, &p.GroupSlug, &p.Text, &p.ImageURL, &p.CreatedAt); err != nil {
			return post.Page{}, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return post.Page{}, err
	}
	return post.Page{Items: items, Meta: meta}, nil
}

func (s *Service) authorIDByUsername(ctx context.Context, username string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE username=$1`, username).Scan(&id)
	return id, err
}
