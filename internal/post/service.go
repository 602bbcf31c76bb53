package post

import (
	"context"
	"errors"

	"backend-quillhub/internal/db"
	"backend-quillhub/internal/shared/paginate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotAuthor is the authorization result for a mutation attempted by
// someone other than the post's author. Handlers translate it into the
// redirect-to-detail behavior instead of an error page.
var ErrNotAuthor = errors.New("requester is not the author")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

const postColumns = `p.id, p.author_id, u.username, p.group_id, g.slug, p.text, p.image_url, p.created_at`

const postFrom = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

func (s *Service) ListAll(ctx context.Context, page int) (Page, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return Page{}, err
	}
	meta, offset := paginate.Window(count, page)

	rows, err := s.db.Query(ctx, `
		SELECT `+postColumns+postFrom+`
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`, paginate.PerPage, offset)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	items, err := scanPosts(rows)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Meta: meta}, nil
}

func (s *Service) ListByGroup(ctx context.Context, slug string, page int) (GroupPage, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, slug, title, description
		FROM groups WHERE slug=$1
	`, slug)
	var g GroupInfo
	if err := row.Scan(&g.ID, &g.Slug, &g.Title, &g.Description); err != nil {
		return GroupPage{}, err
	}

	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE group_id=$1`, g.ID).Scan(&count); err != nil {
		return GroupPage{}, err
	}
	meta, offset := paginate.Window(count, page)

	rows, err := s.db.Query(ctx, `
		SELECT `+postColumns+postFrom+`
		WHERE p.group_id=$1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, g.ID, paginate.PerPage, offset)
	if err != nil {
		return GroupPage{}, err
	}
	defer rows.Close()

	items, err := scanPosts(rows)
	if err != nil {
		return GroupPage{}, err
	}
	return GroupPage{Group: g, Page: Page{Items: items, Meta: meta}}, nil
}

func (s *Service) Profile(ctx context.Context, username string, page int) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, full_name
		FROM users WHERE username=$1
	`, username)
	var a Author
	if err := row.Scan(&a.ID, &a.Username, &a.FullName); err != nil {
		return Profile{}, err
	}

	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id=$1`, a.ID).Scan(&count); err != nil {
		return Profile{}, err
	}
	meta, offset := paginate.Window(count, page)

	rows, err := s.db.Query(ctx, `
		SELECT `+postColumns+postFrom+`
		WHERE p.author_id=$1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, a.ID, paginate.PerPage, offset)
	if err != nil {
		return Profile{}, err
	}
	defer rows.Close()

	items, err := scanPosts(rows)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Author:    a,
		PostCount: count,
		Posts:     Page{Items: items, Meta: meta},
	}, nil
}

func (s *Service) Detail(ctx context.Context, id string) (Detail, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+postColumns+postFrom+`
		WHERE p.id=$1
	`, id)
	var p Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Author, &p.GroupID, &p.GroupSlug, &p.Text, &p.ImageURL, &p.CreatedAt); err != nil {
		return Detail{}, err
	}

	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id=$1`, p.AuthorID).Scan(&count); err != nil {
		return Detail{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id=$1
		ORDER BY c.created_at
	`, id)
	if err != nil {
		return Detail{}, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.PostID, &cm.AuthorID, &cm.Author, &cm.Text, &cm.CreatedAt); err != nil {
			return Detail{}, err
		}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return Detail{}, err
	}
	return Detail{Post: p, Comments: comments, PostCount: count}, nil
}

func (s *Service) Create(ctx context.Context, authorID string, input PostInput) (Post, error) {
	p := Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Text:     input.Text,
	}
	if input.Group != "" {
		groupID, err := s.groupIDBySlug(ctx, input.Group)
		if err != nil {
			return Post{}, err
		}
		slug := input.Group
		p.GroupID = &groupID
		p.GroupSlug = &slug
	}
	if input.ImageURL != "" {
		url := input.ImageURL
		p.ImageURL = &url
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (id, author_id, group_id, text, image_url)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, p.ID, p.AuthorID, p.GroupID, p.Text, p.ImageURL)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id, requesterID string, input PostInput) error {
	if err := s.authorize(ctx, id, requesterID); err != nil {
		return err
	}

	var groupID *string
	if input.Group != "" {
		gid, err := s.groupIDBySlug(ctx, input.Group)
		if err != nil {
			return err
		}
		groupID = &gid
	}
	var imageURL *string
	if input.ImageURL != "" {
		url := input.ImageURL
		imageURL = &url
	}

	_, err := s.db.Exec(ctx, `
		UPDATE posts
		SET text=$2, group_id=$3, image_url=$4
		WHERE id=$1
	`, id, input.Text, groupID, imageURL)
	return err
}

// Delete removes the post and its comments. The comment delete is explicit so
// the cascade does not depend on the schema.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	if err := s.authorize(ctx, id, requesterID); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM comments WHERE post_id=$1`, id); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	return err
}

func (s *Service) AddComment(ctx context.Context, postID, authorID string, input CommentInput) (Comment, error) {
	var exists string
	if err := s.db.QueryRow(ctx, `SELECT id FROM posts WHERE id=$1`, postID).Scan(&exists); err != nil {
		return Comment{}, err
	}

	cm := Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: authorID,
		Text:     input.Text,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (id, post_id, author_id, text)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, cm.ID, cm.PostID, cm.AuthorID, cm.Text)
	if err := row.Scan(&cm.CreatedAt); err != nil {
		return Comment{}, err
	}
	return cm, nil
}

// authorize is the capability check gating every mutation: the requesting
// identity must equal the post's author.
func (s *Service) authorize(ctx context.Context, postID, requesterID string) error {
	var authorID string
	if err := s.db.QueryRow(ctx, `SELECT author_id FROM posts WHERE id=$1`, postID).Scan(&authorID); err != nil {
		return err
	}
	if authorID != requesterID {
		return ErrNotAuthor
	}
	return nil
}

func (s *Service) groupIDBySlug(ctx context.Context, slug string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM groups WHERE slug=$1`, slug).Scan(&id)
	return id, err
}

func scanPosts(rows pgx.Rows) ([]Post, error) {
	var items []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Author, &p.GroupID, &p.GroupSlug, &p.Text, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
