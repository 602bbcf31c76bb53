package group

import (
	"context"

	"backend-quillhub/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input GroupInput) (Group, error) {
	g := Group{
		ID:          uuid.NewString(),
		Slug:        input.Slug,
		Title:       input.Title,
		Description: input.Description,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO groups (id, slug, title, description)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, g.ID, g.Slug, g.Title, g.Description)
	if err := row.Scan(&g.CreatedAt); err != nil {
		return Group{}, err
	}
	return g, nil
}

func (s *Service) List(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, slug, title, description, created_at
		FROM groups
		ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Slug, &g.Title, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *Service) BySlug(ctx context.Context, slug string) (Group, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, slug, title, description, created_at
		FROM groups WHERE slug=$1
	`, slug)
	var g Group
	if err := row.Scan(&g.ID, &g.Slug, &g.Title, &g.Description, &g.CreatedAt); err != nil {
		return Group{}, err
	}
	return g, nil
}
