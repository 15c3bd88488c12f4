package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"alumni-network/backend/internal/post/domain"
)

// PostgresPostRepository implements PostRepository on Postgres.
type PostgresPostRepository struct {
	db *sql.DB
}

// NewPostgresPostRepository returns a Postgres-backed post repository.
func NewPostgresPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) Create(ctx context.Context, post *domain.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, title, description, created_at) VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.AuthorID, post.Title, post.Description, post.CreatedAt,
	)
	return err
}

func (r *PostgresPostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.author_id, p.title, p.description, p.created_at,
		        COALESCE(json_agg(l.uid) FILTER (WHERE l.uid IS NOT NULL), '[]')
		 FROM posts p
		 LEFT JOIN post_likes l ON l.post_id = p.id
		 GROUP BY p.id
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		var post domain.Post
		var likedBy []byte
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Description, &post.CreatedAt, &likedBy); err != nil {
			return nil, err
		}
		if err := unmarshalLikes(likedBy, &post); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

func (r *PostgresPostRepository) Like(ctx context.Context, postID, uid string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO post_likes (post_id, uid) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, uid,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrNotFound
	}
	return err
}

func (r *PostgresPostRepository) Unlike(ctx context.Context, postID, uid string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND uid = $2`,
		postID, uid,
	)
	return err
}

func unmarshalLikes(raw []byte, post *domain.Post) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &post.LikedBy)
}
