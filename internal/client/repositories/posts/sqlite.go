// Package posts caches opened posts and their option lists in the local
// SQLite database so a post can be shown before the backend answers.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/dmitrijs2005/bidsync/internal/common"
	"github.com/dmitrijs2005/bidsync/internal/dbx"
)

// Cached is a post as stored locally.
type Cached struct {
	Post            models.Post
	NextPagingToken string
	CachedAt        time.Time
}

type Repository interface {
	SavePost(ctx context.Context, c Cached) error
	GetPost(ctx context.Context, postID string) (*Cached, error)
	ReplaceOptions(ctx context.Context, postID string, opts []models.Option) error
	ListOptions(ctx context.Context, postID string) ([]models.Option, error)
	DeleteOption(ctx context.Context, postID, optionID string) error
	DeletePost(ctx context.Context, postID string) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SavePost(ctx context.Context, c Cached) error {
	p := c.Post
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, kind, title, total_amount, option_count, target_amount,
			starts_at, expires_at, creator_id, creator_username, creator_avatar,
			version, next_paging_token, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			title = excluded.title,
			total_amount = excluded.total_amount,
			option_count = excluded.option_count,
			target_amount = excluded.target_amount,
			starts_at = excluded.starts_at,
			expires_at = excluded.expires_at,
			creator_id = excluded.creator_id,
			creator_username = excluded.creator_username,
			creator_avatar = excluded.creator_avatar,
			version = excluded.version,
			next_paging_token = excluded.next_paging_token,
			cached_at = excluded.cached_at
	`, p.ID, string(p.Kind), p.Title, p.TotalAmount, p.OptionCount, p.TargetAmount,
		unix(p.StartsAt), unix(p.ExpiresAt), p.Creator.ID, p.Creator.Username, p.Creator.AvatarURL,
		p.Version, c.NextPagingToken, c.CachedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save post %s: %w", p.ID, err)
	}
	return nil
}

// GetPost returns common.ErrorNotFound when the post was never cached.
func (r *SQLiteRepository) GetPost(ctx context.Context, postID string) (*Cached, error) {
	var (
		c                   Cached
		kind                string
		startsAt, expiresAt int64
		cachedAt            int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, kind, title, total_amount, option_count, target_amount,
			starts_at, expires_at, creator_id, creator_username, creator_avatar,
			version, next_paging_token, cached_at
		FROM posts WHERE id = ?
	`, postID).Scan(&c.Post.ID, &kind, &c.Post.Title, &c.Post.TotalAmount, &c.Post.OptionCount,
		&c.Post.TargetAmount, &startsAt, &expiresAt, &c.Post.Creator.ID, &c.Post.Creator.Username,
		&c.Post.Creator.AvatarURL, &c.Post.Version, &c.NextPagingToken, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", postID, err)
	}

	c.Post.Kind = models.PostKind(kind)
	c.Post.StartsAt = fromUnix(startsAt)
	c.Post.ExpiresAt = fromUnix(expiresAt)
	c.CachedAt = time.Unix(cachedAt, 0)
	return &c, nil
}

// ReplaceOptions swaps the cached options of postID for opts. Run it inside
// dbx.WithTx to keep the swap atomic.
func (r *SQLiteRepository) ReplaceOptions(ctx context.Context, postID string, opts []models.Option) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM options WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("failed to clear options of %s: %w", postID, err)
	}

	for _, o := range opts {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO options (post_id, id, title, amount, supporter_count, creator_id,
				creator_username, creator_avatar, version, created_at, is_supported_by_me)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, postID, o.ID, o.Title, o.Amount, o.SupporterCount, o.Creator.ID,
			o.Creator.Username, o.Creator.AvatarURL, o.Version, unix(o.CreatedAt), o.IsSupportedByMe)
		if err != nil {
			return fmt.Errorf("failed to insert option %s/%s: %w", postID, o.ID, err)
		}
	}
	return nil
}

// ListOptions returns the cached options in insertion order. The derived
// flags other than IsSupportedByMe are left for the option list to compute.
func (r *SQLiteRepository) ListOptions(ctx context.Context, postID string) ([]models.Option, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, amount, supporter_count, creator_id, creator_username,
			creator_avatar, version, created_at, is_supported_by_me
		FROM options WHERE post_id = ? ORDER BY rowid
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list options of %s: %w", postID, err)
	}
	defer rows.Close()

	var result []models.Option
	for rows.Next() {
		var (
			o         models.Option
			createdAt int64
		)
		if err := rows.Scan(&o.ID, &o.Title, &o.Amount, &o.SupporterCount, &o.Creator.ID,
			&o.Creator.Username, &o.Creator.AvatarURL, &o.Version, &createdAt, &o.IsSupportedByMe); err != nil {
			return nil, fmt.Errorf("failed to scan option row: %w", err)
		}
		o.CreatedAt = fromUnix(createdAt)
		result = append(result, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate option rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) DeleteOption(ctx context.Context, postID, optionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM options WHERE post_id = ? AND id = ?`, postID, optionID)
	if err != nil {
		return fmt.Errorf("failed to delete option %s/%s: %w", postID, optionID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeletePost(ctx context.Context, postID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM options WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("failed to delete options of %s: %w", postID, err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, postID); err != nil {
		return fmt.Errorf("failed to delete post %s: %w", postID, err)
	}
	return nil
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(s int64) time.Time {
	if s == 0 {
		return time.Time{}
	}
	return time.Unix(s, 0)
}
