package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/domain"
)

type ToneRepository struct {
	db *sql.DB
}

func NewToneRepository(db *sql.DB) *ToneRepository {
	return &ToneRepository{db: db}
}

type toneRow struct {
	id, userID, channel, prompt, example string
	createdAt, updatedAt                 time.Time
}

func (r toneRow) toDomain() domain.ToneConfig {
	created, updated := r.createdAt.UTC(), r.updatedAt.UTC()
	return domain.ToneConfig{
		ID:        r.id,
		UserID:    r.userID,
		Channel:   channel.Channel(r.channel),
		Prompt:    r.prompt,
		Example:   r.example,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTone(s scanner) (domain.ToneConfig, error) {
	var row toneRow
	if err := s.Scan(&row.id, &row.userID, &row.channel, &row.prompt, &row.example, &row.createdAt, &row.updatedAt); err != nil {
		return domain.ToneConfig{}, err
	}
	return row.toDomain(), nil
}

// List returns the user's tones, most recently updated first.
func (r *ToneRepository) List(ctx context.Context, userID domain.UserID) ([]domain.ToneConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, channel, prompt, example, created_at, updated_at
		FROM tones
		WHERE user_id = $1
		ORDER BY updated_at DESC, id ASC
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tones := []domain.ToneConfig{}
	for rows.Next() {
		tone, err := scanTone(rows)
		if err != nil {
			return nil, err
		}
		tones = append(tones, tone)
	}
	return tones, rows.Err()
}

func (r *ToneRepository) Get(ctx context.Context, id string) (domain.ToneConfig, error) {
	return scanTone(r.db.QueryRowContext(ctx, `
		SELECT id, user_id, channel, prompt, example, created_at, updated_at
		FROM tones
		WHERE id = $1
	`, id))
}

func (r *ToneRepository) GetByChannel(ctx context.Context, userID domain.UserID, ch channel.Channel) (domain.ToneConfig, error) {
	return scanTone(r.db.QueryRowContext(ctx, `
		SELECT id, user_id, channel, prompt, example, created_at, updated_at
		FROM tones
		WHERE user_id = $1 AND channel = $2
	`, userID.String(), ch.String()))
}

// Upsert stores the tone for (user, channel): the existing row is updated,
// otherwise a new one is inserted.
func (r *ToneRepository) Upsert(ctx context.Context, userID domain.UserID, ch channel.Channel, prompt, example string) (domain.ToneConfig, error) {
	now := time.Now().UTC()
	existing, err := r.GetByChannel(ctx, userID, ch)
	if err == sql.ErrNoRows {
		row := toneRow{
			id:        uuid.NewString(),
			userID:    userID.String(),
			channel:   ch.String(),
			prompt:    prompt,
			example:   example,
			createdAt: now,
			updatedAt: now,
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO tones (id, user_id, channel, prompt, example, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, row.id, row.userID, row.channel, row.prompt, row.example, row.createdAt, row.updatedAt)
		if err != nil {
			return domain.ToneConfig{}, err
		}
		return row.toDomain(), nil
	}
	if err != nil {
		return domain.ToneConfig{}, err
	}

	return r.Update(ctx, existing.ID, prompt, example)
}

// Update rewrites the prompt and example of an existing tone. It returns
// sql.ErrNoRows when id is unknown.
func (r *ToneRepository) Update(ctx context.Context, id, prompt, example string) (domain.ToneConfig, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE tones
		SET prompt = $1, example = $2, updated_at = $3
		WHERE id = $4
	`, prompt, example, now, id)
	if err != nil {
		return domain.ToneConfig{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ToneConfig{}, sql.ErrNoRows
	}
	return r.Get(ctx, id)
}
