package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"walink/internal/store"
)

// DB is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type Store struct {
	DB DB
}

func New(db DB) *Store { return &Store{DB: db} }

// PhoneByUserID reads users.phone. A NULL phone comes back as "" with
// found=true; deciding that an empty phone is unusable is the caller's job.
func (s *Store) PhoneByUserID(ctx context.Context, userID int64) (string, bool, error) {
	row := s.DB.QueryRow(ctx, `SELECT COALESCE(phone, '') FROM users WHERE user_id=$1`, userID)
	var phone string
	if err := row.Scan(&phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return phone, true, nil
}

func (s *Store) InsertLink(ctx context.Context, in store.LinkInsert) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO whatsapp_links (id, kind, user_id, phone, link, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, in.ID, in.Kind, nullIfZero(in.UserID), in.Phone, in.Link, in.Now)
	return err
}

func (s *Store) GetLink(ctx context.Context, id string) (store.LinkRecord, bool, error) {
	var rec store.LinkRecord
	row := s.DB.QueryRow(ctx, `
		SELECT id, kind, user_id, phone, link, created_at
		FROM whatsapp_links WHERE id=$1
	`, id)
	err := row.Scan(&rec.ID, &rec.Kind, &rec.UserID, &rec.Phone, &rec.Link, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.LinkRecord{}, false, nil
		}
		return store.LinkRecord{}, false, err
	}
	return rec, true, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.Ping(ctx)
}

func nullIfZero(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
