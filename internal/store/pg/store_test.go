package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walink/internal/store"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestPhoneByUserID(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectQuery("SELECT COALESCE\\(phone, ''\\) FROM users").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"phone"}).AddRow("+91 98765 43210"))

	phone, found, err := s.PhoneByUserID(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "+91 98765 43210", phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhoneByUserIDNoRow(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectQuery("FROM users").
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows([]string{"phone"}))

	phone, found, err := s.PhoneByUserID(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, phone)
}

func TestPhoneByUserIDError(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	boom := errors.New("conn reset")
	mock.ExpectQuery("FROM users").WithArgs(int64(1)).WillReturnError(boom)

	_, found, err := s.PhoneByUserID(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.False(t, found)
}

func TestInsertLink(t *testing.T) {
	mock := newMock(t)
	s := New(mock)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO whatsapp_links").
		WithArgs("lnk_1", "order_confirmation", int64(42), "919876543210", "https://wa.me/919876543210?text=hi", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.InsertLink(context.Background(), store.LinkInsert{
		ID:     "lnk_1",
		Kind:   "order_confirmation",
		UserID: 42,
		Phone:  "919876543210",
		Link:   "https://wa.me/919876543210?text=hi",
		Now:    now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertLinkWithoutUser(t *testing.T) {
	mock := newMock(t)
	s := New(mock)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO whatsapp_links").
		WithArgs("lnk_2", "plain", nil, "919876543210", pgxmock.AnyArg(), now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.InsertLink(context.Background(), store.LinkInsert{
		ID: "lnk_2", Kind: "plain", Phone: "919876543210", Link: "x", Now: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLink(t *testing.T) {
	mock := newMock(t)
	s := New(mock)
	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	uid := int64(42)

	mock.ExpectQuery("FROM whatsapp_links").
		WithArgs("lnk_1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "user_id", "phone", "link", "created_at"}).
			AddRow("lnk_1", "order_confirmation", &uid, "919876543210", "https://wa.me/919876543210?text=hi", created))

	rec, found, err := s.GetLink(context.Background(), "lnk_1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "lnk_1", rec.ID)
	require.NotNil(t, rec.UserID)
	assert.Equal(t, int64(42), *rec.UserID)
	assert.Equal(t, created, rec.CreatedAt)
}

func TestGetLinkNotFound(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectQuery("FROM whatsapp_links").
		WithArgs("lnk_missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "user_id", "phone", "link", "created_at"}))

	_, found, err := s.GetLink(context.Background(), "lnk_missing")
	require.NoError(t, err)
	assert.False(t, found)
}
