package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/internal/domain"
)

var (
	eventCols  = []string{"id", "name", "type", "description", "datetime", "status", "created_by", "created_at"}
	launchTime = time.Date(2026, 12, 1, 18, 0, 0, 0, time.UTC)
	createdAt  = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		errIs   error
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, type, description, datetime, status, created_by\)`).
					WithArgs("Launch", "Meetup", "A launch party", launchTime, "pending", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("ev-1", createdAt))
			},
			wantID: "ev-1",
		},
		{
			name: "unknown creator",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			errIs:   domain.ErrNotFound,
			wantErr: true,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			errIs:   sql.ErrConnDone,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			ev := domain.NewPendingEvent(domain.EventDraft{
				Name:        "Launch",
				Type:        "Meetup",
				Description: "A launch party",
				Datetime:    launchTime,
			}, "user-1")
			err = repo.Create(ctx, ev)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, ev.ID)
			assert.Equal(t, createdAt, ev.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		errIs   error
		wantErr bool
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, type, description, datetime, status, created_by, created_at FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow("ev-1", "Launch", "Meetup", "A launch party", launchTime, "rejected", "user-1", createdAt))
			},
			want: &domain.Event{
				ID: "ev-1", Name: "Launch", Type: "Meetup", Description: "A launch party",
				Datetime: launchTime, Status: domain.StatusRejected, CreatedBy: "user-1", CreatedAt: createdAt,
			},
		},
		{
			name: "no rows",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM events WHERE id = \$1`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			errIs:   domain.ErrNotFound,
			wantErr: true,
		},
		{
			name: "malformed id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM events WHERE id = \$1`).
					WillReturnError(&pq.Error{Code: "22P02"})
			},
			errIs:   domain.ErrNotFound,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			id := "ev-1"
			if tt.wantErr {
				id = "missing"
			}
			got, err := NewEventRepository(db).GetByID(ctx, id)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_ListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM events WHERE status = \$1 ORDER BY datetime ASC`).
		WithArgs("approved").
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow("ev-1", "First", "Meetup", "First of many", launchTime, "approved", "user-1", createdAt).
			AddRow("ev-2", "Second", "Webinar", "Second of many", launchTime.Add(time.Hour), "approved", "user-2", createdAt))

	got, err := NewEventRepository(db).ListByStatus(context.Background(), domain.StatusApproved)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ev-1", got[0].ID)
	assert.Equal(t, "ev-2", got[1].ID)
	assert.Equal(t, domain.StatusApproved, got[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListByStatusEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM events WHERE status = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(eventCols))

	got, err := NewEventRepository(db).ListByStatus(context.Background(), domain.StatusPending)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEventRepository_ListByIDs(t *testing.T) {
	t.Run("batch filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE id = ANY\(\$1::uuid\[\]\) AND status = \$2 ORDER BY datetime ASC`).
			WithArgs(sqlmock.AnyArg(), "approved").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-2", "Second", "Webinar", "Second of many", launchTime, "approved", "user-2", createdAt))

		got, err := NewEventRepository(db).ListByIDs(context.Background(), []string{"ev-1", "ev-2"}, domain.StatusApproved)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ev-2", got[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ids skips the query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		got, err := NewEventRepository(db).ListByIDs(context.Background(), nil, domain.StatusApproved)
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET status = \$1 WHERE id = \$2 AND status = \$3 RETURNING`).
			WithArgs("approved", "ev-1", "pending").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Launch", "Meetup", "A launch party", launchTime, "approved", "user-1", createdAt))

		got, err := NewEventRepository(db).UpdateStatus(context.Background(), "ev-1", domain.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, got.Status)
		assert.Equal(t, "user-1", got.CreatedBy)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET status`).
			WithArgs("rejected", "missing", "pending").
			WillReturnRows(sqlmock.NewRows(eventCols))
		mock.ExpectQuery(`SELECT status FROM events WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		_, err = NewEventRepository(db).UpdateStatus(context.Background(), "missing", domain.StatusRejected)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already reviewed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET status`).
			WithArgs("approved", "ev-1", "pending").
			WillReturnRows(sqlmock.NewRows(eventCols))
		mock.ExpectQuery(`SELECT status FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("rejected"))

		_, err = NewEventRepository(db).UpdateStatus(context.Background(), "ev-1", domain.StatusApproved)
		require.ErrorIs(t, err, domain.ErrAlreadyReviewed)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
