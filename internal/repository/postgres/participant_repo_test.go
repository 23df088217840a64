package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/internal/domain"
)

func TestParticipantRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		errIs   error
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_participants \(event_id, user_id\)`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("p-1", createdAt))
			},
		},
		{
			name: "unique violation returns ErrAlreadyJoined",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_participants`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "event_participants_event_user_key"})
			},
			errIs:   domain.ErrAlreadyJoined,
			wantErr: true,
		},
		{
			name: "unknown event returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_participants`).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			errIs:   domain.ErrNotFound,
			wantErr: true,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_participants`).
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
			p := domain.NewEventParticipant("ev-1", "user-1")
			err = NewParticipantRepository(db).Create(ctx, p)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "p-1", p.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestParticipantRepository_ListByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM event_participants\s+WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "created_at"}).
			AddRow("p-1", "ev-1", "user-1", createdAt).
			AddRow("p-2", "ev-2", "user-1", createdAt))

	got, err := NewParticipantRepository(db).ListByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ev-2", got[1].EventID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_ListWithEmailsByEventIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`JOIN users u ON u.id = p.user_id\s+WHERE p.event_id = ANY\(\$1::uuid\[\]\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "user_id", "email"}).
			AddRow("ev-1", "user-1", "a@x.com").
			AddRow("ev-2", "user-1", "a@x.com").
			AddRow("ev-2", "user-2", "b@x.com"))

	got, err := NewParticipantRepository(db).ListWithEmailsByEventIDs(context.Background(), []string{"ev-1", "ev-2"})
	require.NoError(t, err)
	assert.Equal(t, []*domain.EventParticipantWithEmail{
		{EventID: "ev-1", UserID: "user-1", Email: "a@x.com"},
		{EventID: "ev-2", UserID: "user-1", Email: "a@x.com"},
		{EventID: "ev-2", UserID: "user-2", Email: "b@x.com"},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
