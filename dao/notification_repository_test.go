package dao

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/model"
)

func TestCreateNotification(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		notification *model.Notification
		setupMock    func(sqlmock.Sqlmock)
		expectError  bool
	}{
		{
			name: "with data",
			notification: &model.Notification{
				ID:        "01HZNOTE1",
				UserID:    "01HZSELLER",
				Type:      "commission_offered",
				Title:     "New commission offer",
				Message:   "You have been offered a 10% commission rate.",
				Data:      map[string]string{"rate": "10"},
				CreatedAt: now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notifications`).
					WithArgs("01HZNOTE1", "01HZSELLER", "commission_offered", "New commission offer",
						"You have been offered a 10% commission rate.", `{"rate":"10"}`, nil, now).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "without data",
			notification: &model.Notification{
				ID: "01HZNOTE2", UserID: "01HZSELLER", Type: "profile_under_review",
				Title: "Profile under review", Message: "An admin is reviewing your profile.", CreatedAt: now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notifications`).
					WithArgs("01HZNOTE2", "01HZSELLER", "profile_under_review", "Profile under review",
						"An admin is reviewing your profile.", nil, nil, now).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name:         "database error",
			notification: &model.Notification{ID: "01HZNOTE3", UserID: "01HZSELLER", CreatedAt: now},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notifications`).WillReturnError(sql.ErrConnDone)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewNotificationRepository(db)
			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.notification)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListNotifications(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "user_id", "type", "title", "message", "data", "read_at", "created_at"}

	tests := []struct {
		name        string
		filter      model.NotificationFilter
		setupMock   func(sqlmock.Sqlmock)
		expectedLen int
	}{
		{
			name:   "first page",
			filter: model.NotificationFilter{Page: 1, PerPage: 10},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications WHERE user_id = \?$`).
					WithArgs("01HZSELLER").
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
				mock.ExpectQuery(`SELECT (.+) FROM notifications WHERE user_id = \? ORDER BY created_at DESC LIMIT \? OFFSET \?`).
					WithArgs("01HZSELLER", 10, 0).
					WillReturnRows(sqlmock.NewRows(cols).
						AddRow("01HZNOTE2", "01HZSELLER", "commission_offered", "Offer", "msg", `{"rate":"10"}`, nil, now).
						AddRow("01HZNOTE1", "01HZSELLER", "profile_under_review", "Review", "msg", nil, now, now))
			},
			expectedLen: 2,
		},
		{
			name:   "unread only with clamped page size",
			filter: model.NotificationFilter{UnreadOnly: true, Page: 3, PerPage: 500},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications WHERE user_id = \? AND read_at IS NULL`).
					WithArgs("01HZSELLER").
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
				mock.ExpectQuery(`SELECT (.+) FROM notifications WHERE user_id = \? AND read_at IS NULL ORDER BY created_at DESC LIMIT \? OFFSET \?`).
					WithArgs("01HZSELLER", 100, 200).
					WillReturnRows(sqlmock.NewRows(cols))
			},
			expectedLen: 0,
		},
		{
			name:   "page beyond the cap",
			filter: model.NotificationFilter{Page: 1 << 62, PerPage: 100},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications WHERE user_id = \?$`).
					WithArgs("01HZSELLER").
					WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(3))
				mock.ExpectQuery(`SELECT (.+) FROM notifications WHERE user_id = \? ORDER BY created_at DESC LIMIT \? OFFSET \?`).
					WithArgs("01HZSELLER", 100, 9999900).
					WillReturnRows(sqlmock.NewRows(cols))
			},
			expectedLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewNotificationRepository(db)
			tt.setupMock(mock)

			notes, _, err := repo.ListByUser(context.Background(), "01HZSELLER", tt.filter)

			require.NoError(t, err)
			assert.Len(t, notes, tt.expectedLen)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListNotificationsDecodesData(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationRepository(db)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM notifications`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "title", "message", "data", "read_at", "created_at"}).
			AddRow("01HZNOTE1", "01HZSELLER", "commission_offered", "Offer", "msg", `{"rate":"12.5","round":"2"}`, now, now))

	notes, total, err := repo.ListByUser(context.Background(), "01HZSELLER", model.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, notes, 1)
	assert.Equal(t, map[string]string{"rate": "12.5", "round": "2"}, notes[0].Data)
	require.NotNil(t, notes[0].ReadAt)
}

func TestMarkAsRead(t *testing.T) {
	tests := []struct {
		name    string
		result  driver.Result
		wantErr error
	}{
		{"marks the notification", sqlmock.NewResult(0, 1), nil},
		{"someone else's notification", sqlmock.NewResult(0, 0), ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewNotificationRepository(db)

			mock.ExpectExec(`UPDATE notifications SET read_at = COALESCE\(read_at, UTC_TIMESTAMP\(3\)\) WHERE id = \? AND user_id = \?`).
				WithArgs("01HZNOTE1", "01HZSELLER").
				WillReturnResult(tt.result)

			err := repo.MarkAsRead(context.Background(), "01HZNOTE1", "01HZSELLER")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
