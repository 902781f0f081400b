package dbmysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gochat/internal/common"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func strPtr(s string) *string { return &s }

func TestNotificationRepository_Create(t *testing.T) {
	tests := []struct {
		name        string
		mockSetup   func(sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "successful create",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `notifications`").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `notifications`").
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			tt.mockSetup(mock)

			repo := NewNotificationRepository(db)
			err := repo.Create(context.Background(), &Notification{
				ID:       "notif-1",
				UserID:   "64b000000000000000000002",
				SenderID: strPtr("64b000000000000000000001"),
				Header:   "Alice",
				Content:  "hi",
				Type:     string(common.ChatNotificationType),
				Status:   string(common.StatusPending),
				RoomID:   strPtr("64b0000000000000000000aa"),
				Metadata: common.NotificationMetadata{"noti_for": "chat_notification"},
			})

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRepository_ByUserID(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "header", "content", "type", "status", "created_at"}).
		AddRow("n2", "u1", "Bob", "second", "chat_notification", "pending", now).
		AddRow("n1", "u1", "Bob", "first", "chat_notification", "read", now.Add(-time.Minute))
	mock.ExpectQuery("SELECT \\* FROM `notifications` WHERE user_id = \\? ORDER BY created_at DESC").
		WillReturnRows(rows)

	repo := NewNotificationRepository(db)
	got, err := repo.ByUserID(context.Background(), "u1", 20, 0)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "n2", got[0].ID)
	assert.Equal(t, "second", got[0].Content)
	assert.Equal(t, "read", got[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	tests := []struct {
		name      string
		affected  int64
		wantCode  common.ErrorCode
		wantError bool
	}{
		{name: "marks own notification", affected: 1},
		{name: "not found or not owner", affected: 0, wantError: true, wantCode: common.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			mock.ExpectBegin()
			mock.ExpectExec("UPDATE `notifications` SET").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			err := NewNotificationRepository(db).MarkAsRead(context.Background(), "n1", "u1")
			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, common.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRepository_UnreadCount(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `notifications` WHERE user_id = \\? AND status != \\?").
		WithArgs("u1", "read").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := NewNotificationRepository(db).UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
