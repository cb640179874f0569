package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nexuscart/nexuscart/internal/models"
	"github.com/nexuscart/nexuscart/internal/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestSaveLog(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)

	entry := &models.NotificationLog{
		Recipient: "shopper@example.com",
		Type:      models.TypeOrderCreated,
		Channel:   models.ChannelEmail,
		Status:    models.StatusSent,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "notification_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	err := repo.SaveLog(context.Background(), entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLogsFiltersAndPages(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "notification_logs"`)).
		WithArgs(models.StatusSent).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	rows := sqlmock.NewRows([]string{"id", "recipient", "type", "channel", "status", "error", "created_at"}).
		AddRow(int64(1), "shopper@example.com", models.TypeOrderCreated, models.ChannelEmail, models.StatusSent, "", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notification_logs"`)).
		WithArgs(models.StatusSent, 10).
		WillReturnRows(rows)

	logs, total, err := repo.GetLogs(context.Background(), models.NotificationFilter{Status: models.StatusSent})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, logs, 1)
	assert.Equal(t, "shopper@example.com", logs[0].Recipient)
}

func TestGetLogsClampsPageSize(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "notification_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notification_logs"`)).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.GetLogs(context.Background(), models.NotificationFilter{PageSize: 5000})
	assert.NoError(t, err)
}
