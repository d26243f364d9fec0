package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

func TestRecordOnceFreshInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO engagement_events").
		WithArgs("trk-1", model.EngagementOpened, 7, 3, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &EngagementRepository{DB: db}
	fresh, err := repo.RecordOnce(&model.EngagementEvent{
		TrackingID:  "trk-1",
		EventType:   model.EngagementOpened,
		CandidateID: 7,
		TemplateID:  3,
		OccurredAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOnceDuplicateInsertsNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// ON CONFLICT DO NOTHING reports zero affected rows on redelivery.
	mock.ExpectExec("INSERT INTO engagement_events").
		WithArgs("trk-1", model.EngagementOpened, 7, 3, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &EngagementRepository{DB: db}
	fresh, err := repo.RecordOnce(&model.EngagementEvent{
		TrackingID:  "trk-1",
		EventType:   model.EngagementOpened,
		CandidateID: 7,
		TemplateID:  3,
		OccurredAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.False(t, fresh)
}
