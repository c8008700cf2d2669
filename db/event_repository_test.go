package db

import (
	"context"
	"testing"
	"time"

	"booking/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCRUD(t *testing.T) {
	db := getDb(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	organizer := uuid.New()
	resp, err := repo.Create(ctx, entities.Event{
		Title:     "Summer Festival",
		Venue:     "Main Park",
		StartTime: time.Now().Add(60 * 24 * time.Hour).UTC(),
		CreatedBy: organizer,
	})
	require.NoError(t, err)

	event, err := repo.ByID(ctx, resp.EventID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Festival", event.Title)
	assert.Equal(t, organizer, event.CreatedBy)

	events, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, events)

	event.Venue = "River Stage"
	updated, err := repo.Update(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, "River Stage", updated.Venue)

	require.NoError(t, repo.Delete(ctx, event.EventID))
	_, err = repo.ByID(ctx, event.EventID)
	assert.ErrorIs(t, err, entities.ErrEventNotFound)

	_, err = repo.Update(ctx, entities.Event{EventID: uuid.New(), Title: "x", Venue: "y", StartTime: time.Now()})
	assert.ErrorIs(t, err, entities.ErrEventNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), entities.ErrEventNotFound)
}

func TestEventDeleteBlockedByTickets(t *testing.T) {
	db := getDb(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	ticket := createTestTicket(t, db, 5, "10.00")

	assert.ErrorIs(t, repo.Delete(ctx, ticket.EventID), entities.ErrEventHasTickets)

	_, err := repo.ByID(ctx, ticket.EventID)
	require.NoError(t, err, "rejected delete leaves the event in place")
}

func TestEventLogAppendIsIdempotent(t *testing.T) {
	db := getDb(t)
	repo := NewEventLogRepository(db)
	ctx := context.Background()

	entry := entities.EventLogEntry{
		EventID:     uuid.NewString(),
		PublishedAt: time.Now().UTC(),
		EventName:   "BookingMade_v1",
		Payload:     []byte(`{"booking_id":"test"}`),
	}

	require.NoError(t, repo.Append(ctx, entry))
	require.NoError(t, repo.Append(ctx, entry), "duplicate event ids are swallowed")

	var count int
	err := db.Conn.GetContext(ctx, &count, `SELECT count(*) FROM event_log WHERE event_id = $1`, entry.EventID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
