package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"event-signup/data/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileRepo(t *testing.T) *FileRepo {
	t.Helper()
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	return repo
}

func testAccount(username string, organizer bool) *models.Account {
	return &models.Account{
		Username:     username,
		PasswordHash: "$2a$12$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
		IsOrganizer:  organizer,
	}
}

func testEvent(name string) *models.Event {
	return &models.Event{
		Name:        name,
		Organizer:   "bob",
		Date:        "2025-01-01",
		Time:        "19:00",
		Location:    "Main Hall",
		Description: "An event",
	}
}

func TestFileRepoAccounts(t *testing.T) {
	repo := newTestFileRepo(t)
	ctx := context.Background()

	// absent account is nil, not an error
	acct, err := repo.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, acct)

	require.NoError(t, repo.PutAccount(ctx, testAccount("alice", false)))

	acct, err = repo.GetAccount(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "alice", acct.Username)

	// upsert overwrites in place
	updated := testAccount("alice", false)
	updated.FirstName = "Alice"
	require.NoError(t, repo.PutAccount(ctx, updated))

	acct, err = repo.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", acct.FirstName)
}

func TestFileRepoPutAccount_RejectsInvalid(t *testing.T) {
	repo := newTestFileRepo(t)

	err := repo.PutAccount(context.Background(), &models.Account{Username: "alice"})
	assert.Error(t, err)

	acct, err := repo.GetAccount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, acct)
}

func TestFileRepoEventKeys(t *testing.T) {
	repo := newTestFileRepo(t)
	ctx := context.Background()

	first := testEvent("First")
	require.NoError(t, repo.PutEvent(ctx, first))
	assert.Equal(t, "1", first.ID)

	second := testEvent("Second")
	require.NoError(t, repo.PutEvent(ctx, second))
	assert.Equal(t, "2", second.ID)

	// deleting never frees a key for reuse
	require.NoError(t, repo.DeleteEvent(ctx, "2"))

	third := testEvent("Third")
	require.NoError(t, repo.PutEvent(ctx, third))
	assert.Equal(t, "3", third.ID)

	// a rejected record neither consumes nor keeps a key
	invalid := testEvent("Invalid")
	invalid.Location = ""
	assert.Error(t, repo.PutEvent(ctx, invalid))
	assert.Empty(t, invalid.ID)

	fourth := testEvent("Fourth")
	require.NoError(t, repo.PutEvent(ctx, fourth))
	assert.Equal(t, "4", fourth.ID)
}

func TestFileRepoDeleteEvent(t *testing.T) {
	repo := newTestFileRepo(t)
	ctx := context.Background()

	event := testEvent("Doomed")
	require.NoError(t, repo.PutEvent(ctx, event))
	require.NoError(t, repo.DeleteEvent(ctx, event.ID))

	got, err := repo.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, repo.DeleteEvent(ctx, event.ID), ErrNotFound)
	assert.ErrorIs(t, repo.DeleteEvent(ctx, "999"), ErrNotFound)
}

func TestFileRepoSearchEvents(t *testing.T) {
	repo := newTestFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.PutEvent(ctx, testEvent("Hack Night")))
	require.NoError(t, repo.PutEvent(ctx, testEvent("Book Club")))
	require.NoError(t, repo.PutEvent(ctx, testEvent("50% Off Gala")))

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "Exact", query: "Hack Night", expected: []string{"Hack Night"}},
		{name: "Substring", query: "hack", expected: []string{"Hack Night"}},
		{name: "Mixed Case", query: "bOoK", expected: []string{"Book Club"}},
		{name: "No Match", query: "opera", expected: []string{}},
		{name: "Literal Percent", query: "50%", expected: []string{"50% Off Gala"}},
		{name: "Literal Underscore", query: "_", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.SearchEvents(ctx, tt.query)
			require.NoError(t, err)

			names := make([]string, 0, len(events))
			for _, e := range events {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFileRepoEventFilters(t *testing.T) {
	repo := newTestFileRepo(t)
	ctx := context.Background()

	past := testEvent("Past Meetup")
	past.Date = "2020-06-15"
	require.NoError(t, repo.PutEvent(ctx, past))

	future := testEvent("Future Meetup")
	future.Date = "2999-06-15"
	require.NoError(t, repo.PutEvent(ctx, future))

	other := testEvent("Other Organizer")
	other.Organizer = "carol"
	other.Date = "2999-07-01"
	require.NoError(t, repo.PutEvent(ctx, other))

	upcoming, err := repo.UpcomingEvents(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Future Meetup", upcoming[0].Name)
	assert.Equal(t, "Other Organizer", upcoming[1].Name)

	byBob, err := repo.EventsByOrganizer(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, byBob, 2)
	assert.Equal(t, "Past Meetup", byBob[0].Name)

	all, err := repo.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFileRepoPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewFileRepo(dir)
	require.NoError(t, err)
	require.NoError(t, repo.PutAccount(ctx, testAccount("alice", false)))
	event := testEvent("Durable")
	require.NoError(t, repo.PutEvent(ctx, event))

	reopened, err := NewFileRepo(dir)
	require.NoError(t, err)

	acct, err := reopened.GetAccount(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, acct)

	got, err := reopened.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Durable", got.Name)

	// the id counter survives too
	next := testEvent("Next")
	require.NoError(t, reopened.PutEvent(ctx, next))
	assert.Equal(t, "2", next.ID)
}

func TestFileRepoMissingFilesAreEmptyCollections(t *testing.T) {
	repo := newTestFileRepo(t)

	events, err := repo.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)

	acct, err := repo.GetAccount(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, acct)
}

func TestFileRepoRejectsMalformedCollections(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	// not JSON at all
	require.NoError(t, os.WriteFile(filepath.Join(dir, eventsFileName), []byte("{nope"), 0o660))
	_, err = repo.ListEvents(context.Background())
	assert.Error(t, err)

	// decodes, but the record is missing required fields
	malformed := `{"next_id": 2, "events": {"1": {"event_name": "No Location"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, eventsFileName), []byte(malformed), 0o660))
	_, err = repo.GetEvent(context.Background(), "1")
	assert.Error(t, err)
}

func TestFileRepoSeededSearch(t *testing.T) {
	repo := newTestFileRepo(t)
	ctx := context.Background()
	faker := gofakeit.New(0)

	for i := 0; i < 50; i++ {
		e := testEvent(faker.LoremIpsumSentence(4))
		require.NoError(t, repo.PutEvent(ctx, e))
	}

	needle := testEvent("Annual Gopher Gathering")
	require.NoError(t, repo.PutEvent(ctx, needle))

	results, err := repo.SearchEvents(ctx, "gopher gath")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, needle.ID, results[0].ID)
}
