package feed_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the records.RecordFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

const apiURL = "http://hsmis.local/api"

func baseConfig(kinds ...string) feed.SyncConfig {
	return feed.SyncConfig{APIURL: apiURL, Kinds: kinds}
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestRunSync_Success(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, apiURL+"/maktoobs", "clerk", "secret").
		Return(body(`[
			{"id": 1, "title": "Maktoob 1", "date": "2024-03-20"},
			{"id": 2, "title": "Maktoob 2", "date": "2024-03-19T09:00:00Z"},
			{"id": 3, "title": "Draft"}
		]`), nil)
	mockFetcher.On("Fetch", mock.Anything, apiURL+"/weights", "clerk", "secret").
		Return(body(`{"data": [{"id": "W-9", "name": "Truck 9", "created_at": "2024/03/20"}]}`), nil)

	gen := &feed.Generator{
		Clock:   MockClock{CurrentTime: time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)},
		Fetcher: mockFetcher,
	}

	cfg := baseConfig("maktoobs", "weights")
	cfg.User, cfg.Pass = "clerk", "secret"

	icsData, entries, count, err := gen.RunSync(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "two records are dated today")

	require.Len(t, entries, 4)
	// Newest first, ties by title, undated last.
	assert.Equal(t, "Maktoob 1", entries[0].Title)
	assert.Equal(t, "Truck 9", entries[1].Title)
	assert.Equal(t, "Maktoob 2", entries[2].Title)
	assert.Equal(t, "Draft", entries[3].Title)

	assert.Equal(t, feed.Entry{
		UID:       entries[0].UID,
		ID:        "1",
		Kind:      "maktoobs",
		Title:     "Maktoob 1",
		Canonical: "2024-03-20",
		Shamsi:    "1403-01-01",
		Hijri:     "1445-09-10",
		Today:     true,
	}, entries[0])
	assert.Equal(t, "1402-12-29", entries[2].Shamsi)
	assert.False(t, entries[2].Today)
	assert.False(t, entries[3].Dated())
	assert.Len(t, entries[0].UID, 2*config.UIDHashLength)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR")
	assert.Contains(t, icsStr, "CALSCALE:GREGORIAN")
	assert.Contains(t, icsStr, "SUMMARY:Maktoob 1 (1403-01-01)")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240320")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240319")
	assert.Contains(t, icsStr, "CATEGORIES:weights")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"), "undated records produce no event")

	mockFetcher.AssertExpectations(t)
}

func TestRunSync_StableUIDs(t *testing.T) {
	newGen := func() *feed.Generator {
		m := new(MockFetcher)
		m.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(body(`[{"id": 5, "title": "A", "date": "2025-01-01"}]`), nil)
		return &feed.Generator{Clock: MockClock{CurrentTime: time.Now()}, Fetcher: m}
	}

	_, first, _, err := newGen().RunSync(context.Background(), baseConfig("maktoobs"))
	require.NoError(t, err)
	_, second, _, err := newGen().RunSync(context.Background(), baseConfig("maktoobs"))
	require.NoError(t, err)

	assert.Equal(t, first[0].UID, second[0].UID)
}

func TestRunSync_FormatSummary(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(body(`[{"id": 1, "title": "Contract", "date": "2025-03-21"}]`), nil)

	gen := &feed.Generator{
		Clock:   MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		Fetcher: mockFetcher,
		FormatSummary: func(title, shamsi string) string {
			return fmt.Sprintf("%s on %s", title, shamsi)
		},
	}

	icsData, _, count, err := gen.RunSync(context.Background(), baseConfig("purchases"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, string(icsData), "SUMMARY:Contract on 1404-01-01")
}

func TestRunSync_WithReminders(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(body(`[{"id": 1, "title": "Alarm Test", "date": "2025-06-02"}]`), nil)

	gen := &feed.Generator{
		Clock:   MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		Fetcher: mockFetcher,
	}

	cfg := baseConfig("maktoobs")
	cfg.ReminderTrigger = feed.ReminderTrigger(1)

	icsData, _, _, err := gen.RunSync(context.Background(), cfg)
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VALARM")
	assert.Contains(t, icsStr, "TRIGGER:-P1D")
	assert.Contains(t, icsStr, "ACTION:DISPLAY")
}

func TestRunSync_NoEvents_ReturnsStub(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(body(`[{"id": 1, "title": "Undated"}]`), nil)

	gen := &feed.Generator{
		Clock:   MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		Fetcher: mockFetcher,
	}

	icsData, entries, count, err := gen.RunSync(context.Background(), baseConfig("maktoobs"))
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(icsData))
	assert.Len(t, entries, 1)
	assert.Equal(t, 0, count)
}

func TestRunSync_NetworkError(t *testing.T) {
	mockFetcher := new(MockFetcher)
	expectedErr := errors.New("network unreachable")

	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, expectedErr)

	gen := &feed.Generator{
		Clock:   MockClock{CurrentTime: time.Now()},
		Fetcher: mockFetcher,
	}

	icsData, entries, count, err := gen.RunSync(context.Background(), baseConfig("maktoobs"))

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), config.ErrRecordsFetch)
	assert.Nil(t, icsData)
	assert.Nil(t, entries)
	assert.Equal(t, 0, count)
}

func TestRunSync_DecodeError(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(body(`<html>login</html>`), nil)

	gen := &feed.Generator{Clock: MockClock{CurrentTime: time.Now()}, Fetcher: mockFetcher}

	_, _, _, err := gen.RunSync(context.Background(), baseConfig("maktoobs"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrRecordsDecode)
}

func TestRunSync_InvalidConfig(t *testing.T) {
	gen := &feed.Generator{Clock: MockClock{CurrentTime: time.Now()}, Fetcher: new(MockFetcher)}

	tests := []struct {
		name    string
		cfg     feed.SyncConfig
		wantErr string
	}{
		{"Empty URL", feed.SyncConfig{Kinds: []string{"maktoobs"}}, config.ErrAPIURLEmpty},
		{"Relative URL", feed.SyncConfig{APIURL: "hsmis/api", Kinds: []string{"maktoobs"}}, config.ErrSyncConfig},
		{"No kinds", feed.SyncConfig{APIURL: apiURL}, config.ErrSyncConfig},
		{"Blank kind", feed.SyncConfig{APIURL: apiURL, Kinds: []string{""}}, config.ErrSyncConfig},
		{"Bad trigger", feed.SyncConfig{APIURL: apiURL, Kinds: []string{"weights"}, ReminderTrigger: "1D"}, config.ErrSyncConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := gen.RunSync(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunSync_MissingFetcher(t *testing.T) {
	gen := &feed.Generator{Clock: MockClock{CurrentTime: time.Now()}}

	_, _, _, err := gen.RunSync(context.Background(), baseConfig("maktoobs"))
	require.Error(t, err)
	assert.Equal(t, config.ErrFetcherMissing, err.Error())
}

func TestRunSync_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, context.Canceled)

	gen := &feed.Generator{Clock: MockClock{CurrentTime: time.Now()}, Fetcher: mockFetcher}

	_, _, _, err := gen.RunSync(ctx, baseConfig("maktoobs"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReminderTrigger(t *testing.T) {
	assert.Equal(t, "-P1D", feed.ReminderTrigger(1))
	assert.Equal(t, "-P14D", feed.ReminderTrigger(14))
	assert.Equal(t, "", feed.ReminderTrigger(0))
	assert.Equal(t, "", feed.ReminderTrigger(-3))
}
