package practice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/runger/shifu/internal/storage"
)

// mockStore implements storage.Store for testing.
type mockStore struct {
	upsertCalls   int
	upsertCreated bool
	upsertErr     error
	lastUserID    string
	lastSyllable  string
	lastCorrect   bool
	lastTs        time.Time
}

func (m *mockStore) UpsertAttempt(ctx context.Context, userID, syllable string, correct bool, ts time.Time) (bool, error) {
	m.upsertCalls++
	m.lastUserID = userID
	m.lastSyllable = syllable
	m.lastCorrect = correct
	m.lastTs = ts
	if m.upsertErr != nil {
		return false, m.upsertErr
	}
	return m.upsertCreated, nil
}

func (m *mockStore) GetAttempt(ctx context.Context, userID, syllable string) (*storage.AttemptRecord, error) {
	return nil, storage.ErrNotFound
}

func (m *mockStore) ListAttempts(ctx context.Context, userID string) ([]storage.AttemptRecord, error) {
	return nil, nil
}

func (m *mockStore) ListAllAttempts(ctx context.Context) ([]storage.AttemptRecord, error) {
	return nil, nil
}

func (m *mockStore) Close() error { return nil }

func TestService_RecordAttempt_Success(t *testing.T) {
	t.Parallel()

	store := &mockStore{upsertCreated: true}
	svc := NewService(store, nil)

	ts := time.UnixMilli(42000)
	ack, err := svc.RecordAttempt(context.Background(), "alice", "ma", true, ts)
	if err != nil {
		t.Fatalf("RecordAttempt() error = %v", err)
	}
	if !ack.Created {
		t.Error("Created = false, want true")
	}
	if store.lastUserID != "alice" || store.lastSyllable != "ma" || !store.lastCorrect {
		t.Errorf("store received %s/%s/%v, want alice/ma/true",
			store.lastUserID, store.lastSyllable, store.lastCorrect)
	}
	if !store.lastTs.Equal(ts) {
		t.Errorf("store received ts %v, want %v", store.lastTs, ts)
	}
}

func TestService_RecordAttempt_InvalidInput(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc := NewService(store, nil)

	tests := []struct {
		name     string
		userID   string
		syllable string
	}{
		{"empty user", "", "ma"},
		{"empty syllable", "alice", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordAttempt(context.Background(), tt.userID, tt.syllable, true, time.Now())
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("RecordAttempt() error = %v, want ErrInvalidInput", err)
			}
		})
	}

	// Invalid input must never reach the store.
	if store.upsertCalls != 0 {
		t.Errorf("store received %d calls, want 0", store.upsertCalls)
	}
}

func TestService_RecordAttempt_ZeroTimestampUsesClock(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	svc := NewService(store, nil)

	before := time.Now()
	if _, err := svc.RecordAttempt(context.Background(), "alice", "ma", false, time.Time{}); err != nil {
		t.Fatalf("RecordAttempt() error = %v", err)
	}
	after := time.Now()

	if store.lastTs.Before(before) || store.lastTs.After(after) {
		t.Errorf("ts = %v, want between %v and %v", store.lastTs, before, after)
	}
}

func TestService_RecordAttempt_StoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("database is locked")
	store := &mockStore{upsertErr: storeErr}
	svc := NewService(store, nil)

	_, err := svc.RecordAttempt(context.Background(), "alice", "ma", true, time.Now())
	if !errors.Is(err, storeErr) {
		t.Errorf("RecordAttempt() error = %v, want wrapped store error", err)
	}
	if store.upsertCalls != 1 {
		t.Errorf("store received %d calls, want 1 (no internal retry)", store.upsertCalls)
	}
}
