package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/server/mocks"
)

func TestServer_PromisesHandler(t *testing.T) {
	promised := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)
	store := &mocks.PromiseStoreMock{
		ListPromisesFunc: func(ctx context.Context, status domain.PromiseStatus) ([]domain.Promise, error) {
			return []domain.Promise{{ID: 1, Text: "No tax rises for working people", Status: domain.PromiseBroken,
				PromisedAt: &promised, Comment: "define working", CreatedAt: testTime, UpdatedAt: testTime}}, nil
		},
		StatsFunc: func(ctx context.Context) (domain.PromiseStats, error) {
			return domain.PromiseStats{Total: 4, Broken: 2, UTurn: 1, Kept: 1}, nil
		},
	}
	s := testServer(t, Params{Promises: store})

	w := do(t, s, http.MethodGet, "/promises?status=broken", http.NoBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"promises": [{"id":1,"promise_text":"No tax rises for working people","status":"broken",
			"date_promised":"2024-06-13T00:00:00Z","mocking_comment":"define working",
			"created_at":"2024-09-01T12:00:00Z","updated_at":"2024-09-01T12:00:00Z"}],
		"total":4,"broken_count":2,"uturn_count":1,"pending_count":0,"kept_count":1}`, w.Body.String())
	require.Len(t, store.ListPromisesCalls(), 1)
	assert.Equal(t, domain.PromiseBroken, store.ListPromisesCalls()[0].Status)

	w = do(t, s, http.MethodGet, "/promises", http.NoBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PromiseStatus(""), store.ListPromisesCalls()[1].Status)
}

func TestServer_PromisesHandler_Errors(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		store := &mocks.PromiseStoreMock{}
		s := testServer(t, Params{Promises: store})
		w := do(t, s, http.MethodGet, "/promises?status=maybe", http.NoBody)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"unknown status \"maybe\""}`, w.Body.String())
		assert.Empty(t, store.ListPromisesCalls())
	})

	t.Run("store error", func(t *testing.T) {
		store := &mocks.PromiseStoreMock{
			ListPromisesFunc: func(ctx context.Context, status domain.PromiseStatus) ([]domain.Promise, error) {
				return nil, errors.New("no such table")
			},
		}
		s := testServer(t, Params{Promises: store})
		w := do(t, s, http.MethodGet, "/promises", http.NoBody)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"failed to load promises"}`, w.Body.String())
	})

	t.Run("stats error", func(t *testing.T) {
		store := &mocks.PromiseStoreMock{
			ListPromisesFunc: func(ctx context.Context, status domain.PromiseStatus) ([]domain.Promise, error) {
				return []domain.Promise{}, nil
			},
			StatsFunc: func(ctx context.Context) (domain.PromiseStats, error) { return domain.PromiseStats{}, errors.New("locked") },
		}
		s := testServer(t, Params{Promises: store})
		assert.Equal(t, http.StatusInternalServerError, do(t, s, http.MethodGet, "/promises", http.NoBody).Code)
	})

	t.Run("no store", func(t *testing.T) {
		s := testServer(t, Params{})
		w := do(t, s, http.MethodGet, "/promises", http.NoBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"promises":[],"total":0,"broken_count":0,"uturn_count":0,"pending_count":0,"kept_count":0}`,
			w.Body.String())
	})
}
