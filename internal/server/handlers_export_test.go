package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/ratingpulse/internal/app"
	"github.com/pscheid92/ratingpulse/internal/domain"
	"github.com/pscheid92/ratingpulse/internal/export"
)

func TestHandleExport_JSONByDefault(t *testing.T) {
	appSvc := &mockAppService{
		exportRatingsFn: func(_ context.Context) ([]domain.Rating, error) {
			return []domain.Rating{*testRating(1, 5), *testRating(2, 2)}, nil
		},
	}
	srv := newTestServer(t, appSvc)

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, callHandler(srv.handleExport, c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")

	decoded, err := export.ReadJSON(rec.Body)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, int64(1), decoded[0].ID)
}

func TestHandleExport_CSV(t *testing.T) {
	appSvc := &mockAppService{
		exportRatingsFn: func(_ context.Context) ([]domain.Rating, error) {
			return []domain.Rating{*testRating(1, 5)}, nil
		},
	}
	srv := newTestServer(t, appSvc)

	req := httptest.NewRequest(http.MethodGet, "/export?format=csv", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, callHandler(srv.handleExport, c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Equal(t, `attachment; filename=ratings.csv`, rec.Header().Get("Content-Disposition"))

	decoded, err := export.ReadCSV(rec.Body)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "conv-1", decoded[0].ConversationID)
	assert.Equal(t, domain.SentimentPositive, decoded[0].Sentiment)
}

func TestHandleExport_UnknownFormat(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodGet, "/export?format=xml", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, callHandler(srv.handleExport, c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImport_Success(t *testing.T) {
	var captured []domain.NewRating
	appSvc := &mockAppService{
		importRatingsFn: func(_ context.Context, ratings []domain.NewRating) ([]domain.Rating, error) {
			captured = ratings
			inserted := make([]domain.Rating, len(ratings))
			for i, r := range ratings {
				inserted[i] = domain.Rating{ID: int64(i + 1), ConversationID: r.ConversationID, Rating: r.Rating}
			}
			return inserted, nil
		},
	}
	srv := newTestServer(t, appSvc)

	body := `[
		{"conversation_id":"conv-1","rating":5,"timestamp":"2025-06-01T10:00:00Z"},
		{"conversation_id":"conv-2","rating":2}
	]`
	req := newJSONRequest(http.MethodPost, "/import", body)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, callHandler(srv.handleImport, c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported_count":2`)
	assert.Contains(t, rec.Body.String(), `"batch_id"`)

	require.Len(t, captured, 2)
	assert.Equal(t, "2025-06-01T10:00:00Z", captured[0].CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	assert.True(t, captured[1].CreatedAt.IsZero())
}

func TestHandleImport_EmptyBatch(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := newJSONRequest(http.MethodPost, "/import", `[]`)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, callHandler(srv.handleImport, c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImport_BadTimestamp(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	body := `[{"conversation_id":"conv-1","rating":5,"timestamp":"June 1st"}]`
	req := newJSONRequest(http.MethodPost, "/import", body)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, callHandler(srv.handleImport, c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImport_ValidationFailureIsBadRequest(t *testing.T) {
	appSvc := &mockAppService{
		importRatingsFn: func(_ context.Context, ratings []domain.NewRating) ([]domain.Rating, error) {
			return nil, &app.ImportError{Index: 1, Err: ratings[1].Validate()}
		},
	}
	srv := newTestServer(t, appSvc)

	body := `[
		{"conversation_id":"conv-1","rating":5},
		{"conversation_id":"","rating":3}
	]`
	req := newJSONRequest(http.MethodPost, "/import", body)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, callHandler(srv.handleImport, c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "rating at index 1")
}

func TestHandleImport_NotAnArray(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := newJSONRequest(http.MethodPost, "/import", `{"conversation_id":"conv-1","rating":5}`)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, callHandler(srv.handleImport, c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
