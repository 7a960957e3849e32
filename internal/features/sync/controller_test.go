package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	result Result
	err    error
	calls  int
}

func (s *stubService) Run(ctx context.Context, start, end string) (Result, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubService) ListRuns(ctx context.Context, limit int64) ([]SyncRun, error) {
	return nil, nil
}

func newTestApp(svc Service, store *StatusStore) *fiber.App {
	app := fiber.New()
	NewSyncApi(NewController(svc, store)).Setup(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}

func TestManualSyncMisorderedRangeRejectedBeforeIO(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc, NewStatusStore())

	resp, payload := postJSON(t, app, "/getdays", fiber.Map{
		"startDate": "2024-02-01",
		"endDate":   "2024-01-01",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, payload["error"], "startDate")
	assert.Zero(t, svc.calls, "the orchestrator must never see an invalid range")
}

func TestManualSyncMissingDatesRejected(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc, NewStatusStore())

	resp, _ := postJSON(t, app, "/getdays", fiber.Map{"startDate": "2024-01-01"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, app, "/getdays", fiber.Map{
		"startDate": "01/01/2024",
		"endDate":   "2024-01-02",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, svc.calls)
}

func TestManualSyncSuccessUpdatesStatus(t *testing.T) {
	svc := &stubService{result: Result{Inserted: 3, Skipped: 2}}
	store := NewStatusStore()
	app := newTestApp(svc, store)

	resp, payload := postJSON(t, app, "/getdays", fiber.Map{
		"startDate": "2024-01-01",
		"endDate":   "2024-01-07",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(3), payload["insertedCount"])
	assert.Equal(t, float64(2), payload["skippedCount"])
	assert.NotEmpty(t, payload["lastUpdated"])

	status := store.Current()
	assert.Equal(t, TriggerManual, status.Type)
	require.NotNil(t, status.Range)
	assert.Equal(t, DateRange{Start: "2024-01-01", End: "2024-01-07"}, *status.Range)
	assert.NotNil(t, status.LastUpdated)
}

func TestManualSyncFailureLeavesStatusUntouched(t *testing.T) {
	svc := &stubService{err: errors.New("sheet unreachable")}
	store := NewStatusStore()
	app := newTestApp(svc, store)

	resp, payload := postJSON(t, app, "/getdays", fiber.Map{
		"startDate": "2024-01-01",
		"endDate":   "2024-01-01",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "sheet unreachable", payload["error"])
	assert.Nil(t, store.Current().LastUpdated)
}

func TestManualSyncInFlightConflict(t *testing.T) {
	svc := &stubService{err: ErrSyncInFlight}
	app := newTestApp(svc, NewStatusStore())

	resp, _ := postJSON(t, app, "/getdays", fiber.Map{
		"startDate": "2024-01-01",
		"endDate":   "2024-01-01",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSyncStatusReflectsLastTrigger(t *testing.T) {
	store := NewStatusStore()
	app := newTestApp(&stubService{}, store)

	// Fresh process: all fields empty.
	req := httptest.NewRequest(http.MethodGet, "/sync-status", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	payload := decodeBody(t, resp)
	assert.Nil(t, payload["lastUpdated"])

	// After a manual run the range is visible; after auto it is absent again.
	_, _ = postJSON(t, app, "/getdays", fiber.Map{"startDate": "2024-01-01", "endDate": "2024-01-02"})

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/sync-status", nil))
	require.NoError(t, err)
	payload = decodeBody(t, resp)
	assert.Equal(t, TriggerManual, payload["type"])
	require.NotNil(t, payload["range"])

	now := store.Current().LastUpdated
	store.Replace(Status{LastUpdated: now, Type: TriggerAuto})

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/sync-status", nil))
	require.NoError(t, err)
	payload = decodeBody(t, resp)
	assert.Equal(t, TriggerAuto, payload["type"])
	assert.Nil(t, payload["range"])
}

func TestDeleteRangeIsAnExplicitStub(t *testing.T) {
	app := newTestApp(&stubService{}, NewStatusStore())

	req := httptest.NewRequest(http.MethodDelete, "/delete-date-range", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	payload := decodeBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(0), payload["deleted"])
	assert.Contains(t, payload["message"], "not implemented")
}
