package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartscout/internal/pipeline"
	"chartscout/internal/shared/testutil"
	"chartscout/pkg/contracts/domain"
)

type stubRenderService struct {
	lastReq pipeline.RenderRequest
	outcome *domain.RenderOutcome
	err     error
}

func (s *stubRenderService) Render(_ context.Context, req pipeline.RenderRequest) (*domain.RenderOutcome, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func newRenderHandler(svc RenderService) *RenderHandler {
	logger, _ := testutil.NewTestLogger(nil)
	return NewRenderHandler(svc, nil, nil, 5, logger)
}

func postRender(t *testing.T, h *RenderHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Render(rec, req)
	return rec
}

func TestRenderHandlerOK(t *testing.T) {
	svc := &stubRenderService{outcome: &domain.RenderOutcome{
		SurfaceID: "main",
		Kind:      domain.KindBar,
		Status:    domain.RenderOK,
	}}
	h := newRenderHandler(svc)

	rec := postRender(t, h, `{"surface_id":"main","kind":"bar","data":[1,2,3]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out domain.RenderOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, domain.RenderOK, out.Status)

	assert.Equal(t, "main", svc.lastReq.SurfaceID)
	assert.Equal(t, domain.KindBar, svc.lastReq.Kind)
	require.Len(t, svc.lastReq.Plan.Sources, 1)
	assert.Equal(t, "inline:request", svc.lastReq.Plan.Sources[0].Name())
}

func TestRenderHandlerBuildsPlanInOrder(t *testing.T) {
	svc := &stubRenderService{outcome: &domain.RenderOutcome{Status: domain.RenderOK}}
	h := newRenderHandler(svc)

	rec := postRender(t, h, `{
		"surface_id": "main",
		"kind": "candlestick",
		"data": [1],
		"sources": [
			{"type": "store", "filename": "apple.json"},
			{"type": "local", "filename": "sample.csv"}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	names := make([]string, 0, 3)
	for _, s := range svc.lastReq.Plan.Sources {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"inline:request", "examples:apple.json", "local:sample.csv"}, names)
}

func TestRenderHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing surface", `{"kind":"bar","data":[1]}`},
		{"missing kind", `{"surface_id":"main","data":[1]}`},
		{"no data or sources", `{"surface_id":"main","kind":"bar"}`},
		{"bad source type", `{"surface_id":"main","kind":"bar","sources":[{"type":"ftp","filename":"x"}]}`},
		{"not json", `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRenderHandler(&stubRenderService{outcome: &domain.RenderOutcome{}})
			rec := postRender(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRenderHandlerTooManyCandidates(t *testing.T) {
	logger, _ := testutil.NewTestLogger(nil)
	h := NewRenderHandler(&stubRenderService{}, nil, nil, 1, logger)

	rec := postRender(t, h, `{
		"surface_id": "main",
		"kind": "bar",
		"sources": [
			{"type": "local", "filename": "a.json"},
			{"type": "local", "filename": "b.json"}
		]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
