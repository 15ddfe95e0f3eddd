package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"proposal_gateway/internal/adapter/persistence/repository"
	"proposal_gateway/internal/infrastructure/backend"
	"proposal_gateway/internal/infrastructure/config"
	"proposal_gateway/internal/infrastructure/metrics"
	"proposal_gateway/internal/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// fakeProposalsBackend is an in-memory stand-in for the proposals service.
type fakeProposalsBackend struct {
	mu        sync.Mutex
	proposals map[string]map[string]any
	nextID    int
	calls     int
}

func (f *fakeProposalsBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	writeJSON := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/proposals")
	id = strings.TrimPrefix(id, "/")

	switch {
	case id == "" && r.Method == http.MethodGet:
		list := []map[string]any{}
		for _, p := range f.proposals {
			list = append(list, p)
		}
		writeJSON(http.StatusOK, list)
	case id == "" && r.Method == http.MethodPost:
		var p map[string]any
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &p)
		f.nextID++
		p["id"] = f.nextID
		p["status"] = "pending"
		f.proposals[jsonID(f.nextID)] = p
		writeJSON(http.StatusCreated, p)
	case r.Method == http.MethodGet:
		p, ok := f.proposals[id]
		if !ok {
			writeJSON(http.StatusNotFound, map[string]string{"error": "Proposal not found"})
			return
		}
		writeJSON(http.StatusOK, p)
	case r.Method == http.MethodDelete:
		if _, ok := f.proposals[id]; !ok {
			writeJSON(http.StatusNotFound, map[string]string{"error": "Proposal not found"})
			return
		}
		delete(f.proposals, id)
		writeJSON(http.StatusOK, map[string]string{"message": "deleted"})
	default:
		writeJSON(http.StatusMethodNotAllowed, map[string]string{"error": "unsupported"})
	}
}

func (f *fakeProposalsBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func jsonID(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func newTestRouter(t *testing.T, backendURL string) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	proxyMetrics := metrics.NewProxyMetrics(reg)
	proposals := usecase.NewProposalUseCase(backend.NewProposalsClient(backendURL, 0), nil, proxyMetrics)
	drafts := usecase.NewDraftUseCase(repository.NewDraftMemoryRepository(), proposals, proxyMetrics, 0)

	return NewRouter(Dependencies{
		Proposals:      proposals,
		Drafts:         drafts,
		AllowedOrigins: []string{"http://localhost:3000"},
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}), reg
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_ProposalLifecycle(t *testing.T) {
	fake := &fakeProposalsBackend{proposals: map[string]map[string]any{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	r, _ := newTestRouter(t, srv.URL)

	w := doRequest(r, http.MethodPost, "/api/proposals", `{"clientName":"Jane","clientPhone":"5555555555","clientEmail":"jane@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	first := doRequest(r, http.MethodGet, "/api/proposals/1", "")
	second := doRequest(r, http.MethodGet, "/api/proposals/1", "")
	if first.Code != http.StatusOK || first.Body.String() != second.Body.String() {
		t.Fatalf("repeated get should be stable: %s vs %s", first.Body.String(), second.Body.String())
	}

	w = doRequest(r, http.MethodDelete, "/api/proposals/1", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"success":true}` {
		t.Fatalf("unexpected delete: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/api/proposals/1", "")
	if w.Code != http.StatusNotFound || w.Body.String() != `{"error":"Proposal not found"}` {
		t.Fatalf("expected relayed not found, got %d %s", w.Code, w.Body.String())
	}
}

func TestRouter_CreateMissingFieldsSkipsBackend(t *testing.T) {
	fake := &fakeProposalsBackend{proposals: map[string]map[string]any{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	r, _ := newTestRouter(t, srv.URL)

	w := doRequest(r, http.MethodPost, "/api/proposals", `{"clientName":"","clientPhone":"5555555555","clientEmail":"jane@example.com"}`)
	if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"Missing required fields"}` {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
	if n := fake.callCount(); n != 0 {
		t.Fatalf("backend should not be called, got %d calls", n)
	}
}

func TestRouter_BackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	r, _ := newTestRouter(t, url)

	w := doRequest(r, http.MethodGet, "/api/proposals", "")
	if w.Code != http.StatusInternalServerError || w.Body.String() != `{"error":"Internal server error"}` {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/metrics", "")
	if !strings.Contains(w.Body.String(), `proposal_gateway_backend_calls_total{operation="list",status="error"} 1`) {
		t.Fatalf("backend failure not counted:\n%s", w.Body.String())
	}
}

func TestRouter_DraftSubmission(t *testing.T) {
	fake := &fakeProposalsBackend{proposals: map[string]map[string]any{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	r, _ := newTestRouter(t, srv.URL)

	w := doRequest(r, http.MethodPost, "/api/drafts", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var draft struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &draft)
	base := "/api/drafts/" + draft.ID

	if w := doRequest(r, http.MethodPost, base+"/next", ""); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty client info should block, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPatch, base, `{"clientName":"Jane Doe","clientPhone":"(555) 555-5555","clientEmail":"jane@example.com",
		"propertyType":"industrial","propertySize":5000,"region":"south","budget":90000,"siteAnalysis":"Warehouse floor"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("patch failed: %d %s", w.Code, w.Body.String())
	}
	if w := doRequest(r, http.MethodPost, base+"/services", `{"service":"Flooring Installation"}`); w.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d %s", w.Code, w.Body.String())
	}
	for i := 0; i < 4; i++ {
		if w := doRequest(r, http.MethodPost, base+"/next", ""); w.Code != http.StatusOK {
			t.Fatalf("next %d failed: %d %s", i, w.Code, w.Body.String())
		}
	}

	if w := doRequest(r, http.MethodPost, base+"/submit", ""); w.Code != http.StatusConflict {
		t.Fatalf("submit without review should be 409, got %d", w.Code)
	}
	if n := fake.callCount(); n != 0 {
		t.Fatalf("backend should not be called before review, got %d", n)
	}

	if w := doRequest(r, http.MethodPut, base+"/review", `{"reviewed":true}`); w.Code != http.StatusOK {
		t.Fatalf("review failed: %d", w.Code)
	}
	w = doRequest(r, http.MethodPost, base+"/submit", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}
	var submitted struct {
		ID       string         `json:"id"`
		Proposal map[string]any `json:"proposal"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &submitted)
	if submitted.ID != "1" || submitted.Proposal["clientName"] != "Jane Doe" {
		t.Fatalf("unexpected submission: %s", w.Body.String())
	}

	if w := doRequest(r, http.MethodGet, base, ""); w.Code != http.StatusNotFound {
		t.Fatalf("submitted draft should be gone, got %d", w.Code)
	}
}

func TestRouter_PingValidationAndCORS(t *testing.T) {
	r, _ := newTestRouter(t, "http://127.0.0.1:1")

	if w := doRequest(r, http.MethodGet, "/ping", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/api/validation/services_selection", `{"requestedServices":[]}`); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/proposals", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow origin: %q", got)
	}
}

func TestNewDraftRepository(t *testing.T) {
	ctx := context.Background()

	repo, err := newDraftRepository(ctx, config.Config{DraftStore: config.DraftStoreMemory})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.(*repository.DraftMemoryRepository); !ok {
		t.Fatalf("expected memory repository, got %T", repo)
	}

	mr := miniredis.RunT(t)
	repo, err = newDraftRepository(ctx, config.Config{DraftStore: config.DraftStoreRedis, RedisAddr: mr.Addr()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.(*repository.DraftRedisRepository); !ok {
		t.Fatalf("expected redis repository, got %T", repo)
	}

	if _, err := newDraftRepository(ctx, config.Config{DraftStore: "sqlite"}); err == nil {
		t.Fatalf("expected error for unknown store")
	}
}
