package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotelres/internal/core"
	"hotelres/internal/infra/record/memory"
	"hotelres/pkg/domain"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestServer(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec, err := core.NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	svc := core.NewServices(memory.New(), core.WithMetricsRecorder(rec))
	srv := httptest.NewServer(New(svc, WithGatherer(reg)))
	t.Cleanup(srv.Close)
	return srv, reg
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode, body)
	}
}

func TestBookingFlowOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/customers", `{"customer_id":"C001","name":"Ana","email":"ana@example.com"}`)
	expectStatus(t, resp, body, http.StatusCreated)
	resp, body = do(t, srv, http.MethodPost, "/hotels", `{"hotel_id":"H001","name":"Sea View","location":"Cadiz","rooms":1}`)
	expectStatus(t, resp, body, http.StatusCreated)
	var hotel domain.Hotel
	if err := json.Unmarshal(body, &hotel); err != nil || hotel.RoomsAvailable != 1 {
		t.Fatalf("unexpected hotel %s err=%v", body, err)
	}

	resp, body = do(t, srv, http.MethodPost, "/reservations", `{"reservation_id":"R001","customer_id":"C001","hotel_id":"H001"}`)
	expectStatus(t, resp, body, http.StatusCreated)
	resp, body = do(t, srv, http.MethodPost, "/reservations", `{"reservation_id":"R002","customer_id":"C001","hotel_id":"H001"}`)
	expectStatus(t, resp, body, http.StatusConflict)
	resp, body = do(t, srv, http.MethodPost, "/reservations", `{"reservation_id":"R003","customer_id":"nobody","hotel_id":"H001"}`)
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = do(t, srv, http.MethodGet, "/hotels/H001", "")
	expectStatus(t, resp, body, http.StatusOK)
	if err := json.Unmarshal(body, &hotel); err != nil || hotel.RoomsAvailable != 0 {
		t.Fatalf("expected fully booked hotel, got %s", body)
	}

	resp, body = do(t, srv, http.MethodDelete, "/reservations/R001", "")
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = do(t, srv, http.MethodDelete, "/reservations/R001", "")
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = do(t, srv, http.MethodGet, "/reservations", "")
	expectStatus(t, resp, body, http.StatusOK)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected no reservations, got %s", body)
	}
}

func TestValidationAndUpdateOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := do(t, srv, http.MethodPost, "/customers", `{"customer_id":"C1","name":"Bo","email":"no-at"}`)
	expectStatus(t, resp, body, http.StatusBadRequest)
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || !strings.Contains(eb.Error, "@") {
		t.Fatalf("unexpected error body %s", body)
	}
	resp, body = do(t, srv, http.MethodPost, "/hotels", `{"hotel_id":"H1","name":"Inn","rooms":"many"}`)
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = do(t, srv, http.MethodPost, "/hotels", `{"hotel_id":"H1","name":"Inn","rooms":3}`)
	expectStatus(t, resp, body, http.StatusCreated)
	resp, body = do(t, srv, http.MethodPatch, "/hotels/H1", `{"rooms":5,"location":"Porto"}`)
	expectStatus(t, resp, body, http.StatusOK)
	var hotel domain.Hotel
	if err := json.Unmarshal(body, &hotel); err != nil || hotel.Rooms != 5 || hotel.RoomsAvailable != 5 || hotel.Location != "Porto" {
		t.Fatalf("unexpected hotel %s", body)
	}
	resp, body = do(t, srv, http.MethodPatch, "/hotels/H1", `{"rooms":-1}`)
	expectStatus(t, resp, body, http.StatusBadRequest)
	resp, body = do(t, srv, http.MethodPatch, "/customers/C404", `{"name":"x"}`)
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = do(t, srv, http.MethodDelete, "/hotels/H1", "")
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = do(t, srv, http.MethodDelete, "/hotels/H1", "")
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestReconcileAndOperationalEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := do(t, srv, http.MethodGet, "/healthz", "")
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = do(t, srv, http.MethodPost, "/reconcile", "")
	expectStatus(t, resp, body, http.StatusOK)
	var report struct {
		Hotels int `json:"hotels"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	resp, body = do(t, srv, http.MethodPost, "/reconcile?repair=true", "")
	expectStatus(t, resp, body, http.StatusOK)
	resp, body = do(t, srv, http.MethodPost, "/reconcile?repair=yes", "")
	expectStatus(t, resp, body, http.StatusBadRequest)
	if !strings.Contains(string(body), "repair must be a boolean") {
		t.Fatalf("unexpected error body %s", body)
	}

	resp, body = do(t, srv, http.MethodGet, "/metrics", "")
	expectStatus(t, resp, body, http.StatusOK)
	if !strings.Contains(string(body), `hotelres_operations_total{operation="reconcile.audit",status="success"} 1`) {
		t.Fatalf("expected reconcile metric, got %s", body)
	}
	resp, body = do(t, srv, http.MethodGet, "/nowhere", "")
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domain.Invalid(domain.EntityHotel, "h", "x"):                         http.StatusBadRequest,
		domain.NotFound(domain.EntityHotel, "h"):                             http.StatusNotFound,
		domain.Conflict(domain.EntityHotel, "h", domain.ErrNoRoomsAvailable): http.StatusConflict,
		domain.Storage(domain.EntityHotel, "h", http.ErrHandlerTimeout):      http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := statusFor(err); got != want {
			t.Fatalf("%v: expected %d got %d", err, want, got)
		}
	}
}
