package services

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func banxicoBody(datos ...[2]string) string {
	body := `{"bmx":{"series":[{"datos":[`
	for i, d := range datos {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"fecha":%q,"dato":%q}`, d[0], d[1])
	}
	return body + `]}]}}`
}

func newTestBanxicoClient(server *httptest.Server) *BanxicoClient {
	return &BanxicoClient{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: server.Client(),
		Now:        func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestLatestRate(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path+"?"+r.URL.RawQuery)
		fmt.Fprint(w, banxicoBody(
			[2]string{"07/03/2025", "17.9950"},
			[2]string{"10/03/2025", "18.2035"},
		))
	}))
	defer server.Close()

	client := newTestBanxicoClient(server)
	rate, err := client.LatestRate()
	if err != nil {
		t.Fatalf("LatestRate failed: %v", err)
	}

	if rate.Rate != 18.2035 {
		t.Errorf("rate = %v, expected 18.2035", rate.Rate)
	}
	if rate.Date != "10/03/2025" {
		t.Errorf("date = %q, expected latest datum's date", rate.Date)
	}

	if len(requests) != 1 {
		t.Fatalf("expected a single request, got %d", len(requests))
	}
	expected := "/series/SF43718/datos/2025-03-07/2025-03-10?token=test-token"
	if requests[0] != expected {
		t.Errorf("request = %q, expected %q", requests[0], expected)
	}
}

func TestLatestRateFallsBackToWeekWindow(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		if len(requests) == 1 {
			fmt.Fprint(w, `{"bmx":{"series":[{"datos":[]}]}}`)
			return
		}
		fmt.Fprint(w, banxicoBody([2]string{"05/03/2025", "18.1000"}))
	}))
	defer server.Close()

	client := newTestBanxicoClient(server)
	rate, err := client.LatestRate()
	if err != nil {
		t.Fatalf("LatestRate failed: %v", err)
	}

	if rate.Rate != 18.1 {
		t.Errorf("rate = %v, expected fallback window rate", rate.Rate)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if requests[1] != "/series/SF43718/datos/2025-03-03/2025-03-10" {
		t.Errorf("fallback request = %q, expected 7-day window", requests[1])
	}
}

func TestLatestRateSkipsUnpublishedMarkers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, banxicoBody(
			[2]string{"07/03/2025", "17.9950"},
			[2]string{"08/03/2025", "N/E"},
			[2]string{"09/03/2025", "N/E"},
		))
	}))
	defer server.Close()

	client := newTestBanxicoClient(server)
	rate, err := client.LatestRate()
	if err != nil {
		t.Fatalf("LatestRate failed: %v", err)
	}
	if rate.Rate != 17.995 {
		t.Errorf("rate = %v, expected newest parseable datum", rate.Rate)
	}
}

func TestLatestRateNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bmx":{"series":[]}}`)
	}))
	defer server.Close()

	client := newTestBanxicoClient(server)
	if _, err := client.LatestRate(); !errors.Is(err, ErrNoExchangeData) {
		t.Errorf("expected ErrNoExchangeData, got %v", err)
	}
}

func TestLatestRateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestBanxicoClient(server)
	_, err := client.LatestRate()
	if err == nil || errors.Is(err, ErrNoExchangeData) {
		t.Errorf("expected upstream error, got %v", err)
	}
}
