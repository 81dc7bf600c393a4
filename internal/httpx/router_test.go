package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/guavas/leadgen-go/internal/config"
	"github.com/guavas/leadgen-go/internal/metrics"
	"github.com/guavas/leadgen-go/internal/models"
	"github.com/guavas/leadgen-go/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{Port: "0", MaxUploadMB: 10, TrendWeeks: 12}
	srv := httptest.NewServer(NewRouter(log, cfg, session.New()))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			t.Fatalf("%s: status %d", path, resp.StatusCode)
		}
	}
}

func TestKPIsBeforeUploadServesDefaults(t *testing.T) {
	srv := newTestServer(t)
	var out struct {
		Loaded    bool               `json:"loaded"`
		KPIs      map[string]float64 `json:"kpis"`
		Formatted map[string]string  `json:"formatted"`
	}
	getJSON(t, srv.URL+"/kpis", &out)
	if out.Loaded {
		t.Fatal("expected loaded=false before any upload")
	}
	if out.KPIs[models.KPITotalLeads] != 285 {
		t.Fatalf("expected default KPIs, got %v", out.KPIs)
	}
	if out.Formatted["pipeline_value"] != "£2.8M" {
		t.Fatalf("unexpected formatted pipeline value: %q", out.Formatted["pipeline_value"])
	}
}

func TestDemoThenChannelsAndAlerts(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/demo", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /demo: %v", err)
	}
	resp.Body.Close()

	var channels []metrics.ScoredChannel
	getJSON(t, srv.URL+"/channels", &channels)
	if len(channels) != 6 {
		t.Fatalf("expected 6 demo channels, got %d", len(channels))
	}
	for _, ch := range channels {
		if ch.EfficiencyScore < 0 || ch.EfficiencyScore > 100 {
			t.Fatalf("score out of bounds for %s: %v", ch.Name, ch.EfficiencyScore)
		}
	}

	// Google Ads in the demo data sits at £60 CPL against the £50 default.
	var alerts []models.Alert
	getJSON(t, srv.URL+"/alerts", &alerts)
	if len(alerts) != 1 {
		t.Fatalf("expected one alert from demo data, got %v", alerts)
	}
	if alerts[0].Kind != models.AlertWarning || !strings.Contains(alerts[0].Title, "Google Ads") {
		t.Fatalf("unexpected alert: %+v", alerts[0])
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	payload := settingsPayload{
		Thresholds: models.ThresholdConfig{MaxCPL: 100, MinConversionRate: 10, MinLeadsPerWeek: 20, PartnerInactiveDays: 45, ContentOverdueDays: 3},
		Benchmarks: session.DefaultBenchmarks(),
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/settings", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /settings: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("PUT /settings: status %d", resp.StatusCode)
	}

	var got settingsPayload
	getJSON(t, srv.URL+"/settings", &got)
	if got.Thresholds.MaxCPL != 100 {
		t.Fatalf("settings did not persist: %+v", got.Thresholds)
	}

	// Raising max CPL above the demo Google Ads CPL silences the alert.
	http.Post(srv.URL+"/demo", "application/json", nil)
	var alerts []models.Alert
	getJSON(t, srv.URL+"/alerts", &alerts)
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts after raising threshold, got %v", alerts)
	}

	reset, err := http.Post(srv.URL+"/settings/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /settings/reset: %v", err)
	}
	reset.Body.Close()
	getJSON(t, srv.URL+"/settings", &got)
	if got.Thresholds != session.DefaultThresholds() {
		t.Fatalf("reset did not restore defaults: %+v", got.Thresholds)
	}
}

func TestSettingsRejectsOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	payload := settingsPayload{
		Thresholds: models.ThresholdConfig{MaxCPL: -5},
		Benchmarks: session.DefaultBenchmarks(),
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/settings", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /settings: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for negative threshold, got %d", resp.StatusCode)
	}
}

func TestTrendsAndForecastShapes(t *testing.T) {
	srv := newTestServer(t)

	var trends []models.WeeklyTrendPoint
	getJSON(t, srv.URL+"/trends?weeks=8", &trends)
	if len(trends) != 8 {
		t.Fatalf("expected 8 weeks, got %d", len(trends))
	}

	var forecast map[string][]float64
	getJSON(t, srv.URL+"/forecast?weeks=3", &forecast)
	if len(forecast) == 0 {
		t.Fatal("expected forecast for synthetic channels")
	}
	for ch, points := range forecast {
		if len(points) != 3 {
			t.Fatalf("%s: expected 3 points, got %d", ch, len(points))
		}
	}
}

func TestUploadWorkbookRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "1_Funnel Master Map"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, cell := range []string{"Channel", "Type", "Status", "Priority", "Budget", "Leads", "CPL", "Conversion"} {
		f.SetCellValue("1_Funnel Master Map", string(rune('A'+i))+"1", cell)
	}
	for i, cell := range []any{"Cold Outreach", "Paid", "Active", "Low", 400, 4, 95.0, 5.0} {
		f.SetCellValue("1_Funnel Master Map", string(rune('A'+i))+"2", cell)
	}
	wb, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "funnel.xlsx")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write(wb.Bytes())
	mw.Close()

	resp, err := http.Post(srv.URL+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /upload: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("POST /upload: status %d", resp.StatusCode)
	}
	var uploaded struct {
		UploadID   string                          `json:"upload_id"`
		Validation map[string]models.TabValidation `json:"validation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if uploaded.UploadID == "" {
		t.Fatal("expected an upload id")
	}
	if v := uploaded.Validation["12_KPI Dashboard"]; v.Status != "Missing" {
		t.Fatalf("expected missing KPI tab in validation, got %+v", v)
	}

	var channels []metrics.ScoredChannel
	getJSON(t, srv.URL+"/channels", &channels)
	if len(channels) != 1 || channels[0].Name != "Cold Outreach" {
		t.Fatalf("expected uploaded channel, got %v", channels)
	}

	// The uploaded channel breaches the default £50 CPL ceiling.
	var alerts []models.Alert
	getJSON(t, srv.URL+"/alerts", &alerts)
	if len(alerts) != 1 || !strings.Contains(alerts[0].Title, "Cold Outreach") {
		t.Fatalf("expected high-CPL alert for uploaded channel, got %v", alerts)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/upload", "multipart/form-data", nil)
	if err != nil {
		t.Fatalf("POST /upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 without a file, got %d", resp.StatusCode)
	}
}
