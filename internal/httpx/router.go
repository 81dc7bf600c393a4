package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guavas/leadgen-go/internal/alerts"
	"github.com/guavas/leadgen-go/internal/config"
	"github.com/guavas/leadgen-go/internal/loader"
	"github.com/guavas/leadgen-go/internal/metrics"
	"github.com/guavas/leadgen-go/internal/models"
	"github.com/guavas/leadgen-go/internal/session"
	"github.com/guavas/leadgen-go/internal/utils"
)

func NewRouter(log *slog.Logger, cfg config.Config, sess *session.Session) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	calc := metrics.NewCalculator()
	forecaster := metrics.NewForecaster(nil)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/upload", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadMB<<20)
		if err := r.ParseMultipartForm(cfg.MaxUploadMB << 20); err != nil {
			http.Error(w, "file too large or malformed form", 400)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file field required", 400)
			return
		}
		defer file.Close()

		tables, err := loader.ReadWorkbook(file)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		id := sess.SetData(loader.Extract(tables))
		utils.UploadsTotal.Inc()
		log.Info("workbook loaded", slog.String("upload_id", id), slog.Int("tabs", len(tables)))
		writeJSON(w, map[string]any{
			"upload_id":  id,
			"validation": sess.Snapshot().Validation,
		})
	})

	mux.Post("/demo", func(w http.ResponseWriter, r *http.Request) {
		id := sess.SetData(loader.DemoDataset())
		log.Info("demo data loaded", slog.String("upload_id", id))
		writeJSON(w, map[string]any{"upload_id": id, "demo": true})
	})

	mux.Get("/kpis", func(w http.ResponseWriter, r *http.Request) {
		snap := sess.Snapshot()
		kpis := snap.KPIs
		if !snap.Loaded {
			kpis = metrics.DefaultKPIs()
		}
		bm := sess.Benchmarks()
		writeJSON(w, map[string]any{
			"loaded": snap.Loaded,
			"kpis":   kpis,
			"goals": map[string]string{
				"lead_goal_progress":    metrics.FormatPercentage(metrics.ConversionRate(bm.MonthlyLeadGoal, kpis[models.KPITotalLeads]), 1),
				"revenue_goal_progress": metrics.FormatPercentage(metrics.ConversionRate(bm.MonthlyRevenueGoal, kpis[models.KPIPipelineValue]), 1),
				"cpl_vs_target":         metrics.TrendIndicator(kpis[models.KPIAvgCPL], bm.TargetCPL, true).Color,
			},
			"formatted": map[string]string{
				"total_leads":     metrics.FormatNumber(kpis[models.KPITotalLeads]),
				"total_meetings":  metrics.FormatNumber(kpis[models.KPITotalMeetings]),
				"total_deals":     metrics.FormatNumber(kpis[models.KPITotalDeals]),
				"pipeline_value":  metrics.FormatCurrency(kpis[models.KPIPipelineValue]),
				"avg_cpl":         metrics.FormatCurrency(kpis[models.KPIAvgCPL]),
				"lead_to_meeting": metrics.FormatPercentage(kpis[models.KPILeadToMeeting], 1),
				"meeting_to_deal": metrics.FormatPercentage(kpis[models.KPIMeetingToDeal], 1),
				"avg_deal_size":   metrics.FormatCurrency(kpis[models.KPIAvgDealSize]),
			},
		})
	})

	mux.Get("/channels", func(w http.ResponseWriter, r *http.Request) {
		snap := sess.Snapshot()
		channels := snap.Channels
		if !snap.Loaded {
			channels = loader.DemoChannels()
		}
		writeJSON(w, calc.ScoreChannels(channels))
	})

	mux.Get("/trends", func(w http.ResponseWriter, r *http.Request) {
		weeks := atoiDef(r.URL.Query().Get("weeks"), cfg.TrendWeeks)
		writeJSON(w, loader.WeeklyTrends(time.Now(), weeks, nil))
	})

	mux.Get("/forecast", func(w http.ResponseWriter, r *http.Request) {
		weeks := atoiDef(r.URL.Query().Get("weeks"), 4)
		history := loader.WeeklyTrends(time.Now(), cfg.TrendWeeks, nil)
		writeJSON(w, forecaster.LeadsByChannel(history, weeks))
	})

	mux.Get("/alerts", func(w http.ResponseWriter, r *http.Request) {
		snap := sess.Snapshot()
		channels := snap.Channels
		if !snap.Loaded {
			channels = loader.DemoChannels()
		}
		out := alerts.Evaluate(channels, snap.Content, snap.Partners, sess.Thresholds(), time.Now())
		utils.AlertsEmitted.Add(float64(len(out)))
		writeJSON(w, out)
	})

	mux.Get("/validation", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sess.Snapshot().Validation)
	})

	mux.Get("/settings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, settingsPayload{Thresholds: sess.Thresholds(), Benchmarks: sess.Benchmarks()})
	})

	mux.Put("/settings", func(w http.ResponseWriter, r *http.Request) {
		var p settingsPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad settings payload", 400)
			return
		}
		if err := p.validate(); err != "" {
			http.Error(w, err, 400)
			return
		}
		sess.SaveSettings(p.Thresholds, p.Benchmarks)
		writeJSON(w, settingsPayload{Thresholds: sess.Thresholds(), Benchmarks: sess.Benchmarks()})
	})

	mux.Post("/settings/reset", func(w http.ResponseWriter, r *http.Request) {
		sess.ResetSettings()
		writeJSON(w, settingsPayload{Thresholds: sess.Thresholds(), Benchmarks: sess.Benchmarks()})
	})

	return mux
}

type settingsPayload struct {
	Thresholds models.ThresholdConfig `json:"thresholds"`
	Benchmarks models.BenchmarkConfig `json:"benchmarks"`
}

// validate keeps out-of-range values from reaching the engines; the engines
// themselves never validate.
func (p settingsPayload) validate() string {
	t, b := p.Thresholds, p.Benchmarks
	switch {
	case t.MaxCPL < 0 || t.MinConversionRate < 0 || t.MinLeadsPerWeek < 0 ||
		t.PartnerInactiveDays < 0 || t.ContentOverdueDays < 0:
		return "thresholds must be non-negative"
	case t.MinConversionRate > 100:
		return "min_conversion_rate must be within 0-100"
	case b.TargetCPL < 0 || b.MonthlyLeadGoal < 0 || b.MonthlyRevenueGoal < 0:
		return "benchmarks must be non-negative"
	case b.TargetLeadToMeeting < 0 || b.TargetLeadToMeeting > 100 ||
		b.TargetMeetingToDeal < 0 || b.TargetMeetingToDeal > 100:
		return "conversion benchmarks must be within 0-100"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return d
	}
	return v
}
