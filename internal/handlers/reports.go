package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-insights/internal/models"
	"github.com/ukydev/fleet-insights/internal/reports"
)

// ReportHandler serves the report catalog over HTTP. It holds the dataset
// loaded at startup; records are never mutated after that.
type ReportHandler struct {
	records []models.VehicleRecord
}

// NewReportHandler creates a report handler over a loaded dataset.
func NewReportHandler(records []models.VehicleRecord) *ReportHandler {
	return &ReportHandler{records: records}
}

type reportInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// List handles GET /api/reports and returns the catalog.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var infos []reportInfo
	for _, rep := range reports.Catalog() {
		infos = append(infos, reportInfo{Name: rep.Name, Title: rep.Title})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

// Run handles GET /api/reports/{name} and returns the report table.
func (h *ReportHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	report, ok := reports.Get(name)
	if !ok {
		http.Error(w, "Unknown report", http.StatusNotFound)
		return
	}

	table := report.Run(h.records)
	log.WithFields(log.Fields{"report": name, "rows": len(table.Rows)}).Info("Report served")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(table)
}

// Health handles GET /health.
func (h *ReportHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":        "ok",
		"vehicle_count": len(h.records),
	})
}
