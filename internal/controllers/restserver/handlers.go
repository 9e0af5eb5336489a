package restserver

import (
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/chrissnell/pumpmon/internal/classify"
	"github.com/chrissnell/pumpmon/internal/constants"
	"github.com/chrissnell/pumpmon/internal/log"
	"github.com/chrissnell/pumpmon/internal/types"
	"github.com/chrissnell/pumpmon/pkg/export"
	"github.com/chrissnell/pumpmon/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// AskRequest is the body of a POST /api/ask request
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the answer to a free-text question
type AskResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EfficiencyRequest is the body of a POST /api/efficiency request, carrying
// user-supplied manual sensor values
type EfficiencyRequest struct {
	InletPressure  float64 `json:"inlet_pressure"`
	OutletPressure float64 `json:"outlet_pressure"`
	FlowRate       float64 `json:"flow_rate"`
	Power          float64 `json:"power"`
}

// EfficiencyResponse is the result of a manual efficiency calculation
type EfficiencyResponse struct {
	Efficiency  float64      `json:"efficiency"`
	Formatted   string       `json:"efficiency_formatted"`
	Status      types.Status `json:"status"`
	Explanation string       `json:"explanation"`
}

// SeriesPoint is one point of the efficiency-over-time plot
type SeriesPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Efficiency float64   `json:"efficiency"`
}

// SummaryResponse carries the dataset-level insight counts
type SummaryResponse struct {
	DatasetID      string    `json:"dataset_id"`
	GeneratedAt    time.Time `json:"generated_at"`
	Total          int       `json:"total"`
	LowEfficiency  int       `json:"low_efficiency"`
	HighEfficiency int       `json:"high_efficiency"`
	Critical       int       `json:"critical"`
}

// GetReadings handles requests for the most recent readings.  The limit query
// parameter selects how many rows to return, mirroring the record slider on
// the dashboard.
func (h *Handlers) GetReadings(w http.ResponseWriter, req *http.Request) {
	ds := h.controller.Dataset()

	limit := 10
	if limitStr := req.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.formatter.WriteError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	err := h.formatter.WriteResponse(w, req, ds.Head(limit), nil)
	if err != nil {
		log.Error("error encoding readings:", err)
	}
}

// GetLatest handles requests for the focus reading (the most recent row)
func (h *Handlers) GetLatest(w http.ResponseWriter, req *http.Request) {
	ds := h.controller.Dataset()

	latest, ok := ds.Latest()
	if !ok {
		h.formatter.WriteError(w, http.StatusNotFound, "dataset is empty")
		return
	}

	headers := map[string]string{
		"Cache-Control": "no-cache, no-store, must-revalidate",
	}
	err := h.formatter.WriteResponse(w, req, latest, headers)
	if err != nil {
		log.Error("error encoding latest reading:", err)
	}
}

// GetEfficiencySeries handles requests for the efficiency-over-time plot data.
// Points are returned oldest-first so the chart reads left to right.
func (h *Handlers) GetEfficiencySeries(w http.ResponseWriter, req *http.Request) {
	ds := h.controller.Dataset()

	points := make([]SeriesPoint, len(ds.Readings))
	for i, r := range ds.Readings {
		points[len(ds.Readings)-1-i] = SeriesPoint{
			Timestamp:  r.Timestamp,
			Efficiency: r.Efficiency,
		}
	}

	err := h.formatter.WriteResponse(w, req, points, nil)
	if err != nil {
		log.Error("error encoding efficiency series:", err)
	}
}

// GetSummary handles requests for the dataset summary insights
func (h *Handlers) GetSummary(w http.ResponseWriter, req *http.Request) {
	ds := h.controller.Dataset()

	summary := SummaryResponse{
		DatasetID:      ds.ID.String(),
		GeneratedAt:    ds.GeneratedAt,
		Total:          len(ds.Readings),
		LowEfficiency:  ds.LowEfficiencyCount(),
		HighEfficiency: ds.HighEfficiencyCount(),
		Critical:       ds.CriticalCount(),
	}

	err := h.formatter.WriteResponse(w, req, summary, nil)
	if err != nil {
		log.Error("error encoding summary:", err)
	}
}

// Ask handles free-text questions about the current data.  Questions are
// answered against the most recent reading and the full dataset; every
// question gets some answer, unmatched ones fall through to a guidance
// message.
func (h *Handlers) Ask(w http.ResponseWriter, req *http.Request) {
	var askReq AskRequest
	if err := json.NewDecoder(req.Body).Decode(&askReq); err != nil {
		h.formatter.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ds := h.controller.Dataset()
	focus, ok := ds.Latest()
	if !ok {
		h.formatter.WriteError(w, http.StatusNotFound, "dataset is empty")
		return
	}

	answer := h.controller.engine.Answer(askReq.Question, focus, ds)
	log.Debugw("answered question", "question", askReq.Question, "answer", answer)

	err := h.formatter.WriteResponse(w, req, AskResponse{
		Question: askReq.Question,
		Answer:   answer,
	}, nil)
	if err != nil {
		log.Error("error encoding answer:", err)
	}
}

// CalculateEfficiency handles manual efficiency calculations from
// user-supplied sensor values, without touching the generated dataset
func (h *Handlers) CalculateEfficiency(w http.ResponseWriter, req *http.Request) {
	var effReq EfficiencyRequest
	if err := json.NewDecoder(req.Body).Decode(&effReq); err != nil {
		h.formatter.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reading := types.Reading{
		InletPressure:  effReq.InletPressure,
		OutletPressure: effReq.OutletPressure,
		FlowRate:       effReq.FlowRate,
		Power:          effReq.Power,
	}
	classify.Annotate(&reading)

	err := h.formatter.WriteResponse(w, req, EfficiencyResponse{
		Efficiency:  reading.Efficiency,
		Formatted:   fmt.Sprintf("%.2f", reading.Efficiency),
		Status:      reading.Status,
		Explanation: reading.Explanation,
	}, nil)
	if err != nil {
		log.Error("error encoding efficiency result:", err)
	}
}

// ExportCSV handles requests for the full dataset as a CSV download, header
// row included, columns matching the reading schema plus the derived fields
func (h *Handlers) ExportCSV(w http.ResponseWriter, req *http.Request) {
	ds := h.controller.Dataset()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="efficiency_data.csv"`)

	if err := export.WriteCSV(w, ds); err != nil {
		log.Error("error writing CSV export:", err)
	}
}

// Regenerate handles requests to replace the current dataset with a freshly
// generated one
func (h *Handlers) Regenerate(w http.ResponseWriter, req *http.Request) {
	ds := h.controller.RegenerateDataset()
	log.Infow("regenerated dataset",
		"id", ds.ID,
		"readings", len(ds.Readings),
		"critical", ds.CriticalCount())

	summary := SummaryResponse{
		DatasetID:      ds.ID.String(),
		GeneratedAt:    ds.GeneratedAt,
		Total:          len(ds.Readings),
		LowEfficiency:  ds.LowEfficiencyCount(),
		HighEfficiency: ds.HighEfficiencyCount(),
		Critical:       ds.CriticalCount(),
	}

	err := h.formatter.WriteResponse(w, req, summary, nil)
	if err != nil {
		log.Error("error encoding regenerate response:", err)
	}
}

// ServeIndexTemplate serves the dashboard HTML template
func (h *Handlers) ServeIndexTemplate(w http.ResponseWriter, req *http.Request) {
	pageTitle := h.controller.restConfig.PageTitle
	if pageTitle == "" {
		pageTitle = "Pump/Compressor Efficiency Dashboard"
	}

	view := htmltemplate.Must(htmltemplate.New("index.html.tmpl").ParseFS(h.controller.FS, "index.html.tmpl"))

	templateData := struct {
		PageTitle string
		Version   string
	}{
		PageTitle: pageTitle,
		Version:   constants.Version,
	}

	if err := view.Execute(w, templateData); err != nil {
		log.Error("error executing index template:", err)
	}
}
