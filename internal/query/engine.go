// Package query answers free-text questions about pump/compressor data using
// an ordered table of keyword rules.  There is no language model behind it:
// each rule pairs a keyword predicate with a response formatter, evaluated in
// sequence, first match wins.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/chrissnell/pumpmon/internal/types"
)

// ScanWindow is the number of rows inspected by the "first"/"last" critical
// history rules.  Note that dataset order is most-recent-first, so the "first"
// rows are the newest readings.
const ScanWindow = 50

// Fallback is returned when no rule matches the question.
const Fallback = "Please ask about efficiency, pressure, flow, power, or status."

// rule pairs a keyword predicate with a response formatter.
type rule struct {
	match   func(q string) bool
	respond func(focus types.Reading, ds *types.Dataset) string
}

// Engine answers questions against a focus reading and the full dataset.
// Rule order is load-bearing: "why is efficiency critical" must hit the
// "why"/"cause" rule, not the later "critical" rule.
type Engine struct {
	rules []rule
}

// NewEngine creates a query engine with the standard rule table.
func NewEngine() *Engine {
	return &Engine{rules: []rule{
		{
			match: func(q string) bool { return strings.Contains(q, "efficiency") && strings.Contains(q, "what") },
			respond: func(focus types.Reading, _ *types.Dataset) string {
				return fmt.Sprintf("The current efficiency is %.2f.", focus.Efficiency)
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "why") || strings.Contains(q, "cause") },
			respond: func(focus types.Reading, _ *types.Dataset) string {
				if focus.Efficiency < 0.5 {
					return fmt.Sprintf("Efficiency is low likely due to small pressure difference (%.2f-%.2f) or high power usage (%.2f kW).",
						focus.OutletPressure, focus.InletPressure, focus.Power)
				}
				return "Efficiency is within normal range. No cause for concern."
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "first") },
			respond: func(_ types.Reading, ds *types.Dataset) string {
				return criticalHistory(ds.Head(ScanWindow), "first")
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "last") },
			respond: func(_ types.Reading, ds *types.Dataset) string {
				return criticalHistory(ds.Tail(ScanWindow), "last")
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "pressure") },
			respond: func(focus types.Reading, _ *types.Dataset) string {
				return fmt.Sprintf("Inlet pressure: %.2f bar, outlet pressure: %.2f bar.",
					focus.InletPressure, focus.OutletPressure)
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "flow") },
			respond: func(focus types.Reading, _ *types.Dataset) string {
				return fmt.Sprintf("Flow rate is %.2f m3/h.", focus.FlowRate)
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "power") },
			respond: func(focus types.Reading, _ *types.Dataset) string {
				return fmt.Sprintf("Power consumption is %.2f kW.", focus.Power)
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "time") },
			respond: func(focus types.Reading, _ *types.Dataset) string {
				return fmt.Sprintf("The record timestamp is %v.", focus.Timestamp)
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "critical") || strings.Contains(q, "alert") },
			respond: func(focus types.Reading, _ *types.Dataset) string {
				return fmt.Sprintf("System status: %s.", focus.Status)
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "pump") || strings.Contains(q, "compressor") },
			respond: func(focus types.Reading, _ *types.Dataset) string {
				unit := "compressor"
				if focus.Efficiency < 1.0 {
					unit = "pump"
				}
				return fmt.Sprintf("This system operates as a %s.", unit)
			},
		},
		{
			match: func(q string) bool { return strings.Contains(q, "improve") },
			respond: func(_ types.Reading, _ *types.Dataset) string {
				return "Reduce power usage or increase pressure delta to improve efficiency."
			},
		},
	}}
}

// Answer maps a free-text question to a response.  It is total: every input,
// including the empty string, produces a non-empty answer.
func (e *Engine) Answer(question string, focus types.Reading, ds *types.Dataset) string {
	q := strings.ToLower(question)
	for _, r := range e.rules {
		if r.match(q) {
			return r.respond(focus, ds)
		}
	}
	return Fallback
}

// criticalHistory reports the timestamps of CRITICAL readings within a window
// of rows, or a not-found message when the window is clean.
func criticalHistory(window []types.Reading, position string) string {
	var stamps []string
	for _, r := range window {
		if r.Status == types.StatusCritical {
			stamps = append(stamps, r.Timestamp.Format(time.RFC3339))
		}
	}
	if len(stamps) == 0 {
		return "no critical status found."
	}
	return fmt.Sprintf("The pump/compressor status was critical at %s within the %s %d rows.",
		strings.Join(stamps, ", "), position, ScanWindow)
}
