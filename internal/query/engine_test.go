package query

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/pumpmon/internal/types"
)

// testDataset builds a 100-row dataset, most-recent-first, with CRITICAL
// status at the given row indices.
func testDataset(criticalRows ...int) *types.Dataset {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	readings := make([]types.Reading, 100)
	for i := range readings {
		readings[i] = types.Reading{
			Timestamp:      now.Add(-time.Duration(i) * 10 * time.Minute),
			InletPressure:  2.5,
			OutletPressure: 6.0,
			FlowRate:       10,
			Power:          50,
			Efficiency:     0.70,
			Status:         types.StatusOK,
		}
	}
	for _, row := range criticalRows {
		readings[row].Status = types.StatusCritical
	}
	return &types.Dataset{GeneratedAt: now, Readings: readings}
}

func TestAnswerRules(t *testing.T) {
	engine := NewEngine()
	ds := testDataset()
	focus := types.Reading{
		Timestamp:      time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		InletPressure:  2.51,
		OutletPressure: 6.02,
		FlowRate:       9.87,
		Power:          52.34,
		Efficiency:     0.66,
		Status:         types.StatusOK,
	}

	tests := []struct {
		name     string
		question string
		contains []string
	}{
		{
			name:     "what efficiency",
			question: "What is the efficiency of the compressor?",
			contains: []string{"The current efficiency is 0.66."},
		},
		{
			name:     "why with normal efficiency",
			question: "Why is the efficiency low?",
			contains: []string{"within normal range"},
		},
		{
			name:     "pressure",
			question: "What are the inlet and outlet pressures?",
			contains: []string{"2.51", "6.02"},
		},
		{
			name:     "flow",
			question: "What is the flow rate?",
			contains: []string{"9.87"},
		},
		{
			name:     "power",
			question: "What is the power consumption?",
			contains: []string{"52.34"},
		},
		{
			name:     "time",
			question: "What time was this data recorded?",
			contains: []string{"The record timestamp is", "2026"},
		},
		{
			name:     "critical",
			question: "Is the system in a critical state?",
			contains: []string{"System status: OK."},
		},
		{
			name:     "pump classification below 1.0",
			question: "What is the status of the pump?",
			contains: []string{"operates as a pump"},
		},
		{
			name:     "improve",
			question: "How can I improve efficiency?",
			contains: []string{"Reduce power usage or increase pressure delta"},
		},
		{
			name:     "fallback",
			question: "Tell me a joke",
			contains: []string{Fallback},
		},
		{
			name:     "empty string",
			question: "",
			contains: []string{Fallback},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := engine.Answer(tt.question, focus, ds)
			if answer == "" {
				t.Fatalf("Answer(%q) returned an empty string", tt.question)
			}
			for _, want := range tt.contains {
				if !strings.Contains(answer, want) {
					t.Errorf("Answer(%q) = %q, want it to contain %q", tt.question, answer, want)
				}
			}
		})
	}
}

// Rule order is load-bearing: "why is efficiency critical" contains keywords
// for both the why/cause rule and the later critical/alert rule, and must be
// answered by the earlier one.
func TestAnswerRuleOrder(t *testing.T) {
	engine := NewEngine()
	ds := testDataset()
	focus := types.Reading{Efficiency: 0.70, Status: types.StatusCritical}

	answer := engine.Answer("why is efficiency critical", focus, ds)
	if strings.Contains(answer, "System status") {
		t.Fatalf("question matched the critical rule instead of the why rule: %q", answer)
	}
	if !strings.Contains(answer, "within normal range") {
		t.Errorf("expected the why-rule response, got %q", answer)
	}
}

func TestAnswerWhyWithLowEfficiency(t *testing.T) {
	engine := NewEngine()
	ds := testDataset()
	focus := types.Reading{
		InletPressure:  2.40,
		OutletPressure: 3.10,
		Power:          55.50,
		Efficiency:     0.13,
	}

	answer := engine.Answer("Why is the efficiency low?", focus, ds)
	for _, want := range []string{"3.10", "2.40", "55.50 kW"} {
		if !strings.Contains(answer, want) {
			t.Errorf("Answer = %q, want it to contain %q", answer, want)
		}
	}
}

func TestAnswerCompressorClassification(t *testing.T) {
	engine := NewEngine()
	ds := testDataset()
	focus := types.Reading{Efficiency: 1.5}

	answer := engine.Answer("Is this a compressor?", focus, ds)
	if !strings.Contains(answer, "operates as a compressor") {
		t.Errorf("Answer = %q, want compressor classification", answer)
	}
}

func TestAnswerFirstWindow(t *testing.T) {
	engine := NewEngine()
	focus := types.Reading{}

	t.Run("critical inside the window", func(t *testing.T) {
		ds := testDataset(3, 17)
		answer := engine.Answer("Tell me the first rows where status is critical", focus, ds)
		if !strings.Contains(answer, "status was critical at") {
			t.Fatalf("Answer = %q, want a critical timestamp report", answer)
		}
		for _, row := range []int{3, 17} {
			stamp := ds.Readings[row].Timestamp.Format(time.RFC3339)
			if !strings.Contains(answer, stamp) {
				t.Errorf("Answer = %q, want it to contain timestamp %s", answer, stamp)
			}
		}
		if !strings.Contains(answer, fmt.Sprintf("first %d rows", ScanWindow)) {
			t.Errorf("Answer = %q, want mention of the first %d rows", answer, ScanWindow)
		}
	})

	t.Run("critical only outside the window", func(t *testing.T) {
		ds := testDataset(75)
		answer := engine.Answer("any critical in the first rows?", focus, ds)
		if answer != "no critical status found." {
			t.Errorf("Answer = %q, want the not-found message", answer)
		}
	})
}

func TestAnswerLastWindow(t *testing.T) {
	engine := NewEngine()
	focus := types.Reading{}

	t.Run("critical inside the window", func(t *testing.T) {
		ds := testDataset(75)
		answer := engine.Answer("Tell me the last rows where status is critical", focus, ds)
		stamp := ds.Readings[75].Timestamp.Format(time.RFC3339)
		if !strings.Contains(answer, stamp) {
			t.Errorf("Answer = %q, want it to contain timestamp %s", answer, stamp)
		}
	})

	t.Run("critical only outside the window", func(t *testing.T) {
		ds := testDataset(10)
		answer := engine.Answer("any critical in the last rows?", focus, ds)
		if answer != "no critical status found." {
			t.Errorf("Answer = %q, want the not-found message", answer)
		}
	})
}

// A question containing both "first" and "last" hits the first rule in table
// order.
func TestAnswerFirstBeatsLast(t *testing.T) {
	engine := NewEngine()
	ds := testDataset(75)

	answer := engine.Answer("show critical rows first and last", types.Reading{}, ds)
	// Row 75 is outside the first-50 window, so the first-rule answer is the
	// not-found message; the last-rule answer would have found it.
	if answer != "no critical status found." {
		t.Errorf("Answer = %q, want the first-window not-found message", answer)
	}
}
