// Package classify derives the efficiency metric and assigns the status flag
// and qualitative explanation to pump/compressor readings.
package classify

import "github.com/chrissnell/pumpmon/internal/types"

// Threshold constants for the critical status triggers.  Comparisons are
// strict: a reading sitting exactly on a threshold is not critical.
const (
	CriticalEfficiency    = 0.3
	CriticalInletPressure = 2.2
	CriticalPower         = 60.0
)

// Efficiency derives the efficiency metric from the raw sensor values:
// flow rate times pressure delta divided by power.  A power draw of zero
// yields an efficiency of zero rather than a division error.
func Efficiency(inletPressure, outletPressure, flowRate, power float64) float64 {
	if power == 0 {
		return 0
	}
	return flowRate * (outletPressure - inletPressure) / power
}

// Classify returns the status flag and explanation for a reading.  The status
// has three independent triggers (efficiency, inlet pressure, power) while the
// explanation buckets on efficiency alone, so the two can legitimately
// disagree: an inlet-pressure-driven CRITICAL reading may still carry a
// "moderate efficiency" explanation.
func Classify(r types.Reading) (types.Status, string) {
	status := types.StatusOK
	if r.Efficiency < CriticalEfficiency || r.InletPressure < CriticalInletPressure || r.Power > CriticalPower {
		status = types.StatusCritical
	}
	return status, ExplainEfficiency(r.Efficiency)
}

// ExplainEfficiency buckets an efficiency value into a qualitative message.
func ExplainEfficiency(efficiency float64) string {
	switch {
	case efficiency < 0.3:
		return "CRITICAL: very low efficiency, immediate investigation required"
	case efficiency < 0.5:
		return "low efficiency, possible pressure-delta or power issue"
	case efficiency > 2.0:
		return "high efficiency, system optimal"
	default:
		return "moderate efficiency, acceptable range"
	}
}

// Annotate fills in the derived fields of a reading in place, computing
// efficiency from the raw values and then classifying.
func Annotate(r *types.Reading) {
	r.Efficiency = Efficiency(r.InletPressure, r.OutletPressure, r.FlowRate, r.Power)
	r.Status, r.Explanation = Classify(*r)
}
