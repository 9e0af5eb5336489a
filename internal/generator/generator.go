// Package generator synthesizes pump/compressor sensor datasets.  Readings
// are drawn from fixed normal distributions chosen so that most of the data
// looks healthy with an occasional critical excursion.
package generator

import (
	"math/rand/v2"
	"time"

	"github.com/chrissnell/pumpmon/internal/classify"
	"github.com/chrissnell/pumpmon/internal/types"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultCount is the number of readings per dataset.
	DefaultCount = 100
	// DefaultInterval is the spacing between consecutive readings.
	DefaultInterval = 10 * time.Minute
)

// Generator produces synthetic datasets.  Each call to Generate returns an
// independent, fully-annotated dataset; a Generator is not safe for
// concurrent use because the underlying random source is shared between
// the distributions.
type Generator struct {
	count    int
	interval time.Duration

	inletPressure  distuv.Normal
	outletPressure distuv.Normal
	inletTemp      distuv.Normal
	outletTemp     distuv.Normal
	flowRate       distuv.Normal
	power          distuv.Normal
}

// New creates a generator.  count and interval fall back to the defaults when
// zero; seed of zero selects a time-based seed.
func New(count int, interval time.Duration, seed uint64) *Generator {
	if count <= 0 {
		count = DefaultCount
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewPCG(seed, seed)

	return &Generator{
		count:    count,
		interval: interval,

		inletPressure:  distuv.Normal{Mu: 2.5, Sigma: 0.1, Src: src},
		outletPressure: distuv.Normal{Mu: 6.0, Sigma: 0.2, Src: src},
		inletTemp:      distuv.Normal{Mu: 25, Sigma: 1, Src: src},
		outletTemp:     distuv.Normal{Mu: 80, Sigma: 2, Src: src},
		flowRate:       distuv.Normal{Mu: 10, Sigma: 0.5, Src: src},
		power:          distuv.Normal{Mu: 50, Sigma: 5, Src: src},
	}
}

// Generate synthesizes a dataset of readings, most-recent-first, each
// annotated with the derived efficiency, status, and explanation.
func (g *Generator) Generate() *types.Dataset {
	now := time.Now()
	readings := make([]types.Reading, g.count)

	for i := range readings {
		r := types.Reading{
			Timestamp:      now.Add(-time.Duration(i) * g.interval),
			InletPressure:  g.inletPressure.Rand(),
			OutletPressure: g.outletPressure.Rand(),
			InletTemp:      g.inletTemp.Rand(),
			OutletTemp:     g.outletTemp.Rand(),
			FlowRate:       g.flowRate.Rand(),
			Power:          g.power.Rand(),
		}
		classify.Annotate(&r)
		readings[i] = r
	}

	return &types.Dataset{
		ID:          uuid.New(),
		GeneratedAt: now,
		Readings:    readings,
	}
}
