package sim

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

type Config struct {
	BaseDt        float64
	TimeScale     float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		BaseDt:        physics.Day,
		TimeScale:     1,
		ValidateState: true,
	}
}

// Sample is one monitoring row of a headless run.
type Sample struct {
	Time     float64
	Energy   float64
	Accuracy float64
	AvgSpeed float64
}

// BodyRecord is a body's final state and retained trail.
type BodyRecord struct {
	Name    string
	Color   string
	Mass    float64
	Primary bool
	Pos     r2.Vec
	Vel     r2.Vec
	Trail   []r2.Vec
}

type Result struct {
	Samples     []Sample
	Bodies      []BodyRecord
	Metrics     map[string]float64
	StepsTaken  int
	EnergyDrift float64
	Errors      []error
}

// Stats is the live monitoring view of a simulator.
type Stats struct {
	Elapsed      float64
	Steps        int
	Energy       float64
	Accuracy     float64
	AverageSpeed float64
	Bodies       int
	TimeScale    float64
	Paused       bool
}

func recordBodies(bodies []*dynamo.Body) []BodyRecord {
	out := make([]BodyRecord, len(bodies))
	for i, b := range bodies {
		out[i] = BodyRecord{
			Name:    b.Name,
			Color:   b.Color,
			Mass:    b.Mass,
			Primary: b.Primary,
			Pos:     b.Pos,
			Vel:     b.Vel,
			Trail:   b.Trail.Points(),
		}
	}
	return out
}
