package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// MeanSpeed reports the average body speed of the latest observation.
type MeanSpeed struct {
	name  string
	speed float64
	peak  float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "avg_speed"}
}

func (m *MeanSpeed) Name() string {
	return m.name
}

func (m *MeanSpeed) Observe(bodies []*dynamo.Body, t float64) {
	v, err := AverageSpeed(bodies)
	if err != nil {
		return
	}
	m.speed = v
	m.peak = math.Max(m.peak, v)
}

func (m *MeanSpeed) Value() float64 {
	return m.speed
}

// Peak is the highest average speed observed since the last Reset.
func (m *MeanSpeed) Peak() float64 {
	return m.peak
}

func (m *MeanSpeed) Reset() {
	m.speed = 0
	m.peak = 0
}
