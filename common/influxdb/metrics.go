package influxdb

import (
	"time"

	"github.com/bytearena/lineofsight/common/utils"
	"github.com/bytearena/lineofsight/common/visibility2d"
)

// SweepMetrics accumulates sweep statistics between two reports
type SweepMetrics struct {
	sweeps   *Counter
	failures *Counter
	dropped  *Counter
	points   *Counter
	micros   *Counter
}

func NewSweepMetrics() *SweepMetrics {
	return &SweepMetrics{
		sweeps:   NewCounter(),
		failures: NewCounter(),
		dropped:  NewCounter(),
		points:   NewCounter(),
		micros:   NewCounter(),
	}
}

// Observe records the outcome of one sweep
func (m *SweepMetrics) Observe(polygon *visibility2d.Polygon, err error, duration time.Duration) {
	m.sweeps.Add(1)
	m.micros.Add(int(duration / time.Microsecond))

	if err != nil {
		m.failures.Add(1)
		return
	}

	m.dropped.Add(len(polygon.Dropped))
	m.points.Add(len(polygon.Points))
}

// Fields returns the accumulated values and resets them
func (m *SweepMetrics) Fields() map[string]interface{} {
	sweeps := m.sweeps.GetAndReset()
	micros := m.micros.GetAndReset()

	avg := 0
	if sweeps > 0 {
		avg = micros / sweeps
	}

	return map[string]interface{}{
		"sweeps":       sweeps,
		"failures":     m.failures.GetAndReset(),
		"dropped":      m.dropped.GetAndReset(),
		"points":       m.points.GetAndReset(),
		"avg_duration": avg,
	}
}

// Report writes the accumulated values to the client on every tick
func (m *SweepMetrics) Report(c *Client) {
	c.Loop(func() {
		if err := c.WriteAppMetric("sweep", m.Fields()); err != nil {
			utils.Debug("influxdb", err.Error())
		}
	})
}
