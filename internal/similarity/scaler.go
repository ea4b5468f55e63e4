package similarity

import (
	"fmt"
	"math"
)

const machineEpsilon = 2.220446049250313e-16

// Scaler standardises features to zero mean and unit variance.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler computes column means and population standard deviations.
// Constant columns keep a scale of 1 so they transform to zero.
func FitScaler(rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, ErrNoSamples
	}
	width := len(rows[0])
	s := &Scaler{Mean: make([]float64, width), Scale: make([]float64, width)}
	for _, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("%w: row has %d columns, want %d", ErrFeatureMismatch, len(r), width)
		}
		for j, x := range r {
			s.Mean[j] += x
		}
	}
	n := float64(len(rows))
	for j := range s.Mean {
		s.Mean[j] /= n
	}
	for _, r := range rows {
		for j, x := range r {
			d := x - s.Mean[j]
			s.Scale[j] += d * d
		}
	}
	for j := range s.Scale {
		sd := math.Sqrt(s.Scale[j] / n)
		if sd < 10*machineEpsilon || math.IsNaN(sd) {
			sd = 1
		}
		s.Scale[j] = sd
	}
	return s, nil
}

// Transform returns a scaled copy of x.
func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("%w: got %d features, scaler expects %d", ErrFeatureMismatch, len(x), len(s.Mean))
	}
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}
