package workload

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
)

// SizeSampler generates integer request sizes (memory units, devices,
// service time).
type SizeSampler interface {
	// Sample returns a non-negative value.
	Sample(rng *rand.Rand) int
}

func nonNegative(v float64) int {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	if r := int(math.Round(v)); r > 0 {
		return r
	}
	return 0
}

// GaussianSampler produces clamped Gaussian sizes.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int {
	if s.min == s.max {
		return max(s.min, 0)
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	return nonNegative(math.Min(float64(s.max), math.Max(float64(s.min), val)))
}

// UniformSampler draws uniformly from [min, max].
type UniformSampler struct {
	min, max int
}

func (s *UniformSampler) Sample(rng *rand.Rand) int {
	if s.max <= s.min {
		return max(s.min, 0)
	}
	return max(s.min+rng.Intn(s.max-s.min+1), 0)
}

// ExponentialSampler produces exponentially-distributed sizes.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int {
	return nonNegative(rng.ExpFloat64() * s.mean)
}

// ParetoLogNormalSampler is a mixture of Pareto and LogNormal distributions.
// With probability mixWeight, draw from Pareto(alpha, xm); otherwise LogNormal(mu, sigma).
type ParetoLogNormalSampler struct {
	alpha     float64 // Pareto shape
	xm        float64 // Pareto scale (minimum)
	mu        float64 // LogNormal mean of ln(X)
	sigma     float64 // LogNormal std dev of ln(X)
	mixWeight float64 // Probability of drawing from Pareto
}

func (s *ParetoLogNormalSampler) Sample(rng *rand.Rand) int {
	if rng.Float64() < s.mixWeight {
		// Pareto: X = xm / U^(1/alpha)
		u := rng.Float64()
		if u == 0 {
			u = math.SmallestNonzeroFloat64
		}
		return nonNegative(s.xm / math.Pow(u, 1.0/s.alpha))
	}
	// LogNormal: X = exp(mu + sigma * Z)
	return nonNegative(math.Exp(s.mu + s.sigma*rng.NormFloat64()))
}

// EmpiricalPDFSampler samples from an empirical probability distribution
// using inverse CDF via binary search.
type EmpiricalPDFSampler struct {
	values []int     // Sorted size values
	cdf    []float64 // Cumulative probabilities (same length as values)
}

// NewEmpiricalPDFSampler creates a sampler from a PDF map (size → probability).
// Probabilities are normalized if they don't sum to 1.0.
func NewEmpiricalPDFSampler(pdf map[int]float64) *EmpiricalPDFSampler {
	keys := make([]int, 0, len(pdf))
	for k := range pdf {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	totalProb := 0.0
	for _, k := range keys {
		if pdf[k] > 0 {
			totalProb += pdf[k]
		}
	}

	values := make([]int, 0, len(keys))
	cdf := make([]float64, 0, len(keys))
	cumulative := 0.0
	for _, k := range keys {
		p := pdf[k]
		if p <= 0 {
			continue
		}
		cumulative += p / totalProb
		values = append(values, k)
		cdf = append(cdf, cumulative)
	}
	if len(cdf) > 0 {
		cdf[len(cdf)-1] = 1.0
	}
	return &EmpiricalPDFSampler{values: values, cdf: cdf}
}

func (s *EmpiricalPDFSampler) Sample(rng *rand.Rand) int {
	if len(s.values) == 0 {
		return 0
	}
	if len(s.values) == 1 {
		return max(s.values[0], 0)
	}
	idx := sort.SearchFloat64s(s.cdf, rng.Float64())
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	return max(s.values[idx], 0)
}

// ConstantSampler always returns the same fixed value.
type ConstantSampler struct {
	value int
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int {
	return max(s.value, 0)
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewSizeSampler creates a SizeSampler from a DistSpec.
func NewSizeSampler(spec DistSpec) (SizeSampler, error) {
	p := spec.Params
	switch spec.Type {
	case "gaussian":
		if err := requireParam(p, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		return &GaussianSampler{mean: p["mean"], stdDev: p["std_dev"], min: int(p["min"]), max: int(p["max"])}, nil

	case "uniform":
		if err := requireParam(p, "min", "max"); err != nil {
			return nil, err
		}
		return &UniformSampler{min: int(p["min"]), max: int(p["max"])}, nil

	case "exponential":
		if err := requireParam(p, "mean"); err != nil {
			return nil, err
		}
		return &ExponentialSampler{mean: p["mean"]}, nil

	case "pareto_lognormal":
		if err := requireParam(p, "alpha", "xm", "mu", "sigma", "mix_weight"); err != nil {
			return nil, err
		}
		return &ParetoLogNormalSampler{
			alpha:     p["alpha"],
			xm:        p["xm"],
			mu:        p["mu"],
			sigma:     p["sigma"],
			mixWeight: p["mix_weight"],
		}, nil

	case "constant":
		if err := requireParam(p, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int(p["value"])}, nil

	case "empirical":
		// Inline params are the PDF (size → probability)
		pdf := make(map[int]float64, len(p))
		for k, v := range p {
			size, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("empirical PDF key %q is not an integer: %w", k, err)
			}
			pdf[size] = v
		}
		if len(pdf) == 0 {
			return nil, fmt.Errorf("empirical distribution has no valid bins")
		}
		return NewEmpiricalPDFSampler(pdf), nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
