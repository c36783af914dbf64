package workload

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"cpusim/internal/sched"
)

// Config shapes a randomly generated workload.
type Config struct {
	Size        int     `yaml:"size" json:"size"`                 // 20 (by default)
	BurstMin    int     `yaml:"burst_min" json:"burst_min"`       // 50, inclusive
	BurstMax    int     `yaml:"burst_max" json:"burst_max"`       // 400, exclusive
	Priorities  int     `yaml:"priorities" json:"priorities"`     // priorities are drawn from [0, Priorities)
	MeanArrival float64 `yaml:"mean_arrival" json:"mean_arrival"` // mean of the exponential arrival times
	Seed        uint64  `yaml:"seed" json:"seed"`                 // 0 picks a time-based seed
}

// DefaultConfig matches the reference workload.
func DefaultConfig() Config {
	return Config{
		Size:        20,
		BurstMin:    50,
		BurstMax:    400,
		Priorities:  5,
		MeanArrival: 1000,
	}
}

// Validate rejects configurations Generate cannot sample from.
func (c Config) Validate() error {
	switch {
	case c.Size < 0:
		return fmt.Errorf("%w: size %d", ErrInvalidWorkload, c.Size)
	case c.BurstMin < 1:
		return fmt.Errorf("%w: burst_min must be at least 1", ErrInvalidWorkload)
	case c.BurstMax <= c.BurstMin:
		return fmt.Errorf("%w: burst_max %d must exceed burst_min %d", ErrInvalidWorkload, c.BurstMax, c.BurstMin)
	case c.Priorities < 1:
		return fmt.Errorf("%w: priorities must be at least 1", ErrInvalidWorkload)
	case c.MeanArrival <= 0:
		return fmt.Errorf("%w: mean_arrival must be positive", ErrInvalidWorkload)
	}
	return nil
}

// Generate samples a workload. The first Size/10 processes are present at
// time 0; the rest arrive at exponentially distributed times. The same
// non-zero seed always yields the same template.
func Generate(cfg Config) (Template, error) {
	if err := cfg.Validate(); err != nil {
		return Template{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewSource(seed)
	rng := rand.New(src)
	arrivals := distuv.Exponential{Rate: 1 / cfg.MeanArrival, Src: src}

	ds := make([]sched.Descriptor, cfg.Size)
	for i := range ds {
		ds[i] = sched.Descriptor{
			ID:       sched.ProcessID(i),
			Burst:    cfg.BurstMin + rng.Intn(cfg.BurstMax-cfg.BurstMin),
			Priority: rng.Intn(cfg.Priorities),
		}
		if i >= cfg.Size/10 {
			ds[i].Arrival = int(math.Floor(arrivals.Rand()))
		}
	}
	return NewTemplate(ds)
}
