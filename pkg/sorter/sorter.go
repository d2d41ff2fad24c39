package sorter

import (
	"cmp"
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cortexproject/heapsort/pkg/heap"
)

// Direction is the order of a sort result.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"

	orderBoth = "both"
)

var errInvalidOrder = errors.New("invalid sort order, supported values are: asc, desc, both")

// Config for the Sorter.
type Config struct {
	Order     string `yaml:"order"`
	PrintHeap bool   `yaml:"print_heap"`
	Verify    bool   `yaml:"verify"`
}

// RegisterFlags adds the flags required to config this to the given FlagSet.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&cfg.Order, "sort.order", orderBoth, "Sort order to produce. Supported values are: asc, desc, both.")
	f.BoolVar(&cfg.PrintHeap, "sort.print-heap", false, "Print the heap built for each sort as a tree, one level per line.")
	f.BoolVar(&cfg.Verify, "sort.verify", false, "Check the heap invariant and the order of each result, failing if either does not hold.")
}

// Validate the config.
func (cfg *Config) Validate() error {
	switch cfg.Order {
	case string(Ascending), string(Descending), orderBoth:
		return nil
	default:
		return errInvalidOrder
	}
}

// Directions returns the sort directions requested by the config.
func (cfg *Config) Directions() []Direction {
	switch cfg.Order {
	case string(Ascending):
		return []Direction{Ascending}
	case string(Descending):
		return []Direction{Descending}
	default:
		return []Direction{Ascending, Descending}
	}
}

// Result is the outcome of sorting in one direction.
type Result[T cmp.Ordered] struct {
	Direction Direction
	Values    []T
}

// Sorter heap sorts copies of its input and tracks metrics about it.
type Sorter[T cmp.Ordered] struct {
	cfg    Config
	logger log.Logger

	sortsTotal           *prometheus.CounterVec
	sortedElementsTotal  *prometheus.CounterVec
	sortDuration         *prometheus.HistogramVec
	verificationFailures prometheus.Counter
}

// New makes a new Sorter.
func New[T cmp.Ordered](cfg Config, logger log.Logger, reg prometheus.Registerer) *Sorter[T] {
	return &Sorter[T]{
		cfg:    cfg,
		logger: logger,

		sortsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "heapsort_sorts_total",
			Help: "Total number of heap sorts run.",
		}, []string{"direction"}),
		sortedElementsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "heapsort_sorted_elements_total",
			Help: "Total number of elements heap sorted.",
		}, []string{"direction"}),
		sortDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heapsort_sort_duration_seconds",
			Help:    "Time taken to heap sort a sequence.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
		}, []string{"direction"}),
		verificationFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "heapsort_verification_failures_total",
			Help: "Total number of built heaps or sorted results found out of order.",
		}),
	}
}

// Run sorts a copy of input for every configured direction. The input is
// never modified. When enabled, the heap built for each direction is written
// to w before sorting.
func (s *Sorter[T]) Run(input []T, w io.Writer) ([]Result[T], error) {
	directions := s.cfg.Directions()
	results := make([]Result[T], 0, len(directions))

	for _, d := range directions {
		values, err := s.sort(input, d, w)
		if err != nil {
			return nil, err
		}
		results = append(results, Result[T]{Direction: d, Values: values})
	}

	return results, nil
}

func (s *Sorter[T]) sort(input []T, d Direction, w io.Writer) ([]T, error) {
	values := slices.Clone(input)
	ascending := d == Ascending

	if s.cfg.PrintHeap || s.cfg.Verify {
		heap.MakeHeap(values, ascending)

		if s.cfg.Verify && !heap.IsHeap(values, ascending) {
			s.verificationFailures.Inc()
			return nil, errors.Errorf("%s heap built for %s sort violates the heap invariant", heapKind(ascending), d)
		}

		if s.cfg.PrintHeap {
			if _, err := fmt.Fprintf(w, "%s-heap:\n", heapKind(ascending)); err != nil {
				return nil, errors.Wrap(err, "failed to print heap")
			}
			if err := heap.WriteTree(w, values); err != nil {
				return nil, errors.Wrap(err, "failed to print heap")
			}
		}
	}

	start := time.Now()
	heap.Sort(values, ascending)
	elapsed := time.Since(start)

	s.sortsTotal.WithLabelValues(string(d)).Inc()
	s.sortedElementsTotal.WithLabelValues(string(d)).Add(float64(len(values)))
	s.sortDuration.WithLabelValues(string(d)).Observe(elapsed.Seconds())

	level.Debug(s.logger).Log("msg", "heap sorted values", "direction", d, "elements", len(values), "duration", elapsed)

	if s.cfg.Verify && !heap.IsSorted(values, ascending) {
		s.verificationFailures.Inc()
		return nil, errors.Errorf("%s sort produced an out of order result", d)
	}

	return values, nil
}

func heapKind(maxHeap bool) string {
	if maxHeap {
		return "max"
	}
	return "min"
}
