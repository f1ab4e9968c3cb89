package monitoring

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Gauge reports the current value of a tracked quantity
type Gauge func() int

// Metrics is a point-in-time view of the monitor
type Metrics struct {
	Goroutines     int            `json:"goroutines"`
	Baseline       int            `json:"baseline"`
	PeakGoroutines int            `json:"peak_goroutines"`
	Gauges         map[string]int `json:"gauges"`
	Peaks          map[string]int `json:"peaks"`
	Samples        int            `json:"samples"`
}

// Monitor samples the goroutine count and registered gauges, such as
// active boards, on a ticker and warns when goroutines pass a threshold.
type Monitor struct {
	mu             sync.RWMutex
	logger         zerolog.Logger
	interval       time.Duration
	alertThreshold int
	alertCooldown  time.Duration
	lastAlert      time.Time

	gauges  map[string]Gauge
	metrics Metrics

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Option configures a Monitor
type Option func(*Monitor)

// WithInterval sets how often samples are taken
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

// WithAlertThreshold sets the goroutine count that triggers a warning
func WithAlertThreshold(n int) Option {
	return func(m *Monitor) { m.alertThreshold = n }
}

// NewMonitor creates a monitor. Call Start to begin sampling.
func NewMonitor(logger zerolog.Logger, opts ...Option) *Monitor {
	baseline := runtime.NumGoroutine()
	m := &Monitor{
		logger:         logger.With().Str("component", "Monitor").Logger(),
		interval:       30 * time.Second,
		alertThreshold: 1000,
		alertCooldown:  5 * time.Minute,
		gauges:         make(map[string]Gauge),
		metrics: Metrics{
			Goroutines:     baseline,
			Baseline:       baseline,
			PeakGoroutines: baseline,
			Gauges:         make(map[string]int),
			Peaks:          make(map[string]int),
		},
		stop: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Track registers a named gauge. Registering a name twice replaces the gauge.
func (m *Monitor) Track(name string, g Gauge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = g
}

// Start begins sampling in a background goroutine
func (m *Monitor) Start() {
	m.wg.Add(1)
	go m.run()
	m.logger.Info().
		Int("baseline", m.metrics.Baseline).
		Dur("interval", m.interval).
		Msg("Started monitoring")
}

// Stop ends sampling and waits for the loop to exit. Safe to call twice.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	m.wg.Wait()
}

func (m *Monitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sample()
		case <-m.stop:
			return
		}
	}
}

// Sample takes one reading of every gauge and the goroutine count
func (m *Monitor) Sample() {
	m.mu.RLock()
	names := make([]string, 0, len(m.gauges))
	for name := range m.gauges {
		names = append(names, name)
	}
	gauges := make([]Gauge, len(names))
	sort.Strings(names)
	for i, name := range names {
		gauges[i] = m.gauges[name]
	}
	m.mu.RUnlock()

	// Gauges may take their own locks, so read them unlocked
	values := make([]int, len(gauges))
	for i, g := range gauges {
		values[i] = g()
	}
	current := runtime.NumGoroutine()

	m.mu.Lock()
	m.metrics.Samples++
	m.metrics.Goroutines = current
	if current > m.metrics.PeakGoroutines {
		m.metrics.PeakGoroutines = current
	}
	for i, name := range names {
		m.metrics.Gauges[name] = values[i]
		if values[i] > m.metrics.Peaks[name] {
			m.metrics.Peaks[name] = values[i]
		}
	}
	shouldAlert := current > m.alertThreshold && time.Since(m.lastAlert) > m.alertCooldown
	if shouldAlert {
		m.lastAlert = time.Now()
	}
	m.mu.Unlock()

	ev := m.logger.Debug().
		Int("goroutines", current).
		Int("baseline", m.metrics.Baseline)
	for i, name := range names {
		ev = ev.Int(name, values[i])
	}
	ev.Msg("Runtime metrics")

	if shouldAlert {
		m.logger.Warn().
			Int("goroutines", current).
			Int("threshold", m.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
}

// Metrics returns a copy of the latest readings
func (m *Monitor) Metrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.metrics
	out.Gauges = copyMap(m.metrics.Gauges)
	out.Peaks = copyMap(m.metrics.Peaks)
	return out
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
