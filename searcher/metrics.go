package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one FindMove call. FullPlayouts counts rollouts
// that reached a decisive result before the cutoff; the remainder were
// settled by scoring.
type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
}

// Collector accumulates search statistics across one FindMove call.
type Collector interface {
	Start(cutoff int)
	AddEpisode()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(cutoff int) {
	m.startTime = time.Now()
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Cutoff:       m.cutoff,
		FullPlayouts: int(m.fullPlayouts.Load()),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for searches nobody measures.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(cutoff int)       {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
