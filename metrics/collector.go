package metrics

import (
	"sync/atomic"
	"time"
)

// GameMetric summarises one session.
type GameMetric struct {
	StartTime     time.Time     `json:"startTime"`
	Duration      time.Duration `json:"duration"`
	Moves         int           `json:"moves"`
	Captures      int           `json:"captures"`
	Undos         int           `json:"undos"`
	IllegalMoves  int           `json:"illegalMoves"`
	InvalidInputs int           `json:"invalidInputs"`
}

type Collector interface {
	Start()
	AddMove(captures int)
	AddUndo()
	AddIllegal()
	AddInvalidFormat()
	Complete() GameMetric
}

type collector struct {
	startTime     time.Time
	moves         atomic.Int32
	captures      atomic.Int32
	undos         atomic.Int32
	illegalMoves  atomic.Int32
	invalidInputs atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddMove(captures int) {
	m.moves.Add(1)
	m.captures.Add(int32(captures))
}

func (m *collector) AddUndo() {
	m.undos.Add(1)
}

func (m *collector) AddIllegal() {
	m.illegalMoves.Add(1)
}

func (m *collector) AddInvalidFormat() {
	m.invalidInputs.Add(1)
}

func (m *collector) Complete() GameMetric {
	return GameMetric{
		StartTime:     m.startTime,
		Duration:      time.Since(m.startTime),
		Moves:         int(m.moves.Load()),
		Captures:      int(m.captures.Load()),
		Undos:         int(m.undos.Load()),
		IllegalMoves:  int(m.illegalMoves.Load()),
		InvalidInputs: int(m.invalidInputs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()               {}
func (m *dummyCollector) AddMove(captures int) {}
func (m *dummyCollector) AddUndo()             {}
func (m *dummyCollector) AddIllegal()          {}
func (m *dummyCollector) AddInvalidFormat()    {}
func (m *dummyCollector) Complete() GameMetric { return GameMetric{} }
