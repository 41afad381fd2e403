// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scatter

import "github.com/terragrove/mapscatter/vecf"

// EventKind tags the variant of a ScatterEvent, used by Sink.Wants to let a
// sink skip building events it will discard.
type EventKind uint8

const (
	EventRunStarted EventKind = iota
	EventRunFinished
	EventLayerStarted
	EventLayerFinished
	EventPositionEvaluated
	EventPlacementMade
	EventOverlayGenerated
	EventWarning
)

// KindEvaluationLite is a lightweight per-kind evaluation summary attached
// to a PositionEvaluated event.
type KindEvaluationLite struct {
	KindID  KindID
	Allowed bool
	Weight  float32
}

// OverlaySummary describes an overlay mask generated for a layer.
type OverlaySummary struct {
	Name     string
	WidthPx  uint32
	HeightPx uint32
}

// ScatterEvent describes one observable step of a plan or layer run. Exactly
// one of the Kind-tagged fields below is meaningful for a given event,
// selected by Kind.
type ScatterEvent struct {
	Kind EventKind

	// RunStarted
	Config     RunConfig
	LayerCount int

	// RunFinished / LayerFinished
	Result RunResult

	// LayerStarted / LayerFinished / PositionEvaluated / PlacementMade / OverlayGenerated
	LayerIndex int
	LayerID    string

	// LayerStarted
	LayerKinds           []KindID
	LayerHasOverlay      bool
	LayerOverlayWidthPx  uint32
	LayerOverlayHeightPx uint32
	LayerOverlayBrushPx  int32

	// PositionEvaluated
	Position    vecf.Vec2
	Evaluations []KindEvaluationLite
	MaxWeight   float32

	// PlacementMade
	Placement Placement

	// LayerFinished / OverlayGenerated
	Overlay *OverlaySummary

	// Warning
	Context string
	Message string
}

// Sink accepts ScatterEvents produced while executing a Plan or Layer.
// Wants lets the runner skip building an event's payload when the sink will
// discard it; implementations that forward everything can always return
// true.
type Sink interface {
	Send(event ScatterEvent)
	Wants(kind EventKind) bool
}

// NoopSink discards every event.
type NoopSink struct{}

func (NoopSink) Send(ScatterEvent)     {}
func (NoopSink) Wants(EventKind) bool { return false }

// FuncSink forwards every event to a user-supplied function.
type FuncSink struct {
	Func func(ScatterEvent)
}

func NewFuncSink(f func(ScatterEvent)) *FuncSink {
	return &FuncSink{Func: f}
}

func (s *FuncSink) Send(event ScatterEvent) { s.Func(event) }
func (s *FuncSink) Wants(EventKind) bool    { return true }

// VecSink collects every event it receives, in order.
type VecSink struct {
	events []ScatterEvent
}

func NewVecSink() *VecSink {
	return &VecSink{}
}

func NewVecSinkWithCapacity(capacity int) *VecSink {
	return &VecSink{events: make([]ScatterEvent, 0, capacity)}
}

func (s *VecSink) Send(event ScatterEvent) { s.events = append(s.events, event) }
func (s *VecSink) Wants(EventKind) bool    { return true }

func (s *VecSink) Events() []ScatterEvent { return s.events }
func (s *VecSink) Clear()                 { s.events = s.events[:0] }
func (s *VecSink) Len() int               { return len(s.events) }
func (s *VecSink) IsEmpty() bool          { return len(s.events) == 0 }

// MultiSink fans out every event to each contained sink in order.
type MultiSink struct {
	Sinks []Sink
}

func NewMultiSink() *MultiSink {
	return &MultiSink{}
}

func NewMultiSinkWithSinks(sinks []Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

func (m *MultiSink) Push(sink Sink) { m.Sinks = append(m.Sinks, sink) }
func (m *MultiSink) IsEmpty() bool  { return len(m.Sinks) == 0 }
func (m *MultiSink) Len() int       { return len(m.Sinks) }

func (m *MultiSink) Send(event ScatterEvent) {
	for _, s := range m.Sinks {
		s.Send(event)
	}
}

func (m *MultiSink) Wants(kind EventKind) bool {
	for _, s := range m.Sinks {
		if s.Wants(kind) {
			return true
		}
	}
	return false
}
