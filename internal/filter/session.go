package filter

import (
	"fmt"

	"github.com/KaramelBytes/likertlens/internal/dataset"
)

// Event is a widget change notification.
type Event interface{ isEvent() }

// ColumnChanged selects a new column; the range resets to its full bounds.
type ColumnChanged struct{ Column string }

// RangeChanged moves the range handles.
type RangeChanged struct{ Lo, Hi float64 }

// ThresholdTextChanged carries the raw minimum-GPA input.
type ThresholdTextChanged struct{ Text string }

func (ColumnChanged) isEvent()        {}
func (RangeChanged) isEvent()         {}
func (ThresholdTextChanged) isEvent() {}

// Update is what a Sink receives after every event.
type Update struct {
	State   State
	Bounds  dataset.ColumnRange
	Step    float64
	View    *View
	Summary Summary
	// Err is set when the event could not be applied; the previous state is kept.
	Err error
	// Warning is set when GPA text was present but ignored.
	Warning string
}

// Sink receives recomputed views, e.g. a chart data source and summary label.
type Sink interface {
	Publish(Update)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Update)

// Publish calls f(u).
func (f SinkFunc) Publish(u Update) { f(u) }

// Session owns the filter state of one front end and recomputes the view on
// every event. Events are handled synchronously, one at a time; a Session is
// not safe for concurrent use.
type Session struct {
	engine *Engine
	sink   Sink
	state  State
	bounds dataset.ColumnRange
	last   Update
}

// NewSession selects preferred (or the first selectable column), sets the
// range to its full bounds and publishes the initial view.
func NewSession(e *Engine, sink Sink, preferred string) (*Session, error) {
	col, err := e.DefaultColumn(preferred)
	if err != nil {
		return nil, err
	}
	s := &Session{engine: e, sink: sink}
	s.resetColumn(col)
	s.publish(s.recompute())
	return s, nil
}

// Dispatch applies ev and publishes the recomputed view.
func (s *Session) Dispatch(ev Event) Update {
	switch ev := ev.(type) {
	case ColumnChanged:
		if err := s.engine.Validate(ev.Column); err != nil {
			return s.publish(s.failed(err))
		}
		s.resetColumn(ev.Column)
	case RangeChanged:
		r := dataset.ColumnRange{Lo: ev.Lo, Hi: ev.Hi}.Normalize()
		s.state.Lo, s.state.Hi = r.Lo, r.Hi
	case ThresholdTextChanged:
		s.state.GPAText = ev.Text
	default:
		return s.publish(s.failed(fmt.Errorf("unsupported event %T", ev)))
	}
	return s.publish(s.recompute())
}

// Restore replaces the whole state, e.g. from a saved preset, and publishes
// the result. The column's bounds are re-estimated; the range is kept as given.
func (s *Session) Restore(st State) Update {
	if err := s.engine.Validate(st.Column); err != nil {
		return s.publish(s.failed(err))
	}
	s.resetColumn(st.Column)
	r := dataset.ColumnRange{Lo: st.Lo, Hi: st.Hi}.Normalize()
	s.state.Lo, s.state.Hi = r.Lo, r.Hi
	s.state.GPAText = st.GPAText
	return s.publish(s.recompute())
}

// State returns the current filter state.
func (s *Session) State() State { return s.state }

// Bounds returns the slider bounds of the current column.
func (s *Session) Bounds() dataset.ColumnRange { return s.bounds }

// Last returns the most recently published update.
func (s *Session) Last() Update { return s.last }

// Engine returns the session's engine.
func (s *Session) Engine() *Engine { return s.engine }

func (s *Session) resetColumn(col string) {
	s.bounds = s.engine.Range(col)
	s.state.Column = col
	s.state.Lo, s.state.Hi = s.bounds.Lo, s.bounds.Hi
}

func (s *Session) recompute() Update {
	view, sum, err := s.engine.Apply(s.state)
	if err != nil {
		return s.failed(err)
	}
	u := Update{State: s.state, Bounds: s.bounds, Step: s.bounds.Step(), View: view, Summary: sum}
	if gpaIgnored(s.state.GPAText) {
		u.Warning = fmt.Sprintf("ignoring GPA input %q: not a number", s.state.GPAText)
	}
	return u
}

func (s *Session) failed(err error) Update {
	return Update{
		State:   s.state,
		Bounds:  s.bounds,
		Step:    s.bounds.Step(),
		View:    &View{data: s.engine.Dataset()},
		Summary: errorSummary(err),
		Err:     err,
	}
}

func (s *Session) publish(u Update) Update {
	s.last = u
	if s.sink != nil {
		s.sink.Publish(u)
	}
	return u
}
