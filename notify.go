package main

type EventKind string

const (
	EventShapesUpdated    EventKind = "SHAPES_UPDATED"
	EventStateChanged     EventKind = "STATE_CHANGED"
	EventResetInputFields EventKind = "RESET_INPUT_FIELDS"
	EventShowTextInput    EventKind = "SHOW_TEXT_INPUT"
	EventHideTextInput    EventKind = "HIDE_TEXT_INPUT"
)

type Event interface {
	Kind() EventKind
}

// ShapesUpdated carries a snapshot: the shapes are clones and may be kept
// by subscribers across frames.
type ShapesUpdated struct {
	Shapes   []Shape
	Selected []Shape
}

type StateChanged struct {
	State StateKind
	// ShapeType is only set for the draw state.
	ShapeType ShapeType
}

type ResetInputFields struct{}

type ShowTextInput struct {
	ShapeID    int
	Position   Point
	Text       string
	FontFamily string
	FontSize   float64
	FontColor  string
	Bold       bool
	Italic     bool
}

type HideTextInput struct{}

func (ShapesUpdated) Kind() EventKind    { return EventShapesUpdated }
func (StateChanged) Kind() EventKind     { return EventStateChanged }
func (ResetInputFields) Kind() EventKind { return EventResetInputFields }
func (ShowTextInput) Kind() EventKind    { return EventShowTextInput }
func (HideTextInput) Kind() EventKind    { return EventHideTextInput }

type subscriber struct {
	id int
	fn func(Event)
}

// observable fans events out to any number of subscribers. Delivery order
// between subscribers is not part of the contract.
type observable struct {
	subs   []subscriber
	nextID int
}

// Subscribe registers fn and returns a func that removes it again.
func (o *observable) Subscribe(fn func(Event)) (cancel func()) {
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

func (o *observable) notify(e Event) {
	subs := append([]subscriber(nil), o.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}

func (o *observable) subscriberCount() int {
	return len(o.subs)
}
