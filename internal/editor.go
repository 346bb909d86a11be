package internal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("subscription not found")
	ErrFormOpen = errors.New("another form is already open")
	ErrNoForm   = errors.New("no form is open")
)

// EditorState is the form the editor currently shows
type EditorState int

const (
	StateIdle EditorState = iota
	StateAdding
	StateEditing
)

func (s EditorState) String() string {
	switch s {
	case StateAdding:
		return "adding"
	case StateEditing:
		return "editing"
	default:
		return "idle"
	}
}

// IDGenerator returns a fresh unique subscription id
type IDGenerator func() string

// NewUUIDv7 generates time-ordered ids
func NewUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// editCopy is the record being edited, kept as a draft until confirmed
type editCopy struct {
	id    string
	color Color
	draft Draft
}

// Editor applies user actions to a store and tracks transient form state.
// Only one of the add form and the edit form is open at a time.
type Editor struct {
	store  *Store
	colors ColorChooser
	newID  IDGenerator

	view       ViewMode
	state      EditorState
	draft      Draft
	editing    editCopy
	hoveredDay int
	hoveredID  string
}

// EditorOption configures an Editor
type EditorOption func(*Editor)

// WithColorChooser sets the source used to pick new colors
func WithColorChooser(c ColorChooser) EditorOption {
	return func(e *Editor) { e.colors = c }
}

// WithIDGenerator sets the id source for new subscriptions
func WithIDGenerator(gen IDGenerator) EditorOption {
	return func(e *Editor) { e.newID = gen }
}

// WithView sets the initial view
func WithView(v ViewMode) EditorOption {
	return func(e *Editor) { e.view = v }
}

func NewEditor(store *Store, opts ...EditorOption) *Editor {
	e := &Editor{
		store:  store,
		colors: NewRandomChooser(),
		newID:  NewUUIDv7,
		view:   ViewCalendar,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) State() EditorState { return e.state }

func (e *Editor) View() ViewMode { return e.view }

func (e *Editor) SetView(v ViewMode) { e.view = v }

// OpenAddForm shows the add form. Opening it while already adding keeps the draft.
func (e *Editor) OpenAddForm() error {
	switch e.state {
	case StateAdding:
		return nil
	case StateEditing:
		return ErrFormOpen
	}
	e.state = StateAdding
	return nil
}

// Draft returns the in-progress add draft
func (e *Editor) Draft() Draft { return e.draft }

// SetDraftField updates one field of the add draft
func (e *Editor) SetDraftField(field DraftField, value string) error {
	if e.state != StateAdding {
		return ErrNoForm
	}
	d, err := e.draft.With(field, value)
	if err != nil {
		return err
	}
	e.draft = d
	return nil
}

// SubmitAdd validates the draft and appends a new subscription. On a
// validation error the store is untouched and the form stays open.
func (e *Editor) SubmitAdd() (Subscription, error) {
	if e.state != StateAdding {
		return Subscription{}, ErrNoForm
	}
	parsed, err := ParseDraft(e.draft)
	if err != nil {
		return Subscription{}, err
	}

	sub := Subscription{
		ID:     e.newID(),
		Name:   parsed.Name,
		Amount: parsed.Amount,
		Date:   parsed.Date,
		Color:  PickColor(e.colors),
	}
	e.store.Add(sub)

	e.draft = Draft{}
	e.state = StateIdle
	return sub, nil
}

// AddWithColor is SubmitAdd for a draft outside the form, keeping a given
// palette color. Colors outside the palette fall back to the chooser.
func (e *Editor) AddWithColor(d Draft, color Color) (Subscription, error) {
	parsed, err := ParseDraft(d)
	if err != nil {
		return Subscription{}, err
	}
	if !IsPaletteColor(color) {
		color = PickColor(e.colors)
	}
	sub := Subscription{
		ID:     e.newID(),
		Name:   parsed.Name,
		Amount: parsed.Amount,
		Date:   parsed.Date,
		Color:  color,
	}
	e.store.Add(sub)
	return sub, nil
}

// BeginEdit opens the edit form with a copy of the record
func (e *Editor) BeginEdit(id string) error {
	switch e.state {
	case StateAdding:
		return ErrFormOpen
	case StateEditing:
		if e.editing.id == id {
			return nil
		}
		return ErrFormOpen
	}
	sub, ok := e.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.editing = editCopy{id: sub.ID, color: sub.Color, draft: DraftFrom(sub)}
	e.state = StateEditing
	return nil
}

// Editing returns the id and draft of the record being edited
func (e *Editor) Editing() (string, Draft, bool) {
	if e.state != StateEditing {
		return "", Draft{}, false
	}
	return e.editing.id, e.editing.draft, true
}

// SetEditField updates one field of the edit copy. The store is not touched.
func (e *Editor) SetEditField(field DraftField, value string) error {
	if e.state != StateEditing {
		return ErrNoForm
	}
	d, err := e.editing.draft.With(field, value)
	if err != nil {
		return err
	}
	e.editing.draft = d
	return nil
}

// ConfirmEdit validates the edit copy and replaces the stored record with it.
// The id and color are kept. A validation error leaves the form open.
func (e *Editor) ConfirmEdit() (Subscription, error) {
	if e.state != StateEditing {
		return Subscription{}, ErrNoForm
	}
	parsed, err := ParseDraft(e.editing.draft)
	if err != nil {
		return Subscription{}, err
	}

	sub := Subscription{
		ID:     e.editing.id,
		Name:   parsed.Name,
		Amount: parsed.Amount,
		Date:   parsed.Date,
		Color:  e.editing.color,
	}
	found := e.store.Replace(sub)
	e.closeForm()
	if !found {
		return Subscription{}, fmt.Errorf("%w: %s", ErrNotFound, sub.ID)
	}
	return sub, nil
}

// Cancel closes whichever form is open and discards its state
func (e *Editor) Cancel() {
	e.closeForm()
}

func (e *Editor) closeForm() {
	e.state = StateIdle
	e.draft = Draft{}
	e.editing = editCopy{}
}

// Delete removes a record. Returns false if the id was unknown.
func (e *Editor) Delete(id string) bool {
	removed := e.store.Delete(id)
	if !removed {
		return false
	}
	if e.state == StateEditing && e.editing.id == id {
		e.closeForm()
	}
	if e.hoveredID == id {
		e.hoveredID = ""
	}
	return true
}

// HoverDay marks a calendar day as hovered
func (e *Editor) HoverDay(day int) {
	e.hoveredDay = day
	e.hoveredID = ""
}

// HoverRecord marks a list record as hovered
func (e *Editor) HoverRecord(id string) {
	e.hoveredID = id
	e.hoveredDay = 0
}

func (e *Editor) ClearHover() {
	e.hoveredDay = 0
	e.hoveredID = ""
}

// Popover returns the entries to show for the current hover. Nothing is
// shown when the hovered day has no subscriptions or the day is not in the
// month of now.
func (e *Editor) Popover(now time.Time) []Subscription {
	if e.hoveredID != "" {
		if sub, ok := e.store.Get(e.hoveredID); ok {
			return []Subscription{sub}
		}
		return nil
	}
	if e.hoveredDay == 0 {
		return nil
	}
	cell, ok := e.store.Calendar(now).Cell(e.hoveredDay)
	if !ok {
		return nil
	}
	return cell.Subscriptions
}

func (e *Editor) Spend() decimal.Decimal { return e.store.MonthlySpend() }

func (e *Editor) Calendar(now time.Time) Calendar { return e.store.Calendar(now) }

func (e *Editor) List() []Subscription { return e.store.SortedByDate() }

func (e *Editor) All() []Subscription { return e.store.All() }
