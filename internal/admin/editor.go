package admin

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/folio/folio/internal/models"
)

// State is the lifecycle of one editor screen.
type State int

const (
	Loading State = iota
	Idle
	Editing
	Saving
)

func (s State) String() string {
	return [...]string{"loading", "idle", "editing", "saving"}[s]
}

var (
	ErrNotEditing  = errors.New("admin: no form is open")
	ErrBusy        = errors.New("admin: a save is in flight")
	ErrNotApproved = errors.New("admin: delete not confirmed")
)

// IncompleteError lists the required fields still blank. Save returns it
// without touching the network.
type IncompleteError struct {
	Fields []string
}

func (e *IncompleteError) Error() string {
	return "admin: missing required fields: " + strings.Join(e.Fields, ", ")
}

// Entry is a list item as seen by its editor.
type Entry interface {
	GetID() string
	Kind() string
	Missing() []string
}

// ListSource is the API surface a ListEditor drives; client.Resource
// implements it.
type ListSource[T any] interface {
	All(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item interface{}) (*T, error)
	Update(ctx context.Context, id string, patch interface{}) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ListSpec names a list section and builds its empty form.
type ListSpec[T any] struct {
	// Label is used in notifications: "Project created successfully".
	Label string
	// Plural is used for fetch failures: "Failed to fetch projects".
	Plural string
	New    func() T
	// SetOrder, when set, seeds new forms with the current list length.
	SetOrder func(*T, int)
}

// ListEditor is the shared create/edit dialog plus list of one section.
type ListEditor[T Entry] struct {
	src    ListSource[T]
	spec   ListSpec[T]
	notify Notifier

	mu     sync.Mutex
	state  State
	items  []T
	form   T
	target string
}

func NewListEditor[T Entry](src ListSource[T], spec ListSpec[T], n Notifier) *ListEditor[T] {
	return &ListEditor[T]{src: src, spec: spec, notify: n, state: Loading}
}

func (e *ListEditor[T]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Items returns a copy of the last fetched list.
func (e *ListEditor[T]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]T(nil), e.items...)
}

// Form returns the open form and the id it targets ("" when creating).
func (e *ListEditor[T]) Form() (T, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form, e.target
}

// Load fetches the admin listing. On failure the previous list is kept,
// which on first load is the empty list.
func (e *ListEditor[T]) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.state != Editing && e.state != Saving {
		e.state = Loading
	}
	e.mu.Unlock()

	items, err := e.src.All(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Loading {
		e.state = Idle
	}
	if err != nil {
		failure(e.notify, "Failed to fetch "+e.spec.Plural)
		return err
	}
	e.items = items
	return nil
}

// StartCreate opens an empty form.
func (e *ListEditor[T]) StartCreate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	var f T
	if e.spec.New != nil {
		f = e.spec.New()
	}
	if e.spec.SetOrder != nil {
		e.spec.SetOrder(&f, len(e.items))
	}
	e.form, e.target, e.state = f, "", Editing
}

// StartEdit opens the form pre-filled from item.
func (e *ListEditor[T]) StartEdit(item T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form, e.target, e.state = item, item.GetID(), Editing
}

// Edit mutates the open form.
func (e *ListEditor[T]) Edit(fn func(*T)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return ErrNotEditing
	}
	fn(&e.form)
	return nil
}

// Cancel discards the form.
func (e *ListEditor[T]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Editing {
		e.reset()
	}
}

func (e *ListEditor[T]) reset() {
	var zero T
	e.form, e.target, e.state = zero, "", Idle
}

// CanSubmit reports whether Save would dispatch.
func (e *ListEditor[T]) CanSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == Editing && len(e.form.Missing()) == 0
}

// Save creates or updates depending on whether an item is targeted. On
// failure the form stays open with its input. After a successful save the
// list is refetched and a refetch error is returned.
func (e *ListEditor[T]) Save(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case Saving:
		e.mu.Unlock()
		return ErrBusy
	case Editing:
	default:
		e.mu.Unlock()
		return ErrNotEditing
	}
	if miss := e.form.Missing(); len(miss) > 0 {
		e.mu.Unlock()
		return &IncompleteError{Fields: miss}
	}
	form, target := e.form, e.target
	e.state = Saving
	e.mu.Unlock()

	var err error
	verb := "created"
	if target != "" {
		verb = "updated"
		_, err = e.src.Update(ctx, target, form)
	} else {
		_, err = e.src.Create(ctx, form)
	}

	e.mu.Lock()
	if err != nil {
		e.state = Editing
		e.mu.Unlock()
		failure(e.notify, "Failed to save "+strings.ToLower(e.spec.Label))
		return err
	}
	e.reset()
	e.mu.Unlock()

	success(e.notify, e.spec.Label+" "+verb+" successfully")
	return e.Load(ctx)
}

// Delete removes id once c approves. A nil Confirmer never approves. On
// failure the list is left as it was.
func (e *ListEditor[T]) Delete(ctx context.Context, id string, c Confirmer) error {
	if c == nil || !c.Confirm("Are you sure you want to delete this "+strings.ToLower(e.spec.Label)+"?") {
		return ErrNotApproved
	}
	if err := e.src.Delete(ctx, id); err != nil {
		failure(e.notify, "Failed to delete "+strings.ToLower(e.spec.Label))
		return err
	}
	success(e.notify, e.spec.Label+" deleted successfully")
	return e.Load(ctx)
}

// DocSource is the API surface of a singleton section; client.Doc implements it.
type DocSource[T any] interface {
	Get(ctx context.Context) (*T, error)
	Update(ctx context.Context, patch interface{}) (*T, error)
}

// DocEditor edits one singleton document. The form is always the whole
// document; Edit opens it, Cancel restores the fetched copy.
type DocEditor[T models.Form] struct {
	src      DocSource[T]
	label    string
	defaults func() T
	notify   Notifier

	mu    sync.Mutex
	state State
	doc   T
	form  T
}

// NewDocEditor starts from defaults(), which is also what stays on screen
// when the first fetch fails.
func NewDocEditor[T models.Form](src DocSource[T], label string, defaults func() T, n Notifier) *DocEditor[T] {
	e := &DocEditor[T]{src: src, label: label, defaults: defaults, notify: n, state: Loading}
	if defaults != nil {
		e.doc = defaults()
		e.form = e.doc
	}
	return e
}

func (e *DocEditor[T]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Document returns the last fetched document.
func (e *DocEditor[T]) Document() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// Form returns the current form values.
func (e *DocEditor[T]) Form() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

func (e *DocEditor[T]) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.state != Editing && e.state != Saving {
		e.state = Loading
	}
	e.mu.Unlock()

	doc, err := e.src.Get(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Loading {
		e.state = Idle
	}
	if err != nil {
		failure(e.notify, "Failed to fetch "+strings.ToLower(e.label))
		return err
	}
	e.doc = *doc
	if e.state == Idle {
		e.form = e.doc
	}
	return nil
}

// Edit mutates the form, opening it if needed.
func (e *DocEditor[T]) Edit(fn func(*T)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case Saving:
		return ErrBusy
	case Idle:
		e.state = Editing
	}
	fn(&e.form)
	return nil
}

func (e *DocEditor[T]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Editing {
		e.form, e.state = e.doc, Idle
	}
}

func (e *DocEditor[T]) CanSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return (e.state == Editing || e.state == Idle) && len(e.form.Missing()) == 0
}

// Save sends the whole form. On failure the form keeps its input.
func (e *DocEditor[T]) Save(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case Saving:
		e.mu.Unlock()
		return ErrBusy
	case Loading:
		e.mu.Unlock()
		return ErrNotEditing
	}
	if miss := e.form.Missing(); len(miss) > 0 {
		e.mu.Unlock()
		return &IncompleteError{Fields: miss}
	}
	form := e.form
	e.state = Saving
	e.mu.Unlock()

	saved, err := e.src.Update(ctx, form)

	e.mu.Lock()
	if err != nil {
		e.state = Editing
		e.mu.Unlock()
		failure(e.notify, "Failed to update "+strings.ToLower(e.label))
		return err
	}
	e.doc, e.form, e.state = *saved, *saved, Idle
	e.mu.Unlock()

	success(e.notify, e.label+" updated successfully")
	return e.Load(ctx)
}
