// Package editor models the product editor as an explicit state machine:
//
//	Clean → Dirty → ConfirmingDiscard → {Saved, Discarded}
//
// with a ConfirmingDelete → Deleted branch for products that already exist.
package editor

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/models"
	"inventory/internal/services"
)

// State is the position of a Session in the editor flow.
type State int

const (
	Clean State = iota
	Dirty
	ConfirmingDiscard
	ConfirmingDelete
	Saved
	Discarded
	Deleted
)

var stateNames = map[State]string{
	Clean:             "clean",
	Dirty:             "dirty",
	ConfirmingDiscard: "confirming-discard",
	ConfirmingDelete:  "confirming-delete",
	Saved:             "saved",
	Discarded:         "discarded",
	Deleted:           "deleted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the session is finished.
func (s State) Terminal() bool {
	return s == Saved || s == Discarded || s == Deleted
}

var (
	ErrInvalidTransition   = errors.New("invalid editor transition")
	ErrQuantityAlreadyZero = errors.New("quantity is already zero")
	ErrNewProduct          = errors.New("product has not been created yet")
)

// Store is what the editor needs from the product service.
type Store interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SaveProduct(ctx context.Context, id int64, form services.ProductForm) (int64, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// Session edits a single product. It is not safe for concurrent use.
type Session struct {
	store Store
	id    int64
	form  services.ProductForm
	state State
	// resume is the state ConfirmingDelete returns to when cancelled.
	resume State
}

// NewSession starts editing a product that does not exist yet.
func NewSession(store Store) *Session {
	return &Session{store: store}
}

// OpenSession starts editing the stored product id.
func OpenSession(ctx context.Context, store Store, id int64) (*Session, error) {
	p, err := store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Session{
		store: store,
		id:    p.ID,
		form:  services.FormFromProduct(*p),
	}, nil
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// ID returns the product identifier, 0 until a new product is saved.
func (s *Session) ID() int64 {
	return s.id
}

// IsNew reports whether the product has not been stored yet.
func (s *Session) IsNew() bool {
	return s.id == 0
}

// Form returns a copy of the form being edited.
func (s *Session) Form() services.ProductForm {
	return s.form
}

func (s *Session) transition(event string, from ...State) error {
	for _, f := range from {
		if s.state == f {
			return nil
		}
	}
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, event, s.state)
}

// Edit applies change to the form and marks the session dirty.
func (s *Session) Edit(change func(form *services.ProductForm)) error {
	if err := s.transition("edit", Clean, Dirty); err != nil {
		return err
	}
	change(&s.form)
	s.state = Dirty
	return nil
}

// IncreaseQuantity adds one to the form quantity.
func (s *Session) IncreaseQuantity() error {
	return s.Edit(func(form *services.ProductForm) { form.Quantity++ })
}

// DecreaseQuantity removes one from the form quantity, never going below zero.
func (s *Session) DecreaseQuantity() error {
	if err := s.transition("decrease quantity", Clean, Dirty); err != nil {
		return err
	}
	if s.form.Quantity <= 0 {
		return ErrQuantityAlreadyZero
	}
	return s.Edit(func(form *services.ProductForm) { form.Quantity-- })
}

// Leave asks to close the editor. A clean session is discarded right away;
// a dirty one waits for ConfirmDiscard or KeepEditing.
func (s *Session) Leave() error {
	if err := s.transition("leave", Clean, Dirty); err != nil {
		return err
	}
	if s.state == Clean {
		s.state = Discarded
	} else {
		s.state = ConfirmingDiscard
	}
	return nil
}

// KeepEditing dismisses the discard prompt.
func (s *Session) KeepEditing() error {
	if err := s.transition("keep editing", ConfirmingDiscard); err != nil {
		return err
	}
	s.state = Dirty
	return nil
}

// ConfirmDiscard drops unsaved changes.
func (s *Session) ConfirmDiscard() error {
	if err := s.transition("discard", ConfirmingDiscard); err != nil {
		return err
	}
	s.state = Discarded
	return nil
}

// Save stores the form. A blank new product is discarded without writing.
// On failure the session stays where it was so the user can fix the form.
func (s *Session) Save(ctx context.Context) error {
	if err := s.transition("save", Clean, Dirty, ConfirmingDiscard); err != nil {
		return err
	}

	id, err := s.store.SaveProduct(ctx, s.id, s.form)
	if errors.Is(err, services.ErrNothingToSave) {
		s.state = Discarded
		return nil
	}
	if err != nil {
		return err
	}
	s.id = id
	s.state = Saved
	return nil
}

// RequestDelete asks to delete the product being edited.
func (s *Session) RequestDelete() error {
	if s.IsNew() {
		return ErrNewProduct
	}
	if err := s.transition("delete", Clean, Dirty); err != nil {
		return err
	}
	s.resume = s.state
	s.state = ConfirmingDelete
	return nil
}

// CancelDelete dismisses the delete prompt.
func (s *Session) CancelDelete() error {
	if err := s.transition("cancel delete", ConfirmingDelete); err != nil {
		return err
	}
	s.state = s.resume
	return nil
}

// ConfirmDelete deletes the product. On failure the session returns to
// where it was before the prompt.
func (s *Session) ConfirmDelete(ctx context.Context) error {
	if err := s.transition("confirm delete", ConfirmingDelete); err != nil {
		return err
	}
	if err := s.store.DeleteProduct(ctx, s.id); err != nil {
		s.state = s.resume
		return err
	}
	s.state = Deleted
	return nil
}
