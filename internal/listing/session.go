// Package listing drives the create-listing form: a draft, its validation, and submission.
package listing

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"unitrade_backend/models"
)

// State is a step of the submit flow.
type State int

const (
	Editing State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrSubmitInProgress = errors.New("listing is already being submitted")
	ErrSubmitFailed     = errors.New("failed to create listing, please try again")
	ErrNotAuthenticated = errors.New("sign in to create a listing")
)

// API creates products on the server.
type API interface {
	CreateProduct(ctx context.Context, token string, req models.CreateProductRequest) (*models.Product, error)
}

// Identity is the signed-in user submitting the listing.
type Identity interface {
	Authenticated() bool
	Token() string
}

type Session struct {
	api      API
	identity Identity
	now      func() time.Time

	mu    sync.Mutex
	state State
	draft Draft
	err   error
}

func NewSession(api API, identity Identity) *Session {
	return &Session{api: api, identity: identity, now: time.Now}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the outcome of the last failed submit: ValidationErrors, ErrSubmitFailed or ErrNotAuthenticated.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.Images = append([]string(nil), s.draft.Images...)
	return d
}

// Edit applies fn to the draft and returns to Editing. Edits are refused while submitting.
func (s *Session) Edit(fn func(*Draft)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return ErrSubmitInProgress
	}
	fn(&s.draft)
	if len(s.draft.Images) > MaxImages {
		s.draft.Images = s.draft.Images[:MaxImages]
	}
	s.state = Editing
	return nil
}

// Submit validates the draft and creates the listing.
// On failure the draft is kept so the seller can resubmit; on success it is cleared.
func (s *Session) Submit(ctx context.Context) (*models.Product, error) {
	s.mu.Lock()
	if s.state == Submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	s.state = Validating
	if s.identity == nil || !s.identity.Authenticated() {
		s.fail(ErrNotAuthenticated)
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	if errs := Validate(s.draft); errs != nil {
		s.fail(errs)
		s.mu.Unlock()
		return nil, errs
	}
	req := s.draft.Request(s.now())
	token := s.identity.Token()
	s.state = Submitting
	s.mu.Unlock()

	product, err := s.api.CreateProduct(ctx, token, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("Error creating listing: %v", err)
		s.fail(ErrSubmitFailed)
		return nil, ErrSubmitFailed
	}
	s.state = Succeeded
	s.err = nil
	s.draft = Draft{}
	return product, nil
}

func (s *Session) fail(err error) {
	s.state = Failed
	s.err = err
}
