// Package screen holds the view-state controllers behind every page of the
// blog client. A screen is created per activation, mounted once, and then
// driven by user actions; the presentation layer renders purely from its
// State and data fields.
package screen

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"inkwell/internal/apiclient"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Phase is the load lifecycle of a screen.
type Phase int

const (
	Loading Phase = iota
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// SubmitPhase is the lifecycle of a form submission once a screen is Ready.
type SubmitPhase int

const (
	Idle SubmitPhase = iota
	Submitting
	SubmitSucceeded
	SubmitFailed
)

func (p SubmitPhase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case SubmitSucceeded:
		return "succeeded"
	case SubmitFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RedirectDelay is how long a form's success message stays up before
// navigating away.
const RedirectDelay = 1500 * time.Millisecond

// Navigation asks the presentation layer to move to Path after Delay.
// A zero Delay means navigate immediately.
type Navigation struct {
	Path  string
	Delay time.Duration
}

// State is the renderable status of a screen. Error and Success hold fixed,
// user-facing sentences; causes go to the diagnostic log only.
type State struct {
	Phase   Phase
	Submit  SubmitPhase
	Error   string
	Success string
	Next    *Navigation
}

// Confirmer is a blocking yes/no prompt shown before a destructive action.
type Confirmer func(prompt string) bool

// Collection is the slice of the API client a screen needs for one resource.
type Collection[T any, F any] interface {
	List(ctx context.Context) (*apiclient.Response[[]T], error)
	Get(ctx context.Context, id uint) (*apiclient.Response[T], error)
	Create(ctx context.Context, fields F) (*apiclient.Response[T], error)
	Update(ctx context.Context, id uint, fields F) (*apiclient.Response[T], error)
	Delete(ctx context.Context, id uint) (*apiclient.Response[struct{}], error)
}

type (
	PostCollection   = Collection[models.Post, models.PostFields]
	AuthorCollection = Collection[models.Author, models.AuthorFields]
)

// base carries the state machine shared by every screen. Only state is
// guarded by mu and safe to read with State while an operation runs. The
// exported data fields of each screen are written by whichever goroutine
// calls Mount, Resume, Submit or Delete, and are read once that call returns.
type base struct {
	name string
	log  *observability.ScreenLogger

	mu    sync.Mutex
	state State
}

func (b *base) init(name string) {
	b.name = name
	b.log = observability.NewScreenLogger(name)
	b.state = State{Phase: Loading}
}

// State returns a snapshot of the screen's current state.
func (b *base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := b.state
	if st.Next != nil {
		next := *st.Next
		st.Next = &next
	}
	return st
}

// span starts a trace span for one screen operation and tags the context
// with a correlation id for this activation if it has none yet.
func (b *base) span(ctx context.Context, op string) (context.Context, trace.Span) {
	if observability.ExtractCorrelationID(ctx) == "" {
		ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())
	}
	return observability.TraceScreen(ctx, b.name, op)
}

func (b *base) startLoading(ctx context.Context) {
	b.mu.Lock()
	b.state = State{Phase: Loading}
	b.mu.Unlock()
	b.log.LogTransition(ctx, Loading.String())
}

func (b *base) ready(ctx context.Context) {
	b.mu.Lock()
	b.state.Phase = Ready
	b.mu.Unlock()
	b.log.LogTransition(ctx, Ready.String())
}

func (b *base) fetchFailed(ctx context.Context, message string, err error) {
	b.mu.Lock()
	b.state.Phase = Failed
	b.state.Error = message
	b.mu.Unlock()
	b.log.LogFailure(ctx, "fetch", err)
	b.log.LogTransition(ctx, Failed.String())
}

// beginSubmit moves a Ready screen into Submitting. It reports false when
// the screen is not Ready or a submission is already in flight.
func (b *base) beginSubmit(ctx context.Context) bool {
	b.mu.Lock()
	if b.state.Phase != Ready || b.state.Submit == Submitting {
		b.mu.Unlock()
		return false
	}
	b.state.Submit = Submitting
	b.state.Error = ""
	b.state.Success = ""
	b.state.Next = nil
	b.mu.Unlock()
	b.log.LogTransition(ctx, Submitting.String())
	return true
}

func (b *base) submitFailed(ctx context.Context, message string, err error) {
	b.mu.Lock()
	b.state.Submit = SubmitFailed
	b.state.Error = message
	b.mu.Unlock()
	b.log.LogFailure(ctx, "submit", err)
}

func (b *base) submitSucceeded(ctx context.Context, message, path string) {
	b.mu.Lock()
	b.state.Submit = SubmitSucceeded
	b.state.Success = message
	b.state.Next = &Navigation{Path: path, Delay: RedirectDelay}
	b.mu.Unlock()
	b.log.LogTransition(ctx, SubmitSucceeded.String())
}

// picklist loads the author choices for a form. Failure is logged and leaves
// the picklist empty; the form stays usable.
func (b *base) picklist(ctx context.Context, authors AuthorCollection) []models.Author {
	resp, err := authors.List(ctx)
	if err != nil {
		b.log.LogFailure(ctx, "fetch", err)
		return nil
	}
	return resp.Data
}

// canDelete reports whether a delete may be issued from the current state.
func (b *base) canDelete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Phase == Ready && b.state.Submit != Submitting
}

func (b *base) deleteFailed(ctx context.Context, message string, err error) {
	b.mu.Lock()
	b.state.Error = message
	b.mu.Unlock()
	b.log.LogFailure(ctx, "delete", err)
}

func (b *base) deleteSucceeded(next *Navigation) {
	b.mu.Lock()
	b.state.Error = ""
	b.state.Next = next
	b.mu.Unlock()
}

// join runs every fetch concurrently and waits for all of them to settle.
// The first error wins; fetches are not cancelled when a sibling fails.
func join(fetches ...func() error) error {
	var g errgroup.Group
	for _, fetch := range fetches {
		g.Go(fetch)
	}
	return g.Wait()
}

var (
	errZeroID        = errors.New("id must be positive")
	errMissingFields = errors.New("required field missing")
)

// parseID turns a route segment into an entity id.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errZeroID
	}
	return uint(id), nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
