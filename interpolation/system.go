package interpolation

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

var (
	ErrUnknownTarget = errors.New("unknown interpolation target")
	ErrClosed        = errors.New("interpolation system closed")
)

type Config[T cmp.Ordered] struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Library defaults to spectral.Default.
	Library *spectral.Library
	Locator ElementLocator
	Targets map[string]TargetPoints
	// OnComplete is called from the target's goroutine each time a target
	// completes a temporal id.
	OnComplete func(tag string, id T, vars map[string][]float64)
}

// System runs the interpolator and every target as actors. Each actor owns
// its state, has an unbounded FIFO mailbox and handles one message at a
// time, so messages from one sender to one receiver keep their order while
// messages from different senders interleave freely.
type System[T cmp.Ordered] struct {
	logger       *slog.Logger
	onComplete   func(tag string, id T, vars map[string][]float64)
	interpolator *Interpolator[T]
	targets      map[string]*Target[T]
	actors       map[Address]*actor[T]

	mu       sync.Mutex
	inFlight int
	idle     chan struct{}
}

type actor[T cmp.Ordered] struct {
	addr    Address
	mailbox *utils.MailBox[envelope[T]]
	handle  func(Message[T]) []Message[T]
}

// envelope carries either a message or a query run on the actor's goroutine.
type envelope[T cmp.Ordered] struct {
	msg   Message[T]
	query func()
}

func NewSystem[T cmp.Ordered](cfg Config[T]) (s *System[T], err error) {
	switch {
	case cfg.Locator == nil:
		return nil, fmt.Errorf("interpolation system needs an element locator")
	case len(cfg.Targets) == 0:
		return nil, fmt.Errorf("interpolation system needs at least one target")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tags := slices.Sorted(maps.Keys(cfg.Targets))
	s = &System[T]{
		logger:       logger,
		onComplete:   cfg.OnComplete,
		interpolator: NewInterpolator[T](cfg.Library, cfg.Locator, logger, tags...),
		targets:      make(map[string]*Target[T], len(tags)),
		actors:       make(map[Address]*actor[T], len(tags)+1),
		idle:         make(chan struct{}),
	}
	close(s.idle)
	s.actors[InterpolatorAddress] = &actor[T]{
		addr:    InterpolatorAddress,
		mailbox: utils.NewMailBox[envelope[T]](),
		handle:  s.interpolator.Handle,
	}
	for _, tag := range tags {
		points := cfg.Targets[tag]
		if points == nil || points.Len() < 1 {
			return nil, fmt.Errorf("interpolation target %q has no points", tag)
		}
		tg := NewTarget[T](tag, points)
		s.targets[tag] = tg
		s.actors[TargetAddress(tag)] = &actor[T]{
			addr:    TargetAddress(tag),
			mailbox: utils.NewMailBox[envelope[T]](),
			handle:  s.targetHandler(tg),
		}
	}
	return
}

func (s *System[T]) targetHandler(tg *Target[T]) func(Message[T]) []Message[T] {
	return func(msg Message[T]) (out []Message[T]) {
		out = tg.Handle(msg)
		if s.onComplete == nil {
			return
		}
		for _, m := range out {
			if c, ok := m.(CleanUp[T]); ok {
				vars, _ := tg.Results(c.ID)
				s.onComplete(tg.Tag(), c.ID, vars)
			}
		}
		return
	}
}

// Run processes messages until Close is called and every mailbox drains, or
// ctx is done, or a handler fails.
func (s *System[T]) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range s.actors {
		g.Go(func() error {
			return s.loop(ctx, a)
		})
	}
	return g.Wait()
}

func (s *System[T]) loop(ctx context.Context, a *actor[T]) (err error) {
	s.logger.Debug("actor started", "actor", a.addr)
	defer func() {
		s.logger.Debug("actor stopped", "actor", a.addr, "error", err)
	}()
	for {
		env, ok, rerr := a.mailbox.Receive(ctx)
		if rerr != nil || !ok {
			return rerr
		}
		if err = s.deliver(a, env); err != nil {
			return
		}
	}
}

func (s *System[T]) deliver(a *actor[T], env envelope[T]) (err error) {
	defer s.finished()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v: %v", a.addr, r)
		}
	}()
	if env.query != nil {
		env.query()
		return
	}
	for _, m := range a.handle(env.msg) {
		s.post(s.actors[m.Recipient()], envelope[T]{msg: m})
	}
	return
}

func (s *System[T]) post(a *actor[T], env envelope[T]) bool {
	s.mu.Lock()
	if s.inFlight == 0 {
		s.idle = make(chan struct{})
	}
	s.inFlight++
	s.mu.Unlock()
	if !a.mailbox.Post(env) {
		s.logger.Debug("message dropped after close", "actor", a.addr)
		s.finished()
		return false
	}
	return true
}

func (s *System[T]) finished() {
	s.mu.Lock()
	if s.inFlight--; s.inFlight == 0 {
		close(s.idle)
	}
	s.mu.Unlock()
}

// Close stops accepting new messages. Messages already queued are still
// handled before Run returns.
func (s *System[T]) Close() {
	for _, a := range s.actors {
		a.mailbox.Close()
	}
}

// Idle blocks until no message is queued or being handled.
func (s *System[T]) Idle(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *System[T]) targetActor(tag string) (*actor[T], error) {
	a, ok := s.actors[TargetAddress(tag)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, tag)
	}
	return a, nil
}

// AddTemporalIDs asks the target with the given tag to interpolate at ids.
func (s *System[T]) AddTemporalIDs(tag string, ids ...T) error {
	a, err := s.targetActor(tag)
	if err != nil {
		return err
	}
	if !s.post(a, envelope[T]{msg: AddTemporalIDs[T]{Tag: tag, IDs: slices.Clone(ids)}}) {
		return ErrClosed
	}
	return nil
}

// SendVolumeData delivers one element's data at id to the interpolator.
func (s *System[T]) SendVolumeData(id T, elem ElementID, data VolumeData) error {
	if !s.post(s.actors[InterpolatorAddress], envelope[T]{msg: ReceiveVolumeData[T]{ID: id, Element: elem, Data: data}}) {
		return ErrClosed
	}
	return nil
}

// ask runs fn on the goroutine of actor a and returns its result. The
// result channel has room for the one value, so a caller that gave up on ctx
// never blocks the actor and never shares a variable with it.
func ask[T cmp.Ordered, R any](ctx context.Context, s *System[T], a *actor[T], fn func() R) (r R, err error) {
	result := make(chan R, 1)
	if !s.post(a, envelope[T]{query: func() { result <- fn() }}) {
		return r, ErrClosed
	}
	select {
	case r = <-result:
		return r, nil
	case <-ctx.Done():
		return r, ctx.Err()
	}
}

func askTarget[T cmp.Ordered, R any](ctx context.Context, s *System[T], tag string, fn func(tg *Target[T]) R) (r R, err error) {
	a, err := s.targetActor(tag)
	if err != nil {
		return r, err
	}
	tg := s.targets[tag]
	return ask(ctx, s, a, func() R { return fn(tg) })
}

// PendingTemporalIDs returns the ids of the target that have not completed,
// oldest first.
func (s *System[T]) PendingTemporalIDs(ctx context.Context, tag string) ([]T, error) {
	return askTarget(ctx, s, tag, (*Target[T]).Pending)
}

func (s *System[T]) CompletedTemporalIDs(ctx context.Context, tag string) ([]T, error) {
	return askTarget(ctx, s, tag, (*Target[T]).Completed)
}

func (s *System[T]) State(ctx context.Context, tag string, id T) (State, error) {
	return askTarget(ctx, s, tag, func(tg *Target[T]) State { return tg.State(id) })
}

type targetResults struct {
	vars map[string][]float64
	ok   bool
}

func (s *System[T]) Results(ctx context.Context, tag string, id T) (map[string][]float64, bool, error) {
	r, err := askTarget(ctx, s, tag, func(tg *Target[T]) (r targetResults) {
		r.vars, r.ok = tg.Results(id)
		return
	})
	return r.vars, r.ok, err
}

// BufferedTemporalIDs returns the ids the interpolator still holds volume
// data for.
func (s *System[T]) BufferedTemporalIDs(ctx context.Context) ([]T, error) {
	return ask(ctx, s, s.actors[InterpolatorAddress], s.interpolator.BufferedTemporalIDs)
}
