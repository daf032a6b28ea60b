// Package service routes validated board requests to the simulation engine
// and keeps the stored state in step with it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"sparse-life/internal/store"
	"sparse-life/pkg/core"
	"sparse-life/pkg/sims/life"
)

var (
	// ErrBoardNotFound is returned when no board is stored under an id.
	ErrBoardNotFound = errors.New("board not found")
	// ErrIterationLimit is returned when a request asks for a negative number
	// of iterations or more than the service allows.
	ErrIterationLimit = errors.New("iteration limit")
	// ErrNotFinal is returned by Final when the board is still active after
	// every requested iteration ran.
	ErrNotFinal = errors.New("board did not reach final state within requested iterations")
	// ErrUnknownPattern is returned when a named pattern is not registered.
	ErrUnknownPattern = errors.New("unknown pattern")
)

// Config holds the service policy.
type Config struct {
	// MaxIterations caps every request and doubles as the ceiling of boards
	// rebuilt from storage.
	MaxIterations int
	// AlwaysWriteBack stores the board even when zero iterations were requested.
	AlwaysWriteBack bool
}

// DefaultConfig returns the standard policy.
func DefaultConfig() Config {
	return Config{MaxIterations: life.DefaultMaxIterations, AlwaysWriteBack: true}
}

// Service owns the store and serializes work per board id.
type Service struct {
	cfg    Config
	store  store.Store
	newID  func() string
	logger *log.Logger

	// locks serializes read-modify-write per id. Get and Dense skip it since
	// a Store swaps whole values.
	locks *keyedMutex
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger. A nil logger falls back to log.Default.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a Service.
func New(st store.Store, cfg Config, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("service: nil store")
	}
	if cfg.MaxIterations < 0 {
		return nil, fmt.Errorf("service: max iterations must be non-negative, got %d", cfg.MaxIterations)
	}
	s := &Service{
		cfg:   cfg,
		store: st,
		newID: uuid.NewString,
		locks: newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MaxIterations returns the per-request cap.
func (s *Service) MaxIterations() int { return s.cfg.MaxIterations }

func (s *Service) logf(format string, args ...any) {
	logger := s.logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}

// Create stores a new board seeded with coords and returns its id.
func (s *Service) Create(ctx context.Context, coords []core.Coord) (string, life.State, error) {
	board, err := life.NewWithConfig(coords, life.Config{MaxIterations: s.cfg.MaxIterations})
	if err != nil {
		return "", life.State{}, err
	}
	id := s.newID()
	if err := s.save(ctx, id, board); err != nil {
		return "", life.State{}, err
	}
	s.logf("board %s created with %d live cells", id, board.Population())
	return id, board.Snapshot(), nil
}

// CreatePattern stores a new board seeded with a registered pattern placed
// at origin.
func (s *Service) CreatePattern(ctx context.Context, name string, origin core.Coord) (string, life.State, error) {
	p, ok := core.LookupPattern(name)
	if !ok {
		return "", life.State{}, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	if !p.Fits(origin) {
		return "", life.State{}, fmt.Errorf("%w: pattern %q does not fit at %v", life.ErrInvalidInput, name, origin)
	}
	return s.Create(ctx, p.At(origin))
}

// Get returns the stored state without stepping it.
func (s *Service) Get(ctx context.Context, id string) (life.State, error) {
	board, err := s.load(ctx, id)
	if err != nil {
		return life.State{}, err
	}
	return board.Snapshot(), nil
}

// Dense returns the stored board's dense view. Boards whose bounding box is
// too large for one fail with life.ErrInvalidInput.
func (s *Service) Dense(ctx context.Context, id string) (*core.ByteGrid, error) {
	board, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return board.Dense()
}

// Advance steps the stored board up to n times and stores the result.
func (s *Service) Advance(ctx context.Context, id string, n int) (life.State, error) {
	return s.run(ctx, id, n, false)
}

// Final steps the stored board up to n times and fails with ErrNotFinal if it
// is still active afterwards.
func (s *Service) Final(ctx context.Context, id string, n int) (life.State, error) {
	return s.run(ctx, id, n, true)
}

func (s *Service) checkLimit(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: num_iters must be non-negative", ErrIterationLimit)
	}
	if n > s.cfg.MaxIterations {
		return fmt.Errorf("%w: num_iters exceeds limit of %d", ErrIterationLimit, s.cfg.MaxIterations)
	}
	return nil
}

func (s *Service) run(ctx context.Context, id string, n int, requireFinal bool) (life.State, error) {
	if err := s.checkLimit(n); err != nil {
		return life.State{}, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	board, err := s.load(ctx, id)
	if err != nil {
		return life.State{}, err
	}
	if n == 0 {
		if s.cfg.AlwaysWriteBack {
			if err := s.save(ctx, id, board); err != nil {
				return life.State{}, err
			}
		}
		return board.Snapshot(), nil
	}

	completed, err := board.RunIterationsContext(ctx, n)
	if err != nil {
		return life.State{}, err
	}
	if requireFinal && completed && !board.IsFinished() {
		return life.State{}, ErrNotFinal
	}
	if err := s.save(ctx, id, board); err != nil {
		return life.State{}, err
	}
	return board.Snapshot(), nil
}

func (s *Service) load(ctx context.Context, id string) (*life.Board, error) {
	data, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	board, err := life.Parse(data, s.cfg.MaxIterations)
	if err != nil {
		s.logf("board %s: stored state unreadable: %v", id, err)
		return nil, fmt.Errorf("board %s: stored state unreadable: %v", id, err)
	}
	return board, nil
}

func (s *Service) save(ctx context.Context, id string, board *life.Board) error {
	return s.store.Set(ctx, id, []byte(board.String()))
}
