// Package exploration walks the mansion under player commands, collecting the
// clue of every room entered.
package exploration

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/detective/internal/game/clue"
	"github.com/cory-johannsen/detective/internal/game/mansion"
)

// Command is a normalized navigation command.
type Command int

// Recognized commands. Unknown is never produced by a well-behaved source but
// is accepted and rejected like any other unrecognized input.
const (
	Unknown Command = iota
	Left
	Right
	Exit
)

// String returns the command's vocabulary word.
func (c Command) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// State is the session's position in its lifecycle.
type State int

// Session states. DeadEnd and Exited are terminal.
const (
	Exploring State = iota
	DeadEnd
	Exited
)

// String returns a lowercase label for logging.
func (s State) String() string {
	switch s {
	case Exploring:
		return "exploring"
	case DeadEnd:
		return "dead_end"
	case Exited:
		return "exited"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further commands are accepted in s.
func (s State) Terminal() bool {
	return s == DeadEnd || s == Exited
}

// Recoverable conditions reported in Outcome.Err, and the terminal-state error
// returned by Step.
var (
	ErrInvalidPath    = errors.New("no path in that direction")
	ErrInvalidCommand = errors.New("invalid command")
	ErrSessionOver    = errors.New("exploration has ended")
)

// Source yields one normalized command per call.
// Returning io.EOF ends input and is treated as Exit.
type Source interface {
	Next(ctx context.Context) (Command, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (Command, error)

// Next calls f.
func (f SourceFunc) Next(ctx context.Context) (Command, error) { return f(ctx) }

// Commands returns a Source that replays cmds in order and then reports io.EOF.
func Commands(cmds ...Command) Source {
	i := 0
	return SourceFunc(func(context.Context) (Command, error) {
		if i >= len(cmds) {
			return Unknown, io.EOF
		}
		c := cmds[i]
		i++
		return c, nil
	})
}

// Observer receives the facts a front end displays while exploring.
type Observer interface {
	// RoomEntered is called once per room entered, after its clue (if any)
	// has been recorded. fresh is true when the clue was not already known.
	RoomEntered(room *mansion.Room, fresh bool)
	// Rejected is called when cmd could not be applied in room.
	Rejected(room *mansion.Room, cmd Command, err error)
	// Finished is called once when the session reaches a terminal state.
	Finished(room *mansion.Room, state State)
}

type nopObserver struct{}

func (nopObserver) RoomEntered(*mansion.Room, bool)        {}
func (nopObserver) Rejected(*mansion.Room, Command, error) {}
func (nopObserver) Finished(*mansion.Room, State)          {}

// Outcome describes the effect of a single step.
type Outcome struct {
	// State is the session state after the step.
	State State
	// Room is the current room after the step.
	Room *mansion.Room
	// Moved is true when the step entered a new room.
	Moved bool
	// Err is ErrInvalidPath or ErrInvalidCommand when the command was
	// rejected without changing state; nil otherwise.
	Err error
}

// Session walks a Tree and records clues into a Ledger.
// A Session is single-use and not safe for concurrent use.
type Session struct {
	id       uuid.UUID
	tree     *mansion.Tree
	ledger   *clue.Ledger
	observer Observer
	logger   *zap.Logger

	current *mansion.Room
	state   State
	started bool
	steps   int
	trail   []*mansion.Room
}

// NewSession creates a Session positioned at tree's root.
//
// Precondition: tree, ledger, and logger must be non-nil.
// Postcondition: Returns a Session in the Exploring state. obs may be nil.
func NewSession(tree *mansion.Tree, ledger *clue.Ledger, obs Observer, logger *zap.Logger) *Session {
	if obs == nil {
		obs = nopObserver{}
	}
	id := uuid.New()
	return &Session{
		id:       id,
		tree:     tree,
		ledger:   ledger,
		observer: obs,
		logger:   logger.With(zap.String("session_id", id.String())),
		current:  tree.Root(),
		state:    Exploring,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Current returns the current room.
func (s *Session) Current() *mansion.Room { return s.current }

// Ledger returns the ledger this session writes to.
func (s *Session) Ledger() *clue.Ledger { return s.ledger }

// Steps returns the number of commands applied, including rejected ones.
func (s *Session) Steps() int { return s.steps }

// Trail returns the rooms entered so far, starting with the root.
func (s *Session) Trail() []*mansion.Room {
	return append([]*mansion.Room(nil), s.trail...)
}

// Start enters the root room. It is idempotent and is called implicitly by
// Step and Run.
//
// Postcondition: The root's clue is recorded; the state is DeadEnd if the
// root has no children, Exploring otherwise.
func (s *Session) Start() Outcome {
	if !s.started {
		s.started = true
		s.enter(s.current)
	}
	return Outcome{State: s.state, Room: s.current, Moved: false}
}

// Step applies one command.
//
// Postcondition: Returns ErrSessionOver if the session had already ended.
// Otherwise returns the Outcome; rejected commands leave the state unchanged
// and carry ErrInvalidPath or ErrInvalidCommand in Outcome.Err.
func (s *Session) Step(cmd Command) (Outcome, error) {
	s.Start()
	if s.state.Terminal() {
		return Outcome{State: s.state, Room: s.current}, ErrSessionOver
	}
	s.steps++

	var next *mansion.Room
	switch cmd {
	case Left:
		next, _ = s.tree.Children(s.current)
	case Right:
		_, next = s.tree.Children(s.current)
	case Exit:
		s.finish(Exited)
		return Outcome{State: s.state, Room: s.current}, nil
	default:
		return s.reject(cmd, ErrInvalidCommand), nil
	}

	if next == nil {
		return s.reject(cmd, ErrInvalidPath), nil
	}

	s.logger.Debug("moving",
		zap.String("from", s.current.Name),
		zap.String("to", next.Name),
		zap.Stringer("command", cmd),
	)
	s.current = next
	s.enter(next)
	return Outcome{State: s.state, Room: s.current, Moved: true}, nil
}

// Run drives the session from src until it reaches a terminal state.
//
// Precondition: src must be non-nil.
// Postcondition: Returns the terminal state, or the current state and an
// error if src fails with something other than io.EOF or ctx is cancelled.
// A command that arrives after ctx is cancelled is not applied.
func (s *Session) Run(ctx context.Context, src Source) (State, error) {
	s.Start()
	for !s.state.Terminal() {
		if err := ctx.Err(); err != nil {
			return s.state, err
		}
		cmd, err := src.Next(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return s.state, ctxErr
		}
		if errors.Is(err, io.EOF) {
			s.logger.Debug("input exhausted, treating as exit")
			cmd = Exit
		} else if err != nil {
			return s.state, fmt.Errorf("reading command: %w", err)
		}
		if _, err := s.Step(cmd); err != nil {
			return s.state, err
		}
	}
	return s.state, nil
}

func (s *Session) enter(room *mansion.Room) {
	s.trail = append(s.trail, room)

	fresh := room.HasClue() && !s.ledger.Contains(room.Clue)
	if fresh {
		// HasClue guarantees non-empty text, so Insert cannot fail.
		_, _ = s.ledger.Insert(room.Clue)
	}
	if room.HasClue() {
		s.logger.Debug("clue found",
			zap.String("room", room.Name),
			zap.String("clue", room.Clue),
			zap.Bool("fresh", fresh),
		)
	}
	s.observer.RoomEntered(room, fresh)

	if room.IsLeaf() {
		s.finish(DeadEnd)
	}
}

func (s *Session) reject(cmd Command, err error) Outcome {
	s.logger.Debug("command rejected",
		zap.String("room", s.current.Name),
		zap.Stringer("command", cmd),
		zap.Error(err),
	)
	s.observer.Rejected(s.current, cmd, err)
	return Outcome{State: s.state, Room: s.current, Err: err}
}

func (s *Session) finish(state State) {
	s.state = state
	s.logger.Debug("exploration finished",
		zap.String("room", s.current.Name),
		zap.Stringer("state", state),
		zap.Int("steps", s.steps),
		zap.Int("clues", s.ledger.Len()),
	)
	s.observer.Finished(s.current, state)
}
