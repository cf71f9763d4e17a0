package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/detective/internal/config"
	"github.com/cory-johannsen/detective/internal/game/clue"
	"github.com/cory-johannsen/detective/internal/game/command"
	"github.com/cory-johannsen/detective/internal/game/exploration"
	"github.com/cory-johannsen/detective/internal/game/scenario"
	"github.com/cory-johannsen/detective/internal/game/verdict"
)

// Game runs one full playthrough over a Conn: exploration, report,
// accusation and verdict.
type Game struct {
	conn     *Conn
	renderer *Renderer
	registry *command.Registry
	prompt   string
	logger   *zap.Logger
}

// NewGame creates a Game.
//
// Precondition: conn, registry and logger must be non-nil.
func NewGame(conn *Conn, cfg config.ConsoleConfig, registry *command.Registry, logger *zap.Logger) *Game {
	return &Game{
		conn:     conn,
		renderer: NewRenderer(conn, Palette{Enabled: cfg.Color}),
		registry: registry,
		prompt:   cfg.Prompt,
		logger:   logger,
	}
}

// Play runs c to completion and returns the verdict.
//
// Precondition: c must be a validated case.
// Postcondition: Returns the verdict, or an error if reading input or
// writing output fails. Running out of input ends exploration; running out
// before naming a suspect judges an empty accusation.
func (g *Game) Play(ctx context.Context, c *scenario.Case) (verdict.Verdict, error) {
	g.renderer.Banner(c.Title, c.Intro)

	ledger := clue.NewLedger()
	sess := exploration.NewSession(c.Mansion, ledger, g.renderer, g.logger)
	src := NewCommandSource(g.conn, g.registry, g.renderer, g.prompt)

	state, err := sess.Run(ctx, src)
	if err != nil {
		return verdict.Verdict{}, fmt.Errorf("exploring: %w", err)
	}
	g.logger.Info("exploration ended",
		zap.String("session_id", sess.ID().String()),
		zap.Stringer("state", state),
		zap.String("room", sess.Current().Name),
		zap.Int("steps", sess.Steps()),
		zap.Int("rooms_visited", len(sess.Trail())),
		zap.Int("clues", ledger.Len()),
	)

	g.renderer.Report(ledger.InOrder())

	accused, err := ReadAccusation(ctx, g.conn, g.renderer, c.Suspects.Suspects())
	if err != nil && !errors.Is(err, io.EOF) {
		return verdict.Verdict{}, fmt.Errorf("reading accusation: %w", err)
	}

	v := verdict.Judge(ledger, c.Suspects, accused)
	g.renderer.Verdict(v)
	g.logger.Info("case closed",
		zap.String("session_id", sess.ID().String()),
		zap.String("accused", v.Accused),
		zap.Int("evidence", v.Count),
		zap.Stringer("outcome", v.Outcome),
	)

	if err := g.renderer.Err(); err != nil {
		return v, fmt.Errorf("writing output: %w", err)
	}
	return v, nil
}
