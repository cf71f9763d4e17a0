package console

import (
	"context"
	"strings"

	"github.com/cory-johannsen/detective/internal/game/command"
	"github.com/cory-johannsen/detective/internal/game/exploration"
)

// CommandSource reads navigation commands from a Conn. It implements
// exploration.Source.
type CommandSource struct {
	conn     *Conn
	registry *command.Registry
	renderer *Renderer
	prompt   string
}

// NewCommandSource creates a CommandSource.
//
// Precondition: conn, registry and renderer must be non-nil.
func NewCommandSource(conn *Conn, registry *command.Registry, renderer *Renderer, prompt string) *CommandSource {
	return &CommandSource{conn: conn, registry: registry, renderer: renderer, prompt: prompt}
}

// Next prompts for and returns the next command. Blank lines are skipped and
// help is answered here without reaching the session.
//
// Postcondition: Returns a normalized command, or io.EOF when input ends.
func (s *CommandSource) Next(ctx context.Context) (exploration.Command, error) {
	for {
		if err := s.conn.WritePrompt(s.prompt); err != nil {
			return exploration.Unknown, err
		}
		line, err := s.conn.ReadLine(ctx)
		if err != nil {
			return exploration.Unknown, err
		}

		res := command.Parse(line)
		if res.Word == "" {
			continue
		}
		if cmd, ok := s.registry.Resolve(res.Word); ok && cmd.Handler == command.HandlerHelp {
			s.renderer.Help(s.registry)
			continue
		}
		return s.registry.Normalize(line), nil
	}
}

// ReadAccusation prompts for the accused and reads one line. A name matching
// a known suspect apart from letter case is replaced by the suspect's exact
// spelling; any other name is returned trimmed but otherwise as typed.
//
// Postcondition: Returns the accused name, or io.EOF if input ended first.
func ReadAccusation(ctx context.Context, conn *Conn, renderer *Renderer, suspects []string) (string, error) {
	for {
		renderer.AccusationPrompt(suspects)
		if err := renderer.Err(); err != nil {
			return "", err
		}
		line, err := conn.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		return CanonicalSuspect(name, suspects), nil
	}
}

// CanonicalSuspect returns the roster entry equal to name under Unicode case
// folding, or name itself when none matches.
func CanonicalSuspect(name string, suspects []string) string {
	for _, s := range suspects {
		if strings.EqualFold(s, name) {
			return s
		}
	}
	return name
}
