// Package command maps typed player input onto the exploration vocabulary.
package command

import "github.com/cory-johannsen/detective/internal/game/exploration"

// Categories for organizing commands in help output.
const (
	CategoryMovement = "movement"
	CategorySystem   = "system"
)

// Handler identifiers. Navigate and Leave are forwarded to the exploration
// session; Help is answered by the front end.
const (
	HandlerNavigate = "navigate"
	HandlerLeave    = "leave"
	HandlerHelp     = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (movement, system).
	Category string
	// Handler says who answers the command.
	Handler string
	// Action is the exploration command this resolves to. It is
	// exploration.Unknown for commands the session never sees.
	Action exploration.Command
}

// BuiltinCommands returns the exploration vocabulary. The single-letter
// aliases e, d and s are the Portuguese prompts esquerda, direita and sair.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "left", Aliases: []string{"l", "e", "esquerda"}, Help: "Seguir pelo caminho da esquerda", Category: CategoryMovement, Handler: HandlerNavigate, Action: exploration.Left},
		{Name: "right", Aliases: []string{"r", "d", "direita"}, Help: "Seguir pelo caminho da direita", Category: CategoryMovement, Handler: HandlerNavigate, Action: exploration.Right},
		{Name: "exit", Aliases: []string{"s", "sair", "q", "quit"}, Help: "Sair da mansão e ir a julgamento", Category: CategorySystem, Handler: HandlerLeave, Action: exploration.Exit},
		{Name: "help", Aliases: []string{"?", "ajuda"}, Help: "Mostrar os comandos disponíveis", Category: CategorySystem, Handler: HandlerHelp},
	}
}
