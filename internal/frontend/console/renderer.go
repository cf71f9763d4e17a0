package console

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/detective/internal/game/command"
	"github.com/cory-johannsen/detective/internal/game/exploration"
	"github.com/cory-johannsen/detective/internal/game/mansion"
	"github.com/cory-johannsen/detective/internal/game/scenario"
	"github.com/cory-johannsen/detective/internal/game/verdict"
)

const (
	banner = "========================================="
	rule   = "-----------------------------------------"
)

// Renderer turns exploration events and results into player-facing text.
// It implements exploration.Observer.
//
// Observer callbacks cannot return errors, so the first write failure is
// kept and reported by Err.
type Renderer struct {
	conn *Conn
	pal  Palette
	err  error
}

// NewRenderer creates a Renderer writing to conn.
//
// Precondition: conn must be non-nil.
func NewRenderer(conn *Conn, pal Palette) *Renderer {
	return &Renderer{conn: conn, pal: pal}
}

// Err returns the first write error encountered, if any.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) line(text string) {
	if r.err != nil {
		return
	}
	r.err = r.conn.WriteLine(text)
}

func (r *Renderer) linef(format string, args ...any) {
	r.line(fmt.Sprintf(format, args...))
}

// Banner prints the case title and opening narration.
func (r *Renderer) Banner(title, intro string) {
	r.line(r.pal.Colorize(Bold, banner))
	r.line(r.pal.Colorize(BrightYellow, center(strings.ToUpper(title), len(banner))))
	r.line(r.pal.Colorize(Bold, banner))
	if intro != "" {
		r.line(intro)
	}
}

// RoomEntered describes the room and any clue found in it.
func (r *Renderer) RoomEntered(room *mansion.Room, fresh bool) {
	r.line("")
	r.line(r.pal.Colorize(Dim, rule))
	r.line("LOCAL ATUAL: " + r.pal.Colorize(BrightYellow, room.Name))
	switch {
	case room.HasClue() && fresh:
		r.line(r.pal.Colorf(BrightGreen, "[!] Pista encontrada: %q", room.Clue))
		r.line("    -> Adicionando ao caderno de anotações...")
	case room.HasClue():
		r.line(r.pal.Colorf(Green, "(Pista já anotada: %q)", room.Clue))
	default:
		r.line(r.pal.Colorize(Dim, "(Nenhuma pista visível neste cômodo)"))
	}
	r.line(r.pal.Colorize(Dim, rule))
	if !room.IsLeaf() {
		r.Options(room)
	}
}

// Options lists the paths available from room.
func (r *Renderer) Options(room *mansion.Room) {
	r.line(r.pal.Colorize(Cyan, "Para onde deseja ir?"))
	if room.Left != nil {
		r.linef(" %s Esquerda %s", r.pal.Colorize(BrightCyan, "[e]"), r.pal.Colorf(Dim, "(%s)", room.Left.Name))
	}
	if room.Right != nil {
		r.linef(" %s Direita %s", r.pal.Colorize(BrightCyan, "[d]"), r.pal.Colorf(Dim, "(%s)", room.Right.Name))
	}
	r.linef(" %s Sair da Mansão (Encerrar exploração)", r.pal.Colorize(BrightCyan, "[s]"))
}

// Rejected explains why a command was refused and repeats the options.
func (r *Renderer) Rejected(room *mansion.Room, _ exploration.Command, err error) {
	r.line("")
	if errors.Is(err, exploration.ErrInvalidPath) {
		r.line(r.pal.Colorize(BrightRed, "[!] Caminho bloqueado ou inexistente."))
	} else {
		r.line(r.pal.Colorize(BrightRed, "[!] Opção inválida. Digite 'ajuda' para ver os comandos."))
	}
	r.Options(room)
}

// Finished announces how exploration ended.
func (r *Renderer) Finished(_ *mansion.Room, state exploration.State) {
	switch state {
	case exploration.DeadEnd:
		r.line("Este cômodo não tem mais saídas. Fim da linha para este caminho.")
	case exploration.Exited:
		r.line("")
		r.line("Você decidiu encerrar a investigação por agora.")
	}
}

// Help lists the commands grouped by category.
func (r *Renderer) Help(reg *command.Registry) {
	cats := reg.CommandsByCategory()
	names := make([]string, 0, len(cats))
	for c := range cats {
		names = append(names, c)
	}
	sort.Strings(names)

	r.line(r.pal.Colorize(Cyan, "Comandos:"))
	for _, c := range names {
		for _, cmd := range cats[c] {
			words := append([]string{cmd.Name}, cmd.Aliases...)
			r.linef("  %s %s", r.pal.Colorf(BrightCyan, "%-28s", strings.Join(words, ", ")), cmd.Help)
		}
	}
}

// Report lists the collected clues, already in alphabetical order.
func (r *Renderer) Report(clues []string) {
	r.line("")
	r.line(r.pal.Colorize(Bold, banner))
	r.line(r.pal.Colorize(BrightYellow, center("RELATÓRIO FINAL DO DETETIVE", len(banner))))
	r.line(r.pal.Colorize(Bold, banner))
	r.line("Pistas coletadas (Ordem Alfabética):")
	r.line("")
	if len(clues) == 0 {
		r.line(r.pal.Colorize(Dim, "- Nenhuma pista foi coletada."))
	}
	for _, c := range clues {
		r.line("- " + c)
	}
	r.line(r.pal.Colorize(Bold, banner))
}

// AccusationPrompt asks for the culprit, listing the known suspects.
func (r *Renderer) AccusationPrompt(suspects []string) {
	if r.err != nil {
		return
	}
	r.line("")
	r.err = r.conn.WritePrompt(fmt.Sprintf("Quem é o culpado? (%s): ", strings.Join(suspects, " / ")))
}

// Verdict prints the judgment.
func (r *Renderer) Verdict(v verdict.Verdict) {
	accused := v.Accused
	if accused == "" {
		accused = "(ninguém)"
	}
	r.line("")
	r.line(r.pal.Colorize(Bold, "--- JULGAMENTO FINAL ---"))
	r.line("Acusado: " + accused)
	r.line("Analisando evidências coletadas...")
	r.linef("Provas encontradas contra %s: %d", accused, v.Count)
	for _, e := range v.Evidence {
		r.line(r.pal.Colorize(Dim, "  * "+e))
	}
	r.line("")

	if v.Outcome == verdict.Guilty {
		r.line(r.pal.Colorf(BrightGreen, "[VEREDITO] %s: CULPADO!", v.Outcome))
		r.linef("Parabéns, detetive! Você reuniu provas suficientes (%d) para prender %s.", v.Count, accused)
		r.line("O mistério da mansão foi resolvido.")
		return
	}
	r.line(r.pal.Colorf(BrightRed, "[VEREDITO] %s: INOCENTE por falta de provas!", v.Outcome))
	r.linef("Você apresentou apenas %d prova(s). O tribunal exige no mínimo %d evidências concretas.",
		v.Count, verdict.GuiltyThreshold)
	r.linef("%s foi liberado e o verdadeiro culpado fugiu.", accused)
	r.line(r.pal.Colorize(Red, "GAME OVER."))
}

// CaseSummary describes a case's structure and whether it can be won.
func (r *Renderer) CaseSummary(c *scenario.Case) {
	r.line(r.pal.Colorize(BrightYellow, c.Title))
	r.linef("Cômodos: %d  Profundidade: %d  Caminhos: %d", c.Mansion.Len(), c.Mansion.Depth(), len(c.Mansion.Paths()))
	r.linef("Associações: %d", c.Suspects.Len())

	best := verdict.MaxAttainable(c.Mansion, c.Suspects)
	for _, s := range c.Suspects.Suspects() {
		r.linef("  %-20s pistas: %d  máximo num caminho: %d", s, len(c.Suspects.CluesFor(s)), best[s])
	}
	for _, clue := range c.Unattributed() {
		r.line(r.pal.Colorf(Yellow, "aviso: pista sem suspeito: %q", clue))
	}
	for _, clue := range c.Unplanted() {
		r.line(r.pal.Colorf(Yellow, "aviso: pista não colocada em nenhum cômodo: %q", clue))
	}
	if convictable := verdict.Convictable(c.Mansion, c.Suspects); len(convictable) > 0 {
		r.line(r.pal.Colorf(Green, "Solucionável: %s", strings.Join(convictable, ", ")))
	} else {
		r.line(r.pal.Colorf(Yellow, "Nenhum caminho único reúne %d provas contra um suspeito.", verdict.GuiltyThreshold))
	}
}

// center pads text with leading spaces to center it in width runes.
func center(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
