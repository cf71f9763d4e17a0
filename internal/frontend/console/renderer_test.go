package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/detective/internal/game/command"
	"github.com/cory-johannsen/detective/internal/game/exploration"
	"github.com/cory-johannsen/detective/internal/game/mansion"
	"github.com/cory-johannsen/detective/internal/game/scenario"
	"github.com/cory-johannsen/detective/internal/game/verdict"
)

const shippedCase = "../../../content/cases/ultimo_caso.yaml"

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func newTestRenderer(color bool) (*Renderer, *bytes.Buffer) {
	var out bytes.Buffer
	return NewRenderer(NewConn(strings.NewReader(""), &out), Palette{Enabled: color}), &out
}

func hall() *mansion.Room {
	return &mansion.Room{
		Name:  "Hall de Entrada",
		Clue:  "Pegadas de lama no chão",
		Left:  &mansion.Room{Name: "Sala de Estar"},
		Right: &mansion.Room{Name: "Cozinha"},
	}
}

func TestRenderer_RoomEnteredFreshClue(t *testing.T) {
	r, out := newTestRenderer(false)
	r.RoomEntered(hall(), true)
	require.NoError(t, r.Err())

	text := out.String()
	assert.Contains(t, text, "LOCAL ATUAL: Hall de Entrada")
	assert.Contains(t, text, `[!] Pista encontrada: "Pegadas de lama no chão"`)
	assert.Contains(t, text, "[e] Esquerda (Sala de Estar)")
	assert.Contains(t, text, "[d] Direita (Cozinha)")
	assert.Contains(t, text, "[s] Sair da Mansão")
}

func TestRenderer_RoomEnteredKnownClue(t *testing.T) {
	r, out := newTestRenderer(false)
	r.RoomEntered(hall(), false)
	assert.Contains(t, out.String(), `(Pista já anotada: "Pegadas de lama no chão")`)
}

func TestRenderer_RoomEnteredLeafWithoutClue(t *testing.T) {
	r, out := newTestRenderer(false)
	r.RoomEntered(&mansion.Room{Name: "Cozinha"}, false)

	text := out.String()
	assert.Contains(t, text, "(Nenhuma pista visível neste cômodo)")
	assert.NotContains(t, text, "Para onde deseja ir?")
}

func TestRenderer_OptionsOmitsMissingSide(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Options(&mansion.Room{Name: "Sala", Left: &mansion.Room{Name: "Biblioteca"}})

	text := out.String()
	assert.Contains(t, text, "[e] Esquerda (Biblioteca)")
	assert.NotContains(t, text, "[d]")
}

func TestRenderer_Rejected(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Rejected(hall(), exploration.Left, exploration.ErrInvalidPath)
	assert.Contains(t, out.String(), "Caminho bloqueado ou inexistente")

	r, out = newTestRenderer(false)
	r.Rejected(hall(), exploration.Unknown, exploration.ErrInvalidCommand)
	assert.Contains(t, out.String(), "Opção inválida")
}

func TestRenderer_Finished(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Finished(hall(), exploration.DeadEnd)
	assert.Contains(t, out.String(), "Fim da linha")

	r, out = newTestRenderer(false)
	r.Finished(hall(), exploration.Exited)
	assert.Contains(t, out.String(), "encerrar a investigação")
}

func TestRenderer_Help(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Help(command.DefaultRegistry())

	text := out.String()
	assert.Contains(t, text, "Comandos:")
	for _, word := range []string{"left", "esquerda", "right", "direita", "exit", "sair", "ajuda"} {
		assert.Contains(t, text, word)
	}
}

func TestRenderer_ReportEmpty(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Report(nil)
	assert.Contains(t, out.String(), "Nenhuma pista foi coletada")
}

func TestRenderer_ReportListsCluesInGivenOrder(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Report([]string{"Livro de venenos aberto", "Pegadas de lama no chão"})

	text := out.String()
	first := strings.Index(text, "- Livro de venenos aberto")
	second := strings.Index(text, "- Pegadas de lama no chão")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
}

func TestRenderer_VerdictGuilty(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Verdict(verdict.Verdict{
		Accused:  "Jardineiro",
		Count:    2,
		Outcome:  verdict.Guilty,
		Evidence: []string{"Pegadas de lama no chão", "Terra revirada recente"},
	})

	text := out.String()
	assert.Contains(t, text, "Provas encontradas contra Jardineiro: 2")
	assert.Contains(t, text, "[VEREDITO] GUILTY: CULPADO!")
	assert.Contains(t, text, "* Terra revirada recente")
	assert.NotContains(t, text, "GAME OVER")
}

func TestRenderer_VerdictInsufficient(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Verdict(verdict.Verdict{Accused: "Mordomo", Count: 1, Outcome: verdict.InsufficientEvidence})

	text := out.String()
	assert.Contains(t, text, "INSUFFICIENT_EVIDENCE: INOCENTE")
	assert.Contains(t, text, "apenas 1 prova(s)")
	assert.Contains(t, text, "GAME OVER.")
}

func TestRenderer_VerdictNobodyAccused(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Verdict(verdict.Verdict{Outcome: verdict.InsufficientEvidence})
	assert.Contains(t, out.String(), "Acusado: (ninguém)")
}

func TestRenderer_ColorDisabledHasNoEscapes(t *testing.T) {
	r, out := newTestRenderer(false)
	r.Banner("Caso", "intro")
	r.RoomEntered(hall(), true)
	assert.NotContains(t, out.String(), "\033[")
}

func TestRenderer_ColorDisabledStripsEscapesFromCaseText(t *testing.T) {
	r, out := newTestRenderer(false)
	r.RoomEntered(&mansion.Room{Name: "\033[31mPorão\033[0m", Clue: "\033[1mChave\033[0m"}, true)

	text := out.String()
	assert.NotContains(t, text, "\033[")
	assert.Contains(t, text, "LOCAL ATUAL: Porão")
}

func TestRenderer_ColorEnabledStripsToPlain(t *testing.T) {
	plain, plainOut := newTestRenderer(false)
	colored, coloredOut := newTestRenderer(true)
	plain.RoomEntered(hall(), true)
	colored.RoomEntered(hall(), true)
	assert.Equal(t, plainOut.String(), StripANSI(coloredOut.String()))
}

func TestRenderer_KeepsFirstWriteError(t *testing.T) {
	r := NewRenderer(NewConn(strings.NewReader(""), failingWriter{}), Palette{})
	r.Banner("Caso", "")
	r.Report([]string{"x"})
	require.Error(t, r.Err())
	assert.Contains(t, r.Err().Error(), "broken pipe")
}

func TestRenderer_CaseSummary(t *testing.T) {
	c, err := scenario.LoadFromFile(shippedCase)
	require.NoError(t, err)

	r, out := newTestRenderer(false)
	r.CaseSummary(c)

	text := out.String()
	assert.Contains(t, text, "Cômodos: 7  Profundidade: 2  Caminhos: 4")
	assert.Contains(t, text, "Associações: 6")
	assert.Contains(t, text, "Solucionável: Jardineiro")
	assert.NotContains(t, text, "aviso:")
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab", center("ab", 6))
	assert.Equal(t, "abcdef", center("abcdef", 4))
	assert.Equal(t, " Último", center("Último", 8))
}
