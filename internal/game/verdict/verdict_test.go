package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/detective/internal/game/clue"
	"github.com/cory-johannsen/detective/internal/game/mansion"
	"github.com/cory-johannsen/detective/internal/game/suspect"
)

func caseIndex(t *testing.T) *suspect.Index {
	t.Helper()
	idx, err := suspect.FromAssociations([]suspect.Association{
		{Clue: "Pegadas de lama no chão", Suspect: "Jardineiro"},
		{Clue: "Terra revirada recente", Suspect: "Jardineiro"},
		{Clue: "Relógio parado às 10h", Suspect: "Mordomo"},
		{Clue: "Taça de vinho quebrada", Suspect: "Mordomo"},
		{Clue: "Livro de venenos aberto", Suspect: "Governanta"},
		{Clue: "Chave enferrujada antiga", Suspect: "Governanta"},
	})
	require.NoError(t, err)
	return idx
}

func caseTree(t *testing.T) *mansion.Tree {
	t.Helper()
	tree, err := mansion.NewTree(&mansion.Room{
		Name: "Hall de Entrada",
		Clue: "Pegadas de lama no chão",
		Left: &mansion.Room{
			Name:  "Sala de Estar",
			Clue:  "Relógio parado às 10h",
			Left:  &mansion.Room{Name: "Biblioteca", Clue: "Livro de venenos aberto"},
			Right: &mansion.Room{Name: "Jardim de Inverno", Clue: "Terra revirada recente"},
		},
		Right: &mansion.Room{
			Name:  "Cozinha",
			Left:  &mansion.Room{Name: "Sala de Jantar", Clue: "Taça de vinho quebrada"},
			Right: &mansion.Room{Name: "Porão", Clue: "Chave enferrujada antiga"},
		},
	})
	require.NoError(t, err)
	return tree
}

func ledgerOf(t *testing.T, clues ...string) *clue.Ledger {
	t.Helper()
	l := clue.NewLedger()
	for _, c := range clues {
		_, err := l.Insert(c)
		require.NoError(t, err)
	}
	return l
}

func TestJudge_LibraryPath(t *testing.T) {
	idx := caseIndex(t)
	l := ledgerOf(t, "Pegadas de lama no chão", "Relógio parado às 10h", "Livro de venenos aberto")

	v := Judge(l, idx, "Governanta")
	assert.Equal(t, 1, v.Count)
	assert.Equal(t, InsufficientEvidence, v.Outcome)
	assert.Equal(t, []string{"Livro de venenos aberto"}, v.Evidence)

	v = Judge(l, idx, "Mordomo")
	assert.Equal(t, 1, v.Count)
	assert.Equal(t, InsufficientEvidence, v.Outcome)
}

func TestJudge_Guilty(t *testing.T) {
	l := ledgerOf(t, "Taça de vinho quebrada", "Relógio parado às 10h", "Chave enferrujada antiga")
	v := Judge(l, caseIndex(t), "Mordomo")
	assert.Equal(t, 2, v.Count)
	assert.Equal(t, Guilty, v.Outcome)
	assert.Equal(t, "Mordomo", v.Accused)
	assert.Equal(t, []string{"Relógio parado às 10h", "Taça de vinho quebrada"}, v.Evidence)
}

func TestJudge_CountsWholeLedger(t *testing.T) {
	l := ledgerOf(t,
		"Pegadas de lama no chão", "Terra revirada recente",
		"Relógio parado às 10h", "Taça de vinho quebrada",
		"Livro de venenos aberto", "Chave enferrujada antiga",
	)
	for _, s := range []string{"Jardineiro", "Mordomo", "Governanta"} {
		v := Judge(l, caseIndex(t), s)
		assert.Equal(t, 2, v.Count, s)
		assert.Equal(t, Guilty, v.Outcome, s)
	}
}

func TestJudge_EmptyLedger(t *testing.T) {
	v := Judge(clue.NewLedger(), caseIndex(t), "Mordomo")
	assert.Equal(t, 0, v.Count)
	assert.Equal(t, InsufficientEvidence, v.Outcome)
	assert.NotNil(t, v.Evidence)
}

func TestJudge_UnattributedClueNotCounted(t *testing.T) {
	l := ledgerOf(t, "Bilhete rasgado", "Taça de vinho quebrada")
	v := Judge(l, caseIndex(t), "Mordomo")
	assert.Equal(t, 1, v.Count)
}

func TestJudge_CaseSensitiveName(t *testing.T) {
	l := ledgerOf(t, "Taça de vinho quebrada", "Relógio parado às 10h")
	assert.Equal(t, 0, Judge(l, caseIndex(t), "mordomo").Count)
	assert.Equal(t, 0, Judge(l, caseIndex(t), "Mordomo ").Count)
	assert.Equal(t, 0, Judge(l, caseIndex(t), "").Count)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "GUILTY", Guilty.String())
	assert.Equal(t, "INSUFFICIENT_EVIDENCE", InsufficientEvidence.String())
}

func TestMaxAttainable_ShippedCase(t *testing.T) {
	tree, idx := caseTree(t), caseIndex(t)
	assert.Equal(t, map[string]int{"Jardineiro": 2, "Mordomo": 1, "Governanta": 1}, MaxAttainable(tree, idx))
	assert.Equal(t, []string{"Jardineiro"}, Convictable(tree, idx))
	assert.True(t, Solvable(tree, idx))
}

func TestMaxAttainable_OnlyWinterGardenPathConvicts(t *testing.T) {
	tree, idx := caseTree(t), caseIndex(t)
	for _, path := range tree.Paths() {
		l := clue.NewLedger()
		for _, r := range path {
			if r.HasClue() {
				_, _ = l.Insert(r.Clue)
			}
		}
		end := path[len(path)-1].Name
		for _, s := range idx.Suspects() {
			want := InsufficientEvidence
			if end == "Jardim de Inverno" && s == "Jardineiro" {
				want = Guilty
			}
			assert.Equal(t, want, Judge(l, idx, s).Outcome, "path to %s, suspect %s", end, s)
		}
	}
}

func TestMaxAttainable_Solvable(t *testing.T) {
	tree, err := mansion.NewTree(&mansion.Room{
		Name:  "Hall",
		Clue:  "Relógio parado às 10h",
		Left:  &mansion.Room{Name: "Adega", Clue: "Taça de vinho quebrada"},
		Right: &mansion.Room{Name: "Porão", Clue: "Chave enferrujada antiga"},
	})
	require.NoError(t, err)
	idx := caseIndex(t)

	assert.Equal(t, 2, MaxAttainable(tree, idx)["Mordomo"])
	assert.Equal(t, []string{"Mordomo"}, Convictable(tree, idx))
	assert.True(t, Solvable(tree, idx))
}

func TestMaxAttainable_RepeatedClueCountsOnce(t *testing.T) {
	tree, err := mansion.NewTree(&mansion.Room{
		Name: "Hall",
		Clue: "Taça de vinho quebrada",
		Left: &mansion.Room{Name: "Copa", Clue: "Taça de vinho quebrada"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, MaxAttainable(tree, caseIndex(t))["Mordomo"])
}

func TestPropertyJudgeDeterministicAndConsistent(t *testing.T) {
	all := []string{
		"Pegadas de lama no chão", "Terra revirada recente",
		"Relógio parado às 10h", "Taça de vinho quebrada",
		"Livro de venenos aberto", "Chave enferrujada antiga",
		"Bilhete rasgado",
	}
	idx, err := suspect.FromAssociations([]suspect.Association{
		{Clue: all[0], Suspect: "Jardineiro"}, {Clue: all[1], Suspect: "Jardineiro"},
		{Clue: all[2], Suspect: "Mordomo"}, {Clue: all[3], Suspect: "Mordomo"},
		{Clue: all[4], Suspect: "Governanta"}, {Clue: all[5], Suspect: "Governanta"},
	})
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		picked := rapid.SliceOf(rapid.SampledFrom(all)).Draw(t, "clues")
		accused := rapid.SampledFrom([]string{"Jardineiro", "Mordomo", "Governanta", "Cozinheira"}).Draw(t, "accused")

		l := clue.NewLedger()
		for _, c := range picked {
			_, _ = l.Insert(c)
		}

		first := Judge(l, idx, accused)
		second := Judge(l, idx, accused)
		assert.Equal(t, first, second)

		want := 0
		for _, c := range l.InOrder() {
			if s, ok := idx.SuspectFor(c); ok && s == accused {
				want++
			}
		}
		if first.Count != want || len(first.Evidence) != want {
			t.Fatalf("Count = %d, Evidence = %d, want %d", first.Count, len(first.Evidence), want)
		}
		if (first.Count >= GuiltyThreshold) != (first.Outcome == Guilty) {
			t.Fatalf("count %d classified as %v", first.Count, first.Outcome)
		}
	})
}
