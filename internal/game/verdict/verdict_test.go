package verdict_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"detectivequest/internal/game/clues"
	"detectivequest/internal/game/suspects"
	"detectivequest/internal/game/verdict"
)

type countingIndex struct {
	inner   *suspects.Index
	lookups int
}

func (c *countingIndex) Lookup(clue string) (string, bool) {
	c.lookups++
	return c.inner.Lookup(clue)
}

func ledgerOf(cs ...string) *clues.Ledger {
	l := clues.NewLedger()
	for _, c := range cs {
		l.Insert(c)
	}
	return l
}

func indexOf(pairs ...[2]string) *countingIndex {
	ix := suspects.NewIndex(suspects.DefaultBuckets)
	for _, p := range pairs {
		ix.Put(p[0], p[1])
	}
	return &countingIndex{inner: ix}
}

func TestRender(t *testing.T) {
	rosa := indexOf(
		[2]string{"Vidro quebrado", "Sra. Rosa"},
		[2]string{"Livro deslocado", "Sra. Rosa"},
		[2]string{"Fibra vermelha", "Sra. Rosa"},
	)
	threeRosa := ledgerOf("Vidro quebrado", "Livro deslocado", "Fibra vermelha")

	preto := indexOf(
		[2]string{"Faca com impressões", "Sr. Preto"},
		[2]string{"Carta rasgada", "Sr. Preto"},
		[2]string{"Frascos vazios", "Dr. Azul"},
	)
	twoPreto := ledgerOf("Faca com impressões", "Carta rasgada", "Frascos vazios")

	tests := []struct {
		name      string
		ledger    *clues.Ledger
		index     *countingIndex
		accused   string
		wantCount int
		want      verdict.Outcome
		wantClues []string
	}{
		{
			name:      "three clues support",
			ledger:    threeRosa,
			index:     rosa,
			accused:   "Sra. Rosa",
			wantCount: 3,
			want:      verdict.Supported,
			wantClues: []string{"Fibra vermelha", "Livro deslocado", "Vidro quebrado"},
		},
		{
			name:    "innocent is weak",
			ledger:  threeRosa,
			index:   rosa,
			accused: "Sr. Verde",
			want:    verdict.Weak,
		},
		{
			name:      "exactly two at threshold",
			ledger:    twoPreto,
			index:     preto,
			accused:   "Sr. Preto",
			wantCount: 2,
			want:      verdict.Supported,
			wantClues: []string{"Carta rasgada", "Faca com impressões"},
		},
		{
			name:      "one clue is weak",
			ledger:    twoPreto,
			index:     preto,
			accused:   "Dr. Azul",
			wantCount: 1,
			want:      verdict.Weak,
			wantClues: []string{"Frascos vazios"},
		},
		{
			name:    "case sensitive names",
			ledger:  threeRosa,
			index:   rosa,
			accused: "sra. rosa",
			want:    verdict.Weak,
		},
		{
			name:    "clue missing from index counts nothing",
			ledger:  ledgerOf("Pegada pequena"),
			index:   rosa,
			accused: "Sra. Rosa",
			want:    verdict.Weak,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.ledger.InOrder()

			v := verdict.Render(tt.ledger, tt.index, tt.accused)

			require.Equal(t, tt.accused, v.Accused)
			require.Equal(t, tt.wantCount, v.Count)
			require.Equal(t, tt.want, v.Outcome)
			require.Equal(t, tt.wantClues, v.Clues)
			require.Equal(t, before, tt.ledger.InOrder(), "ledger must not change")
		})
	}
}

func TestRender_EmptyLedgerSkipsLookups(t *testing.T) {
	ix := indexOf([2]string{"Vidro quebrado", "Sra. Rosa"})

	v := verdict.Render(clues.NewLedger(), ix, "Sra. Rosa")

	require.Equal(t, verdict.NoEvidence, v.Outcome)
	require.Zero(t, v.Count)
	require.Zero(t, ix.lookups)
}

func TestRender_NoAccusedSkipsLookups(t *testing.T) {
	ix := indexOf([2]string{"Vidro quebrado", "Sra. Rosa"})

	v := verdict.Render(ledgerOf("Vidro quebrado"), ix, "")

	require.Equal(t, verdict.NoAccusation, v.Outcome)
	require.Zero(t, ix.lookups)
}

func TestRender_LooksUpEveryClueOnce(t *testing.T) {
	ix := indexOf([2]string{"a", "X"}, [2]string{"b", "Y"}, [2]string{"c", "X"})

	v := verdict.Render(ledgerOf("c", "a", "b", "a"), ix, "X")

	require.Equal(t, 3, ix.lookups)
	require.Equal(t, []string{"a", "c"}, v.Clues)
	require.Equal(t, verdict.Supported, v.Outcome)
}
