package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatements = []CopyStatement{
	StatementNew, StatementGood, StatementDamaged, StatementRepair, StatementUnusable,
}

// TestStatementTransitionTable pins the full transition table: every
// (current, target) pair is either allowed or rejected, nothing is
// left undefined.
func TestStatementTransitionTable(t *testing.T) {
	allowed := map[CopyStatement]map[CopyStatement]bool{
		StatementNew: {
			StatementNew: true, StatementGood: true, StatementDamaged: true,
			StatementRepair: true, StatementUnusable: true,
		},
		StatementGood: {
			StatementGood: true, StatementDamaged: true,
			StatementRepair: true, StatementUnusable: true,
		},
		StatementDamaged: {
			StatementRepair: true, StatementUnusable: true,
		},
		StatementRepair:   {},
		StatementUnusable: {StatementRepair: true},
	}

	for _, from := range allStatements {
		for _, to := range allStatements {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatementGradedCopyNeverReturnsToNew(t *testing.T) {
	for _, from := range allStatements {
		if from == StatementNew {
			continue
		}
		assert.False(t, from.CanTransitionTo(StatementNew), "%s -> new must be rejected", from)
	}
}

func TestParseCopyStatus(t *testing.T) {
	got, err := ParseCopyStatus("borrowed")
	assert.NoError(t, err)
	assert.Equal(t, CopyBorrowed, got)

	_, err = ParseCopyStatus("decommissioned")
	assert.Error(t, err)
}

func TestParseCopyStatement(t *testing.T) {
	got, err := ParseCopyStatement("repair")
	assert.NoError(t, err)
	assert.Equal(t, StatementRepair, got)

	_, err = ParseCopyStatement("mint")
	assert.Error(t, err)
}
