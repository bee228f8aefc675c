package horary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newAnalyzer(t *testing.T) *QuestionAnalyzer {
	t.Helper()
	return NewQuestionAnalyzer(testConfig(t), testLogger(t))
}

func TestQuestionTypeMapping(t *testing.T) {
	a := newAnalyzer(t)

	cases := []struct {
		question string
		kind     string
		house    int
	}{
		{"Will I get the job?", "career", 10},
		{"Will he marry me?", "relationship", 7},
		{"Where is my lost watch?", "lost_object", 2},
		{"Will I be paid what I am owed?", "money", 2},
		{"Will I recover from this illness?", "illness", 6},
		{"Will I win the lawsuit?", "lawsuit", 7},
		{"Should I travel abroad this year?", "travel", 9},
		{"Will I pass the examination?", "education", 9},
		{"Is she pregnant?", "pregnancy", 5},
		{"Will it go well?", "general", 7},
	}
	for _, tc := range cases {
		got := a.Analyze(tc.question)
		assert.Equal(t, tc.kind, got.QuestionType, tc.question)
		assert.Equal(t, tc.house, got.Significators.QuesitedHouse, tc.question)
		assert.Equal(t, 1, got.Significators.QuerentHouse)
	}
}

func TestTurnedHousesForThirdParty(t *testing.T) {
	a := newAnalyzer(t)

	// Mother is the 10th; her illness is the 6th from the 10th, the radical 3rd.
	got := a.Analyze("Will my mother recover from her illness?")
	assert.Equal(t, "illness", got.QuestionType)
	assert.Equal(t, 3, got.Significators.QuesitedHouse)

	// Father is the 4th; his money is the 2nd from the 4th, the radical 5th.
	got = a.Analyze("Will my father get his money back?")
	assert.Equal(t, "money", got.QuestionType)
	assert.Equal(t, 5, got.Significators.QuesitedHouse)

	// A relationship question about a named partner stays radical.
	got = a.Analyze("Will my partner and I stay together?")
	assert.Equal(t, "relationship", got.QuestionType)
	assert.Equal(t, 7, got.Significators.QuesitedHouse)

	// A general question about a sibling points at their radical house.
	got = a.Analyze("How is my brother doing?")
	assert.Equal(t, 3, got.Significators.QuesitedHouse)
}

func TestTurnHouseWraps(t *testing.T) {
	assert.Equal(t, 7, turnHouse(10, 10))
	assert.Equal(t, 3, turnHouse(10, 6))
	assert.Equal(t, 12, turnHouse(5, 8))
	assert.Equal(t, 1, turnHouse(1, 1))
}

func TestNaturalSignificators(t *testing.T) {
	a := newAnalyzer(t)

	got := a.Analyze("Does she love me?")
	assert.Contains(t, got.Significators.Special, "Venus")
	assert.Equal(t, "co-significator of querent", got.Significators.MoonRole)
	assert.Contains(t, got.RelevantHouses, 1)
	assert.Contains(t, got.RelevantHouses, 7)
}
