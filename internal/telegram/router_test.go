package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/artem20051205/bady/internal/survey"
)

func TestParseAnswer(t *testing.T) {
	qid, a, ok := parseAnswer("yes:3")
	require.True(t, ok)
	require.Equal(t, 3, qid)
	require.Equal(t, survey.AnswerYes, a)

	_, a, ok = parseAnswer("no:0")
	require.True(t, ok)
	require.Equal(t, survey.AnswerNo, a)

	_, a, ok = parseAnswer("skip:12")
	require.True(t, ok)
	require.Equal(t, survey.AnswerSkip, a)

	for _, bad := range []string{"yes", "yes:", "yes:x", "yes:-1", "maybe:3", "start_test", ""} {
		if _, _, ok := parseAnswer(bad); ok {
			t.Errorf("parseAnswer(%q) unexpectedly ok", bad)
		}
	}
}
