package lockstep

import (
	"testing"

	"github.com/citysim/engine/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(from string) command.WorldCommand {
	return command.WorldCommand{
		Kind:        command.KindSendMessage,
		SendMessage: &command.SendMessage{From: from, Text: "hi"},
	}
}

func TestSubmitReleasesOnlyOnceEveryParticipantHasSubmitted(t *testing.T) {
	h := New(3)

	_, ready := h.Submit(0, 0, []command.WorldCommand{msg("a")})
	assert.False(t, ready)
	assert.Equal(t, 1, h.Pending(0))

	_, ready = h.Submit(0, 1, []command.WorldCommand{msg("b")})
	assert.False(t, ready)

	merged, ready := h.Submit(0, 2, []command.WorldCommand{msg("c")})
	require.True(t, ready)
	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].SendMessage.From)
	assert.Equal(t, "b", merged[1].SendMessage.From)
	assert.Equal(t, "c", merged[2].SendMessage.From)

	assert.Equal(t, 0, h.Pending(0))
}

func TestSubmitMergesInParticipantIDOrderRegardlessOfSubmissionOrder(t *testing.T) {
	h := New(2)

	h.Submit(0, 1, []command.WorldCommand{msg("later-id")})
	merged, ready := h.Submit(0, 0, []command.WorldCommand{msg("lower-id")})

	require.True(t, ready)
	require.Len(t, merged, 2)
	assert.Equal(t, "lower-id", merged[0].SendMessage.From)
	assert.Equal(t, "later-id", merged[1].SendMessage.From)
}

func TestReportHashWithNoDivergenceLeavesErrNil(t *testing.T) {
	h := New(2)
	h.ReportHash(0, 0, 111)
	h.ReportHash(0, 1, 111)
	assert.NoError(t, h.Err())
}

func TestReportHashDivergenceNamesEarliestFrame(t *testing.T) {
	h := New(2)
	h.ReportHash(0, 0, 111)
	h.ReportHash(0, 1, 111)
	h.ReportHash(1, 0, 222)
	h.ReportHash(1, 1, 333)
	h.ReportHash(2, 0, 444)
	h.ReportHash(2, 1, 555)

	err := h.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 1")
}
