package countdown

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		offset time.Duration
		want   string
	}{
		{"normal with days", 90_061 * time.Second, "01:01:01:01  [normal]"},
		{"urgent", 30 * time.Minute, "00:30:00  [urgent]"},
		{"critical", 500 * time.Second, "00:08:20  [critical]  FINAL COUNTDOWN"},
		{"expired", -5 * time.Second, "TIME'S UP! Done."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Line(Evaluate(epoch.Add(tt.offset), epoch), "Done."))
		})
	}

	assert.Equal(t, "TIME'S UP!", Line(Evaluate(epoch, epoch), ""))
	assert.Equal(t, "Set a deadline to start the countdown", Line(Evaluate(time.Time{}, epoch), ""))
}

func TestPrintSnapshot(t *testing.T) {
	t.Parallel()

	snap := Evaluate(epoch.Add(90_061*time.Second), epoch)

	var text bytes.Buffer
	require.NoError(t, PrintSnapshot(&text, snap, "", false))
	assert.Equal(t, "01:01:01:01  [normal]\n", text.String())

	var out bytes.Buffer
	require.NoError(t, PrintSnapshot(&out, snap, "", true))
	var raw map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &raw))
	assert.InDelta(t, 1, raw["days"], 0)
	assert.InDelta(t, 90_061_000, raw["total_ms"], 0)
	assert.Equal(t, "normal", raw["urgency"])
}
