package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventTimestamp(t *testing.T) {
	got, err := parseEventTimestamp("2026-03-14", "22:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC), got)

	got, err = parseEventTimestamp("2026-03-14", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got, "missing clock defaults to midnight")
}

func TestParseEventTimestampErrors(t *testing.T) {
	_, err := parseEventTimestamp("14-03-2026", "")
	assert.Error(t, err)

	_, err = parseEventTimestamp("2026-03-14", "10pm")
	assert.Error(t, err)
}

func TestMarshalLineupDropsBlanks(t *testing.T) {
	raw := marshalLineup([]string{"DJ Nova", "  ", "", "MC Flux"})

	var lineup []string
	require.NoError(t, json.Unmarshal(raw, &lineup))
	assert.Equal(t, []string{"DJ Nova", "MC Flux"}, lineup)
}

func TestMarshalLineupEmpty(t *testing.T) {
	var lineup []string
	require.NoError(t, json.Unmarshal(marshalLineup(nil), &lineup))
	assert.Empty(t, lineup)
}

func TestMarshalPriceTiersDropsEmptyLabels(t *testing.T) {
	raw := marshalPriceTiers(map[string]float64{
		"early bird": 15,
		"door":       25,
		"  ":         99,
	})

	var tiers map[string]float64
	require.NoError(t, json.Unmarshal(raw, &tiers))
	assert.Equal(t, map[string]float64{"early bird": 15, "door": 25}, tiers)
}
