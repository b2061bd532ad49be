package kafka

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvierula/climpoint/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	processed := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	record := domain.Record{
		Site:        "S01",
		Category:    "picea",
		Subperiod:   "jan",
		Layer:       "RSMS_01_2000_01",
		Month:       "01",
		Year:        "2000",
		Value:       12.5,
		ProcessedAt: processed,
	}

	msg, err := serializeToMessage(record)
	require.NoError(t, err)

	assert.Equal(t, []byte("S01"), msg.Key)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "jan", headers["subperiod"])
	assert.Equal(t, "RSMS_01_2000_01", headers["layer"])
	assert.Equal(t, "2026-03-14T09:00:00Z", headers["processed_at"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "S01", decoded["site"])
	assert.Equal(t, "2000", decoded["year"])
	assert.Equal(t, "01", decoded["month"])
	assert.Equal(t, 12.5, decoded["value"])
}

func TestSerializeToMessage_MissingValue(t *testing.T) {
	record := domain.Record{
		Site:      "S02",
		Category:  "pinus",
		Subperiod: "jul",
		Layer:     "RSMS_07_1950_01",
		Month:     "07",
		Year:      "1950",
		Value:     math.NaN(),
	}

	msg, err := serializeToMessage(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	val, present := decoded["value"]
	assert.True(t, present)
	assert.Nil(t, val, "missing marker encodes as null, not NaN")
}
