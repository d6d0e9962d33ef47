package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

func testReport() domain.Report {
	return domain.Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 7, 14, 5, 30, 0, 0, time.UTC),
		Location:    domain.Location{Name: "Kara Ada, Bodrum", Coordinate: domain.Coordinate{Lat: 36.971, Lon: 27.4575}},
		TargetDate:  "2026-07-14",
		Forecasts: []domain.ForecastSeries{
			{Model: "gfs_seamless", TargetDate: "2026-07-14", Times: []string{"2026-07-14T08:00"}, WindSpeed: []float64{9}},
		},
		Assessment: domain.Assessment{Verdict: domain.VerdictSuitable},
		Images:     domain.Images{Table: []byte{0x89, 'P', 'N', 'G'}},
	}
}

func TestSerializeToMessage(t *testing.T) {
	msg, err := serializeToMessage(testReport())
	require.NoError(t, err)

	assert.Equal(t, []byte("Kara Ada, Bodrum|2026-07-14"), msg.Key)
	assert.Contains(t, string(msg.Value), `"run_id":"run-1"`)
	assert.Contains(t, string(msg.Value), `"wind_speed_knots":[9]`)
	assert.NotContains(t, string(msg.Value), "Images", "images stay out of the message")

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "run_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("run-1"), msg.Headers[0].Value)
	assert.Equal(t, "verdict", msg.Headers[1].Key)
	assert.Equal(t, []byte("suitable"), msg.Headers[1].Value)
	assert.Equal(t, "generated_at", msg.Headers[2].Key)
	assert.Equal(t, []byte("2026-07-14T05:30:00Z"), msg.Headers[2].Value)
}

func TestSerializeToMessage_DecodesBack(t *testing.T) {
	msg, err := serializeToMessage(testReport())
	require.NoError(t, err)

	var got domain.Report
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Nil(t, got.Images.Table)
	f, ok := got.Forecast("gfs_seamless")
	require.True(t, ok)
	assert.Equal(t, []float64{9}, f.WindSpeed)
}
