package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampScan(t *testing.T) {
	want := time.Date(2026, 10, 19, 8, 30, 15, 123000000, time.UTC)

	cases := map[string]any{
		"sqlite text":      "2026-10-19 08:30:15.123",
		"sqlite bytes":     []byte("2026-10-19 08:30:15.123"),
		"rfc3339":          "2026-10-19T08:30:15.123Z",
		"native time":      want.In(time.FixedZone("TRT", 3*60*60)),
		"with zone offset": "2026-10-19 11:30:15.123+03:00",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, ts.Scan(src))
			assert.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		var ts Timestamp
		assert.Error(t, ts.Scan("yesterday"))
	})
}

func TestStatsSet(t *testing.T) {
	var stats Stats
	stats.Set(KindPackageSelection, 2)
	stats.Set(KindStrategyRecommendation, 1)
	stats.Set(KindContactForm, 3)
	assert.Equal(t, Stats{TotalPackages: 2, TotalRecommendations: 1, TotalContacts: 3}, stats)
}
