package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/recipes/", "200"))

	RecordAPIRequest("GET", "/api/recipes/", 200, 15*time.Millisecond)
	RecordAPIRequest("GET", "/api/recipes/", 200, 30*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/recipes/", "200"))
	assert.Equal(t, before+2, after)
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	assert.Equal(t, before+1, testutil.ToFloat64(APIActiveRequests))

	TrackActiveRequest(false)
	assert.Equal(t, before, testutil.ToFloat64(APIActiveRequests))
}

func TestDomainCounters(t *testing.T) {
	tests := []struct {
		name    string
		record  func()
		counter func() float64
	}{
		{
			name:    "short link created",
			record:  RecordShortLinkCreated,
			counter: func() float64 { return testutil.ToFloat64(ShortLinksCreated) },
		},
		{
			name:    "short link collision",
			record:  RecordShortLinkCollision,
			counter: func() float64 { return testutil.ToFloat64(ShortLinkCollisions) },
		},
		{
			name:    "shopping list exported",
			record:  RecordShoppingListExport,
			counter: func() float64 { return testutil.ToFloat64(ShoppingListsExported) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.counter()
			tt.record()
			assert.Equal(t, before+1, tt.counter())
		})
	}
}
