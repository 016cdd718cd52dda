package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/numen/pkg/kit"
	"github.com/hazyhaar/numen/pkg/numerology"
	"github.com/hazyhaar/numen/pkg/wordsearch"
)

func TestInstrument(t *testing.T) {
	m := New(nil)
	ok := kit.Chain(kit.Named("reduce_number"), m.Instrument())(func(context.Context, any) (any, error) {
		return 1, nil
	})
	bad := kit.Chain(kit.Named("reduce_number"), m.Instrument())(func(context.Context, any) (any, error) {
		return nil, fmt.Errorf("reduce: %w", numerology.ErrInvalidNumber)
	})

	ctx := kit.WithTransport(context.Background(), "cli")
	_, _ = ok(ctx, nil)
	_, _ = ok(ctx, nil)
	_, _ = bad(ctx, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("reduce_number", "cli", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("reduce_number", "cli", "invalid")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	ep := m.Instrument()(func(context.Context, any) (any, error) { return "x", nil })
	resp, err := ep(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "x", resp)
	m.ObserveSearch(&wordsearch.Result{Examined: 3})
}

func TestObserveSearchAndHandler(t *testing.T) {
	m := New(nil)
	m.ObserveSearch(&wordsearch.Result{Words: []string{"a"}, Examined: 26})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "numen_search_candidates_count 1")
	assert.Contains(t, string(body), "numen_search_matches_sum 1")
}

type hostError struct{}

func (hostError) Error() string      { return "too many names" }
func (hostError) InvalidInput() bool { return true }

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "invalid", Outcome(wordsearch.ErrInvalidSearchParameters))
	assert.Equal(t, "invalid", Outcome(&numerology.LetterError{Letter: '*'}))
	assert.Equal(t, "invalid", Outcome(fmt.Errorf("wrapped: %w", hostError{})))
	assert.Equal(t, "error", Outcome(errors.New("disk on fire")))
}
