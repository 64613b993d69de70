package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gramhealth-go/internal/classifier"
)

func scored(pairs ...interface{}) []classifier.Scored {
	out := make([]classifier.Scored, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, classifier.Scored{Class: pairs[i].(string), Probability: pairs[i+1].(float64)})
	}
	return out
}

func TestTopKRenormalizes(t *testing.T) {
	r := TopK(scored("C", 0.1, "A", 0.6, "B", 0.3), DefaultK)
	require.Len(t, r, 3)

	assert.Equal(t, "A", r[0].Class)
	assert.Equal(t, "B", r[1].Class)
	assert.Equal(t, "C", r[2].Class)
	assert.InDelta(t, 60.0, r[0].Percent, 1e-9)
	assert.InDelta(t, 30.0, r[1].Percent, 1e-9)
	assert.InDelta(t, 10.0, r[2].Percent, 1e-9)
	assert.Equal(t, []string{"60.0%", "30.0%", "10.0%"}, []string{r[0].Label(), r[1].Label(), r[2].Label()})
}

func TestTopKSumsToHundredOverSubset(t *testing.T) {
	r := TopK(scored("A", 0.05, "B", 0.4, "C", 0.2, "D", 0.25, "E", 0.1), 3)
	require.Len(t, r, 3)
	assert.Equal(t, []string{"B", "D", "C"}, []string{r[0].Class, r[1].Class, r[2].Class})

	var sum float64
	for _, e := range r {
		sum += e.Percent
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
	assert.InDelta(t, 0.4, r[0].Raw, 1e-12)
}

func TestTopKAllZero(t *testing.T) {
	r := TopK(scored("X", 0.0, "Y", 0.0, "Z", 0.0, "W", 0.0), 3)
	require.Len(t, r, 3)
	assert.Equal(t, []string{"X", "Y", "Z"}, []string{r[0].Class, r[1].Class, r[2].Class})
	for _, e := range r {
		assert.Equal(t, 0.0, e.Percent)
		assert.Equal(t, "0.0%", e.Label())
	}
}

func TestTopKStableTies(t *testing.T) {
	r := TopK(scored("A", 0.2, "B", 0.4, "C", 0.2, "D", 0.2), 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{r[0].Class, r[1].Class, r[2].Class})
}

func TestTopKFewerClassesThanK(t *testing.T) {
	r := TopK(scored("A", 0.25, "B", 0.75), 3)
	require.Len(t, r, 2)
	primary, ok := r.Primary()
	require.True(t, ok)
	assert.Equal(t, "B", primary.Class)
	assert.Len(t, r.Differentials(), 1)

	_, ok = TopK(nil, 3).Primary()
	assert.False(t, ok)
	assert.Nil(t, TopK(scored("A", 1.0), 0).Differentials())
}

func TestTopKDoesNotMutateInput(t *testing.T) {
	in := scored("A", 0.1, "B", 0.9)
	TopK(in, 3)
	assert.Equal(t, "A", in[0].Class)
}

func TestEntryBarTruncates(t *testing.T) {
	assert.Equal(t, 66, Entry{Percent: 66.99}.Bar())
	assert.Equal(t, "67.0%", Entry{Percent: 66.99}.Label())
}
