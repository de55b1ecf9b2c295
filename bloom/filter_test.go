package bloom_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docdex/docdex/bloom"
)

func TestFilter_AddedURLsAlwaysTestPositive(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	urls := make([]string, 100)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/docs/page-%d", i)
		f.Add(urls[i])
	}

	// No false negatives: every added URL tests positive.
	for _, u := range urls {
		assert.True(t, f.Test(u))
	}
}

func TestFilter_UnseenURLsMostlyTestNegative(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := 0; i < 100; i++ {
		f.Add(fmt.Sprintf("https://example.com/docs/page-%d", i))
	}

	falsePositives := 0
	for i := 0; i < 1000; i++ {
		if f.Test(fmt.Sprintf("https://example.com/other/page-%d", i)) {
			falsePositives++
		}
	}

	// Well under the configured 1% rate at this fill level, with slack.
	assert.Less(t, falsePositives, 50)
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := 0; i < 200; i++ {
		f.Add(fmt.Sprintf("https://example.com/docs/page-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 200, float64(count), 20)
}
