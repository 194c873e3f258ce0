package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelay(t *testing.T) {
	t.Parallel()

	base := 1000 * time.Millisecond
	assert.Equal(t, 1000*time.Millisecond, Delay(1, base, true))
	assert.Equal(t, 2000*time.Millisecond, Delay(2, base, true))
	assert.Equal(t, 4000*time.Millisecond, Delay(3, base, true))
	assert.Equal(t, base, Delay(3, base, false))
	assert.Equal(t, base, Delay(0, base, true))
}

func TestSleepHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
}
