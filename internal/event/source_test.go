package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSourceDeliversTicksInOrder(t *testing.T) {
	src := NewSource(5 * time.Millisecond)
	defer func() {
		src.Stop()
		src.Wait()
	}()

	var last time.Time
	for i := 0; i < 3; i++ {
		select {
		case evt := <-src.Events():
			require.Equal(t, KindTick, evt.Kind)
			require.False(t, evt.Time.Before(last), "tick %d went backwards", i)
			last = evt.Time
		case <-time.After(time.Second):
			require.FailNow(t, "timed out waiting for tick", "tick %d", i)
		}
	}
}

func TestStopClosesChannel(t *testing.T) {
	src := NewSource(time.Hour)
	src.Stop()
	src.Wait()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "no tick after stop")
	case <-time.After(time.Second):
		require.FailNow(t, "events channel was not closed")
	}
}

func TestNonPositiveIntervalStillTicks(t *testing.T) {
	src := NewSource(0)
	defer func() {
		src.Stop()
		src.Wait()
	}()
	select {
	case evt := <-src.Events():
		assert.Equal(t, KindTick, evt.Kind)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "default interval never ticked")
	}
	assert.Equal(t, "tick", KindTick.String())
}
