package chrono

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"steamtrader/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestStandardImpl(t *testing.T) {
	clock, err := NewStandardImpl("Europe/Moscow")
	require.NoError(t, err)
	require.Equal(t, "Europe/Moscow", clock.Now().Location().String())

	local, err := NewStandardImpl("")
	require.NoError(t, err)
	require.Equal(t, time.Local, local.Location())

	_, err = NewStandardImpl("Nowhere/Special")
	require.Error(t, err)
}

func TestStandardCron(t *testing.T) {
	clock, err := NewStandardImpl("")
	require.NoError(t, err)
	rec := &telemetry.Recorder{}
	cron := NewStandardCron(rec, clock)

	require.Error(t, cron.Cron("not a spec", func() {}))

	var runs atomic.Int32
	require.NoError(t, cron.Cron("@every 1s", func() { runs.Add(1) }))
	require.Eventually(t, func() bool { return runs.Load() > 0 }, time.Second*3, time.Millisecond*50)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, cron.Stop(ctx))
}

func TestCronRecoversPanics(t *testing.T) {
	clock, err := NewStandardImpl("")
	require.NoError(t, err)
	rec := &telemetry.Recorder{}
	cron := NewStandardCron(rec, clock)
	t.Cleanup(func() { cron.Stop(context.Background()) })

	require.NoError(t, cron.Cron("@every 1s", func() { panic("boom") }))
	require.Eventually(t, func() bool {
		return len(rec.Find(telemetry.LevelBroken, "job")) > 0
	}, time.Second*3, time.Millisecond*50)
}
