package telemetry_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mutant/internal/adapters/telemetry"
)

type flushRecorder struct {
	mu      sync.Mutex
	batches []string
}

func (r *flushRecorder) onFlush(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, string(data))
}

func (r *flushRecorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.batches...)
}

func TestBatchProcessor_FlushesOnSize(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(4, time.Hour, rec.onFlush)
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Empty(t, rec.get())

	_, err = bp.Write([]byte("cd"))
	require.NoError(t, err)
	assert.Equal(t, []string{"abcd"}, rec.get())
}

func TestBatchProcessor_FlushesOnTime(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &flushRecorder{}
		bp := telemetry.NewBatchProcessor(1024, 100*time.Millisecond, rec.onFlush)
		defer func() { _ = bp.Close() }()

		_, err := bp.Write([]byte("line\n"))
		require.NoError(t, err)

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []string{"line\n"}, rec.get())
	})
}

func TestBatchProcessor_CloseFlushesAndRejectsWrites(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(1024, time.Hour, rec.onFlush)

	_, err := bp.Write([]byte("pending"))
	require.NoError(t, err)

	require.NoError(t, bp.Close())
	require.NoError(t, bp.Close())
	assert.Equal(t, []string{"pending"}, rec.get())

	_, err = bp.Write([]byte("late"))
	require.Error(t, err)
}

func TestBatchProcessor_FlushEmptyIsNoop(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(0, 0, rec.onFlush)
	defer func() { _ = bp.Close() }()

	bp.Flush()
	assert.Empty(t, rec.get())
}
