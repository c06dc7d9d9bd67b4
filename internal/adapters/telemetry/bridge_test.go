package telemetry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/mutant/internal/adapters/telemetry"
	"go.trai.ch/mutant/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_LogsSpanLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		logger.EXPECT().Info("trace: unit started"),
		logger.EXPECT().Info(gomock.Cond(func(msg string) bool {
			return strings.HasPrefix(msg, "trace: unit finished in ")
		})),
	)

	tracer := telemetry.NewOTelTracer("test", telemetry.NewBridge(logger))
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	_, span := tracer.Start(context.Background(), "unit")
	span.End()
}

func TestBridge_LogsFailedSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	var logged error
	logger.EXPECT().Info("trace: unit started")
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	tracer := telemetry.NewOTelTracer("test", telemetry.NewBridge(logger))
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	_, span := tracer.Start(context.Background(), "unit")
	span.RecordError(assert.AnError)
	span.End()

	require.Error(t, logged)
	assert.Contains(t, logged.Error(), "trace: unit failed")
}

func TestBridge_NilLogger(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "unit")
	span.End()

	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}
