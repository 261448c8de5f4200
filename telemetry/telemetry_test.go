package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_Disabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(false, &buf)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.Empty(t, buf.String())
}

func TestSetup_ExportsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	shutdown, err := Setup(true, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "catalog.reload")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"catalog.reload"`)
	assert.Contains(t, buf.String(), serviceName)
}
