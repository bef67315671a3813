package server

import (
	"context"
	"testing"

	"Diversonal/pkg/config"
	xhttp "Diversonal/pkg/http"

	"github.com/stretchr/testify/require"
)

func TestRunContextStopsOnCancel(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	srv := xhttp.NewServer(nil, xhttp.WithHost("127.0.0.1"), xhttp.WithPort(0), xhttp.WithMetricsPath(""))
	app := New(cfg, nil, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, app.RunContext(ctx))
}
