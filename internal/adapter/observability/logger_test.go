package observability_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/observability"
	"github.com/balajircs83/AI-Interview-Platform/internal/config"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()
	lg := observability.SetupLogger(config.Config{AppEnv: "dev", OTELServiceName: "ai-interview-platform"})
	require.NotNil(t, lg)
	lg.Info("logger smoke test")

	lg = observability.SetupLogger(config.Config{AppEnv: "prod"})
	require.NotNil(t, lg)
}
