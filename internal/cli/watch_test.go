package cli

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aferrors "github.com/aquaflow/aquaflow/internal/errors"
)

func TestWatchCommand_RequiresTerminal(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(*os.File) bool { return false }

	err := watchCommand(context.Background(), testConfig(t, "http://localhost:5000"))
	require.Error(t, err)
	assert.True(t, aferrors.IsCode(err, aferrors.ErrConfig))
	assert.Contains(t, err.Error(), "aquaflow snapshot")
}

func TestWatchCommand_BadTheme(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(*os.File) bool { return true }

	cfg := testConfig(t, "http://localhost:5000")
	cfg.Theme = "sepia"

	err := watchCommand(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}
