package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"badapple/pkg/device"
)

func frameDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bmp"), []byte{1}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bmp"), []byte{2}, 0644))
	return dir
}

func TestRunVirtual(t *testing.T) {
	*serial = device.Virtual
	*dir = frameDir(t)
	*settle = 0
	*delay = 0

	require.NoError(t, run(context.Background(), zap.NewNop()))
}

func TestRunInterrupted(t *testing.T) {
	*serial = device.Virtual
	*dir = frameDir(t)
	*settle = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	err := run(ctx, zap.NewNop())
	require.Error(t, err)
	assert.True(t, interrupted(ctx, err))
}

func TestInterrupted(t *testing.T) {
	live := context.Background()
	assert.False(t, interrupted(live, errors.New("device gone")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, interrupted(ctx, errors.Wrap(context.Canceled, "send")))
	assert.False(t, interrupted(ctx, errors.New("device gone")))
}
