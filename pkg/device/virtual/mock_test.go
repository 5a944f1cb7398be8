package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMockRecordsWrites(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := Mock(zap.New(core))

	buf := []byte{1, 2, 3}
	n, err := m.Write(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	buf[0] = 9

	_, err = m.Write([]byte{4})
	require.NoError(t, err)

	assert.Equal(t, [][]byte{{1, 2, 3}, {4}}, m.Frames())
	require.Equal(t, 2, logs.FilterMessage("write").Len())
	assert.Equal(t, int64(3), logs.FilterMessage("write").All()[0].ContextMap()["bytes"])

	require.NoError(t, m.Close())
	assert.True(t, m.Closed())
	_, err = m.Write([]byte{5})
	assert.Error(t, err)
}

func TestMockPreview(t *testing.T) {
	m := Mock(zap.NewNop())
	_, _ = m.Write([]byte{0x81, 0x18})

	out, err := m.Preview(0, 8, 2)
	require.NoError(t, err)
	assert.Equal(t, "#      #\n   ##   ", out)

	_, err = m.Preview(1, 8, 2)
	assert.Error(t, err)
	_, err = m.Preview(0, 128, 64)
	assert.Error(t, err)
}
