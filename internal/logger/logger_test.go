package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logging.DEBUG, ParseLevel("debug"))
	assert.Equal(t, logging.WARNING, ParseLevel(" Warning "))
	assert.Equal(t, logging.INFO, ParseLevel("nonsense"))
}

func TestLevelFilteringAndBuffer(t *testing.T) {
	var out bytes.Buffer
	InitLogger(logging.WARNING, &out)
	t.Cleanup(func() { InitLogger(logging.INFO, &bytes.Buffer{}) })

	Infof("quiet %d", 1)
	Warningf("loud %d", 2)
	Errorf("louder %d", 3)

	assert.NotContains(t, out.String(), "quiet 1")
	assert.Contains(t, out.String(), "loud 2")

	// буфер хранит всё, фильтр применяется при чтении
	errs := GetLogs(10, "error")
	require.NotEmpty(t, errs)
	assert.True(t, strings.HasSuffix(errs[0], "louder 3"))
	for _, line := range errs {
		assert.NotContains(t, line, "quiet 1")
	}

	infos := GetLogs(3, "info")
	require.Len(t, infos, 3)
	assert.True(t, strings.HasSuffix(infos[2], "quiet 1"))
}
