package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLog(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	require.NoError(t, InitLog("DEBUG", false, "ipfwctl"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	require.NoError(t, InitLog("warn", false, "ipfwctl"))
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}

func TestInitLogInvalidLevel(t *testing.T) {
	assert.Error(t, InitLog("chatty", false, "ipfwctl"))
}

func TestSyslogHookErrorLevelsOnly(t *testing.T) {
	h := &errorHook{}
	assert.ElementsMatch(t, []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel}, h.Levels())
	assert.NotContains(t, h.Levels(), log.WarnLevel)
}
