package logging

import (
	"fmt"
	"log/syslog"

	log "github.com/sirupsen/logrus"
	lsyslog "github.com/sirupsen/logrus/hooks/syslog"
)

// AddSyslogHook forwards the logger's error entries to the local syslog
// daemon with the LOG_DAEMON facility.
func AddSyslogHook(logger *log.Logger, tag string) error {
	hook, err := lsyslog.NewSyslogHook("", "", syslog.LOG_ERR|syslog.LOG_DAEMON, tag)
	if err != nil {
		return fmt.Errorf("connecting to syslog: %w", err)
	}
	logger.AddHook(&errorHook{SyslogHook: hook})
	return nil
}

// errorHook limits the syslog hook to error, fatal and panic entries.
type errorHook struct {
	*lsyslog.SyslogHook
}

func (h *errorHook) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel}
}
