package logging

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// InitLog parses and sets the log level and installs the text formatter.
// With useSyslog set, error and more severe entries are also sent to the
// system log under tag.
func InitLog(logLevel string, useSyslog bool, tag string) error {
	level, err := log.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		log.Errorf("Failed parsing log-level %s: %s", logLevel, err)
		return err
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(level)

	if useSyslog {
		return AddSyslogHook(log.StandardLogger(), tag)
	}
	return nil
}
