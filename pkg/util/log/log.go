package log

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/weaveworks/common/logging"
)

var (
	// Logger is a shared go-kit logger.
	Logger = log.NewNopLogger()
)

// InitLogger initialises the global logger according to the log level and
// format flags. Messages are written to stderr.
func InitLogger(lvl logging.Level, format logging.Format) {
	Logger = NewLogger(os.Stderr, lvl, format)
}

// NewLogger returns a logger writing to w, filtered by lvl and encoded as
// logfmt or JSON depending on format.
func NewLogger(w io.Writer, lvl logging.Level, format logging.Format) log.Logger {
	var logger log.Logger
	if format.String() == "json" {
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}

	// An unset level has no go-kit option; default to info like the flag does.
	if lvl.Gokit != nil {
		logger = level.NewFilter(logger, lvl.Gokit)
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// CheckFatal prints an error and exits with error code 1 if err is non-nil
func CheckFatal(location string, err error) {
	if err != nil {
		logger := level.Error(Logger)
		if location != "" {
			logger = log.With(logger, "msg", "error "+location)
		}
		// %+v gets the stack trace from errors using github.com/pkg/errors
		logger.Log("err", fmt.Sprintf("%+v", err))
		os.Exit(1)
	}
}
