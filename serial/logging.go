package serial

import (
	"os"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

func defaultLogger() *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)))
}

var (
	loggerMu sync.RWMutex
	logger   = defaultLogger()
)

// SetLogger replaces the package-level logger used for per-connection
// processing errors. Passing nil restores the default stderr JSON logger.
func SetLogger(l *logiface.Logger[*stumpy.Event]) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		logger = defaultLogger()
		return
	}
	logger = l
}

func currentLogger() *logiface.Logger[*stumpy.Event] {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func logErr(msg string, err error) {
	currentLogger().Err().Err(err).Log(msg)
}
