package eventloop

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

// SetLogger replaces the package-level logger used for command errors and
// failed registry mutations. A fatal poller error is returned from Run, not
// logged here. Passing nil restores the default stderr JSON logger.
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

func logTokenErr(msg string, tok Token, err error) {
	currentLogger().Err().Uint64(`token`, uint64(tok)).Err(err).Log(msg)
}
