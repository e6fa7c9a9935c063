package kvdb

import (
	"fmt"

	"github.com/golang/glog"
)

// glogLogger routes badger and pebble logging to glog.
type glogLogger struct {
	prefix string
}

func (l glogLogger) Errorf(format string, args ...interface{}) {
	glog.ErrorDepth(1, l.prefix+fmt.Sprintf(format, args...))
}

func (l glogLogger) Warningf(format string, args ...interface{}) {
	glog.WarningDepth(1, l.prefix+fmt.Sprintf(format, args...))
}

func (l glogLogger) Infof(format string, args ...interface{}) {
	if glog.V(1) {
		glog.InfoDepth(1, l.prefix+fmt.Sprintf(format, args...))
	}
}

func (l glogLogger) Debugf(format string, args ...interface{}) {
	if glog.V(3) {
		glog.InfoDepth(1, l.prefix+fmt.Sprintf(format, args...))
	}
}

func (l glogLogger) Fatalf(format string, args ...interface{}) {
	glog.FatalDepth(1, l.prefix+fmt.Sprintf(format, args...))
}
