package logx

import (
	"fmt"

	"github.com/rs/zerolog"
)

// TemporalAdapter implements Temporal's log.Logger on zerolog so workflow and
// activity logging share the process sink.
type TemporalAdapter struct {
	log zerolog.Logger
}

func NewTemporalAdapter(log zerolog.Logger) *TemporalAdapter {
	return &TemporalAdapter{log: log}
}

func (a *TemporalAdapter) Debug(msg string, keyvals ...interface{}) {
	a.emit(a.log.Debug(), msg, keyvals)
}

func (a *TemporalAdapter) Info(msg string, keyvals ...interface{}) {
	a.emit(a.log.Info(), msg, keyvals)
}

func (a *TemporalAdapter) Warn(msg string, keyvals ...interface{}) {
	a.emit(a.log.Warn(), msg, keyvals)
}

func (a *TemporalAdapter) Error(msg string, keyvals ...interface{}) {
	a.emit(a.log.Error(), msg, keyvals)
}

func (a *TemporalAdapter) emit(evt *zerolog.Event, msg string, keyvals []interface{}) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		evt = evt.Interface(fmt.Sprint(keyvals[i]), keyvals[i+1])
	}
	evt.Msg(msg)
}
