package tglog

import "github.com/joeycumines/logiface"

// FromLogiface adapts a [logiface.Logger] to [Logger]. A nil l behaves as
// [NoOp].
func FromLogiface(l *logiface.Logger[logiface.Event]) Logger {
	if l == nil {
		return NoOp()
	}
	return logifaceLogger{l: l}
}

type logifaceLogger struct {
	l *logiface.Logger[logiface.Event]
}

func (x logifaceLogger) Dropped(category string, err error, fields map[string]any) {
	b := x.l.Err().Err(err).Field(`category`, category)
	for k, v := range fields {
		b = b.Field(k, v)
	}
	b.Log(`dropped fire-and-forget task error`)
}
