package infolist

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Debug wraps a Host and logs every call made through it at debug level.
// If logger is nil, a console logger writing to stdout is used.
func Debug(h Host, logger *zerolog.Logger) Host {
	if logger == nil {
		l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		logger = &l
	}

	return debugHost{h: h, log: logger.With().Str("component", "infolist").Logger()}
}

type debugHost struct {
	h   Host
	log zerolog.Logger
}

func (d debugHost) OpenQuery(ctx context.Context, name string, pointer Pointer, arguments string) (Pointer, error) {
	handle, err := d.h.OpenQuery(ctx, name, pointer, arguments)
	d.log.Debug().
		Str("call", "open").
		Str("name", name).
		Str("pointer", string(pointer)).
		Str("arguments", arguments).
		Str("handle", string(handle)).
		Err(err).
		Msg("infolist call")
	return handle, err
}

func (d debugHost) FreeQuery(handle Pointer) {
	d.log.Debug().Str("call", "free").Str("handle", string(handle)).Msg("infolist call")
	d.h.FreeQuery(handle)
}

func (d debugHost) AdvanceQuery(handle Pointer) bool {
	ok := d.h.AdvanceQuery(handle)
	d.log.Debug().Str("call", "next").Str("handle", string(handle)).Bool("ok", ok).Msg("infolist call")
	return ok
}

func (d debugHost) Fields(handle Pointer) string {
	fields := d.h.Fields(handle)
	d.log.Debug().Str("call", "fields").Str("handle", string(handle)).Str("fields", fields).Msg("infolist call")
	return fields
}

func (d debugHost) Integer(handle Pointer, field string) int {
	v := d.h.Integer(handle, field)
	d.get("integer", handle, field).Int("value", v).Msg("infolist call")
	return v
}

func (d debugHost) String(handle Pointer, field string) string {
	v := d.h.String(handle, field)
	d.get("string", handle, field).Str("value", v).Msg("infolist call")
	return v
}

func (d debugHost) Pointer(handle Pointer, field string) Pointer {
	v := d.h.Pointer(handle, field)
	d.get("pointer", handle, field).Str("value", string(v)).Msg("infolist call")
	return v
}

func (d debugHost) Time(handle Pointer, field string) time.Time {
	v := d.h.Time(handle, field)
	d.get("time", handle, field).Time("value", v).Msg("infolist call")
	return v
}

func (d debugHost) get(call string, handle Pointer, field string) *zerolog.Event {
	return d.log.Debug().Str("call", call).Str("handle", string(handle)).Str("field", field)
}
