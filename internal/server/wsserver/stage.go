package wsserver

import (
	"context"
	"encoding/json"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
)

// Application notification types.
const (
	NotifyFieldSet = "FieldSet"
	NotifyFields   = "Fields"
	NotifyEcho     = "Echo"
	NotifyError    = "Error"
)

// Application commands.
const (
	CommandSetField  = "SetField"
	CommandGetFields = "GetFields"
)

// Command is a JSON request understood by FieldStage.
type Command struct {
	Type  string `json:"type"`
	Key   string `json:"key,omitempty"`
	Value any    `json:"value,omitempty"`
}

// ErrorNotification reports err to the client by its error code.
func ErrorNotification(err error) domain.Notification {
	code := domain.GetErrorCode(err)
	if code == "" {
		code = domain.ErrInternal.Code
	}
	return domain.Notification{Type: NotifyError, Value: code}
}

// FieldStage is the default application stage. It lets clients write and read
// session fields, so restored state is observable over the wire:
//
//	{"type":"SetField","key":"k","value":v} -> {"type":"FieldSet","value":"k"}
//	{"type":"GetFields"}                    -> {"type":"Fields","value":{...}}
//
// Any other text is echoed back as {"type":"Echo","value":text}. Binary
// frames are ignored.
func FieldStage(_ context.Context, ev *Event) error {
	text, ok := ev.Message().(string)
	if !ok {
		return nil
	}

	var cmd Command
	if err := json.Unmarshal([]byte(text), &cmd); err == nil {
		switch cmd.Type {
		case CommandSetField:
			return setField(ev, cmd)
		case CommandGetFields:
			return send(ev, domain.Notification{
				Type:  NotifyFields,
				Value: ev.Session().Fields(domain.ReservedFields()),
			})
		}
	}

	return send(ev, domain.Notification{Type: NotifyEcho, Value: text})
}

func setField(ev *Event, cmd Command) error {
	if cmd.Key == "" || domain.ReservedFields().Has(cmd.Key) {
		return send(ev, ErrorNotification(domain.ErrBadRequest))
	}
	ev.Session().Set(cmd.Key, cmd.Value)
	return send(ev, domain.Notification{Type: NotifyFieldSet, Value: cmd.Key})
}

func send(ev *Event, n domain.Notification) error {
	if err := ev.Send(n); err != nil {
		return domain.ErrInternal.WithDetails("send " + n.Type).WithCause(err)
	}
	return nil
}
