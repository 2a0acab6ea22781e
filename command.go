package admin

import (
	"context"
	"reflect"
)

// Command asks the application to change something. It is routed on the bus by
// the type of its body.
type Command interface {
	Type() string
	Body() any
}

type command struct {
	kind string
	body any
}

func NewCommand(body any) Command {
	return command{kind: CommandType(body), body: body}
}

func (c command) Type() string { return c.kind }

func (c command) Body() any { return c.body }

// CommandType names the command a body stands for. Pointer bodies share the
// name of the type they point to.
func CommandType(body any) string {
	return messageType(body)
}

// HandleCommand executes one command type.
type HandleCommand func(context.Context, Command) error

// CommandHandler lists the command types it handles.
type CommandHandler interface {
	SubscribedTo() map[string]HandleCommand
}

func messageType(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}
