package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testCommand struct {
	Name string
}

func TestCommand_Type(t *testing.T) {
	cmd := NewCommand(testCommand{Name: "value"})
	assert.Equal(t, "github.com/paulvitic/members-admin.testCommand", cmd.Type())
	assert.Equal(t, "value", cmd.Body().(testCommand).Name)

	assert.Equal(t, cmd.Type(), NewCommand(&testCommand{}).Type(), "pointer bodies share the type of their element")
	assert.Empty(t, CommandType(nil))
}
