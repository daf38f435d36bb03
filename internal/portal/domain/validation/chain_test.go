package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runChain(c *Chain, raw string) *field {
	f := newField(c, raw)
	f.transform()
	f.validate(map[string]string{c.Name(): raw})
	return f
}

func TestMaxLength(t *testing.T) {
	const msg = "too long"

	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{name: "пустое значение", raw: "", valid: true},
		{name: "ровно на границе", raw: "abcd", valid: true},
		{name: "на символ длиннее", raw: "abcde", valid: false},
		{name: "кириллица считается по символам", raw: "абвг", valid: true},
		{name: "пробелы обрезаются до проверки", raw: "  abcd  ", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := runChain(Field("x").Trim().MaxLength(4, msg), tt.raw)
			assert.Equal(t, stateValidated, f.state)
			if tt.valid {
				assert.Empty(t, f.errors)
			} else {
				assert.Equal(t, []string{msg}, f.errors)
			}
		})
	}
}

func TestEmailMaxLengthInFlow(t *testing.T) {
	long := "a@" + strings.Repeat("b", MaxEmailLength) + ".com"

	res, err := New().Validate(FlowLogin, map[string]string{
		FieldEmail:    long,
		FieldPassword: "Secret#123",
	})
	assert.NoError(t, err)
	assert.Contains(t, res.Messages(), MsgEmailTooLong)
}
