package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/message"
)

func TestMessage_Error(t *testing.T) {
	t.Parallel()

	point := event.Point{Line: 2, Column: 3, Offset: 5}
	end := event.Point{Line: 2, Column: 5, Offset: 7}

	tests := []struct {
		name string
		msg  *message.Message
		want string
	}{
		{
			name: "point",
			msg:  message.New(message.PointPlace(point), "oops", message.RuleUnexpectedEOF),
			want: "2:3: oops (gomdparse:unexpected-eof)",
		},
		{
			name: "span",
			msg:  message.New(message.PositionPlace(point, end), "oops", message.RuleUnexpectedLazy),
			want: "2:3-2:5: oops (gomdparse:unexpected-lazy)",
		},
		{
			name: "no place",
			msg:  message.New(nil, "oops", message.RuleUnexpectedEOF),
			want: "oops (gomdparse:unexpected-eof)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.msg.Error())
		})
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	source := []byte("one\r\ntwo\rthree\nfour")

	assert.Equal(t, "one", message.Line(source, 1))
	assert.Equal(t, "two", message.Line(source, 2))
	assert.Equal(t, "three", message.Line(source, 3))
	assert.Equal(t, "four", message.Line(source, 4))
	assert.Empty(t, message.Line(source, 5))
	assert.Empty(t, message.Line(source, 0))
	assert.Empty(t, message.Line(nil, 1))
}
