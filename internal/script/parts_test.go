package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	tests := []struct {
		name       string
		parts      []Part
		wantScript string
		wantAudio  []byte
	}{
		{
			name:  "empty",
			parts: nil,
		},
		{
			name:       "flat text",
			parts:      []Part{TextPart("hello"), TextPart("world")},
			wantScript: "hello\nworld",
		},
		{
			name:      "audio chunks concatenate in order",
			parts:     []Part{AudioPart([]byte{1, 2}), AudioPart([]byte{3})},
			wantAudio: []byte{1, 2, 3},
		},
		{
			name: "nested containers",
			parts: []Part{
				Container(
					TextPart("intro"),
					Container(TextPart("deep"), AudioPart([]byte{9})),
				),
				TextPart("outro"),
				AudioPart([]byte{10}),
			},
			wantScript: "intro\ndeep\noutro",
			wantAudio:  []byte{9, 10},
		},
		{
			name:       "empty text parts are skipped",
			parts:      []Part{TextPart(""), TextPart("only"), Container()},
			wantScript: "only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, audio := Collect(tt.parts)
			assert.Equal(t, tt.wantScript, script)
			assert.Equal(t, tt.wantAudio, audio)
		})
	}
}
