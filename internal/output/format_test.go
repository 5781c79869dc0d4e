package output

import (
	"bytes"
	"testing"

	"tasktracker/internal/api"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task api.Task
		want string
	}{
		{"title only", api.Task{ID: 7, Title: "Buy milk"}, "   7  Buy milk\n"},
		{"with description", api.Task{ID: 12, Title: "Walk", Description: "the dog"}, "  12  Walk\n      the dog\n"},
		{"blank title", api.Task{ID: 1, Title: "  "}, "   1  (untitled)\n"},
		{"newlines flattened", api.Task{ID: 2, Title: "a\nb", Description: "c\r\nd"}, "   2  a b\n      c  d\n"},
		{"blank description", api.Task{ID: 3, Title: "x", Description: "\n"}, "   3  x\n"},
		{"wide id", api.Task{ID: 123456, Title: "x"}, "123456  x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatSectionHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatSectionHeader(&buf, "Pending", 2)

	want := "------------\nPending (2)\n------------\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatStats(t *testing.T) {
	var buf bytes.Buffer
	FormatStats(&buf, 2, 1)

	want := "2 pending, 1 completed, 3 total\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
