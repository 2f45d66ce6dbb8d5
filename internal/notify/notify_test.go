package notify

import (
	"bytes"
	"strings"
	"testing"
)

type captureSink struct {
	got []Notification
}

func (c *captureSink) Notify(n Notification) { c.got = append(c.got, n) }

func TestNotifierWritesAndFansOut(t *testing.T) {
	var buf bytes.Buffer
	n := NewWithWriter(&buf)
	sink := &captureSink{}
	n.AddSink(sink)

	n.Success("retrieved %d articles", 18)
	n.Error("table extraction failed")

	out := buf.String()
	if !strings.Contains(out, "retrieved 18 articles") {
		t.Errorf("success line missing: %q", out)
	}
	if !strings.Contains(out, "table extraction failed") {
		t.Errorf("error line missing: %q", out)
	}

	if len(sink.got) != 2 {
		t.Fatalf("sink received %d notifications", len(sink.got))
	}
	if sink.got[0].Level != LevelSuccess || sink.got[1].Level != LevelError {
		t.Errorf("levels = %q, %q", sink.got[0].Level, sink.got[1].Level)
	}
	if sink.got[0].Time.IsZero() {
		t.Error("notification time not set")
	}
}
