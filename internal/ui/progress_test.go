package ui

import (
	"errors"
	"strings"
	"testing"

	"moveide/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	m := NewProgressModel("render", []string{"a.toml", "b.toml"}, nil).(*progressModel)

	m.Update(eventMsg(driver.Event{File: "a.toml", Stage: driver.StageReplay, Status: driver.StatusWorking}))
	if got := m.rows[0].label(); got != "replaying" {
		t.Fatalf("a.toml label = %q, want replaying", got)
	}
	if got := m.fraction(); got != 0.2 {
		t.Fatalf("fraction = %v, want 0.2", got)
	}

	m.Update(eventMsg(driver.Event{File: "a.toml", Stage: driver.StageRender, Status: driver.StatusDone}))
	m.Update(eventMsg(driver.Event{File: "b.toml", Stage: driver.StageRender, Status: driver.StatusCached}))
	m.Update(eventMsg(driver.Event{File: "unknown.toml", Status: driver.StatusError}))
	if got := m.fraction(); got != 1.0 {
		t.Fatalf("fraction = %v, want 1", got)
	}

	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: render", "a.toml", "b.toml", "cached", "2/2 fixtures, 1 cached, 0 failed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.toml", 20, "short.toml"},
		{"a/very/long/path/fixture.toml", 10, "a/very/..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestProgressModelShowsFailure(t *testing.T) {
	m := NewProgressModel("render", []string{"bad.toml"}, nil).(*progressModel)
	m.Update(eventMsg(driver.Event{File: "bad.toml", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("no such source")}))
	view := m.View()
	for _, want := range []string{"error", "no such source", "1/1 fixtures, 0 cached, 1 failed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}
