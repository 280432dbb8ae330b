package script

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecide(t *testing.T) {
	src := []byte(`
left = !view.falling && view.offset_x > -100
right = view.falling
`)
	r, err := Compile(src, 0)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	tests := []struct {
		name string
		view View
		want Decision
	}{
		{"standing inside bounds", View{OffsetX: 0}, Decision{Left: true}},
		{"standing at bound", View{OffsetX: -100}, Decision{}},
		{"falling", View{Falling: true}, Decision{Right: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Decide(context.Background(), tt.view)
			if err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decide = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMemoryPersists(t *testing.T) {
	src := []byte(`
n := memory.n
if n == undefined { n = 0 }
memory.n = n + 1
left = memory.n >= 3
`)
	r, err := Compile(src, 0)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	var last Decision
	for i := 0; i < 3; i++ {
		last, err = r.Decide(context.Background(), View{Tick: i})
		if err != nil {
			t.Fatalf("Decide %d failed: %v", i, err)
		}
	}
	if !last.Left {
		t.Error("memory should persist between runs")
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile([]byte("left = ("), 0); err == nil {
		t.Error("expected compile error")
	}
}

func TestRuntimeError(t *testing.T) {
	r, err := Compile([]byte(`left = view.score / 0`), 0)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, err := r.Decide(context.Background(), View{}); err == nil {
		t.Error("expected runtime error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ai.tengo")
	if err := os.WriteFile(path, []byte("right = true\n"), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	r, err := Load(path, 10000)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if r.Path() != path {
		t.Errorf("Path = %q, want %q", r.Path(), path)
	}
	d, err := r.Decide(context.Background(), View{})
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if !d.Right || d.Left {
		t.Errorf("Decide = %+v, want right only", d)
	}

	_, err = Load(filepath.Join(dir, "missing.tengo"), 0)
	if err == nil || !strings.Contains(err.Error(), "script: read") {
		t.Errorf("expected read error, got %v", err)
	}
}
