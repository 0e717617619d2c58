package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"adscribe/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adscribe.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTailLastLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[0] != "b" || result.Lines[1] != "c" {
		t.Fatalf("lines = %#v", result.Lines)
	}
	if result.Offset == 0 {
		t.Fatal("offset did not advance")
	}
}

func TestTailLastLinesShortFile(t *testing.T) {
	path := writeLog(t, "only\n")

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 10})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 1 || result.Lines[0] != "only" {
		t.Fatalf("lines = %#v", result.Lines)
	}
}

func TestTailResumeFromOffset(t *testing.T) {
	path := writeLog(t, "first\n")

	initial, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 10})
	if err != nil {
		t.Fatalf("initial Tail: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString("second\nthird\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	next, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: initial.Offset})
	if err != nil {
		t.Fatalf("resume Tail: %v", err)
	}
	if len(next.Lines) != 2 || next.Lines[0] != "second" || next.Lines[1] != "third" {
		t.Fatalf("lines = %#v", next.Lines)
	}
}

func TestTailFollowPicksUpAppendedLines(t *testing.T) {
	path := writeLog(t, "start\n")

	initial, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 1})
	if err != nil {
		t.Fatalf("initial Tail: %v", err)
	}

	go func() {
		time.Sleep(300 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		_, _ = f.WriteString("later\n")
	}()

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{
		Offset: initial.Offset,
		Follow: true,
		Wait:   3 * time.Second,
	})
	if err != nil {
		t.Fatalf("follow Tail: %v", err)
	}
	if len(result.Lines) != 1 || result.Lines[0] != "later" {
		t.Fatalf("lines = %#v", result.Lines)
	}
}

func TestTailMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.log")
	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 5})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 0 || result.Offset != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestTailOffsetPastEnd(t *testing.T) {
	path := writeLog(t, "a\n")
	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: 10_000})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 0 {
		t.Fatalf("lines = %#v", result.Lines)
	}
	if result.Offset != 2 {
		t.Errorf("offset = %d, want 2", result.Offset)
	}
}
