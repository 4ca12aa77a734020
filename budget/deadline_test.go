package budget

import (
	"context"
	"testing"
	"time"
)

func TestStage_DefaultsWhenNonPositive(t *testing.T) {
	ctx, cancel := Stage(context.Background(), 0)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("Stage(0) should still attach a deadline (the 1-hour default)")
	}
}

func TestExceeded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if Exceeded(ctx) {
		t.Error("a fresh context should not be exceeded")
	}
	cancel()
	if !Exceeded(ctx) {
		t.Error("a cancelled context should report exceeded")
	}
}

func TestElapsed_SecondsSince(t *testing.T) {
	e := Start()
	time.Sleep(5 * time.Millisecond)
	if e.SecondsSince() <= 0 {
		t.Error("SecondsSince() should report a positive elapsed duration")
	}
}
