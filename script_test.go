package cpucore

import "testing"

func TestEvaluateWithNoConditionAlwaysMatches(t *testing.T) {
	cb := NewConditionalBreakpoints()
	defer cb.Close()
	matched, err := cb.Evaluate(RegisterSnapshot{PC: 0x1000})
	if err != nil || !matched {
		t.Fatalf("an unregistered PC must always match, got matched=%v err=%v", matched, err)
	}
}

func TestEvaluateEmptyExprIsUnconditional(t *testing.T) {
	cb := NewConditionalBreakpoints()
	defer cb.Close()
	cb.SetCondition(0x1000, "")
	matched, err := cb.Evaluate(RegisterSnapshot{PC: 0x1000})
	if err != nil || !matched {
		t.Fatal("an empty expression must always match")
	}
	if cb.HitCount(0x1000) != 1 {
		t.Fatal("an unconditional match must still increment hit count")
	}
}

func TestEvaluateTrueExpressionMatchesAndBindsRegisters(t *testing.T) {
	cb := NewConditionalBreakpoints()
	defer cb.Close()
	cb.SetCondition(0x1000, "a == 0x42")
	matched, err := cb.Evaluate(RegisterSnapshot{PC: 0x1000, A: 0x42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !matched {
		t.Fatal("a == 0x42 must match when A is 0x42")
	}
	if cb.HitCount(0x1000) != 1 {
		t.Fatal("a true match must increment hit count")
	}
}

func TestEvaluateFalseExpressionDoesNotMatchOrCountHit(t *testing.T) {
	cb := NewConditionalBreakpoints()
	defer cb.Close()
	cb.SetCondition(0x1000, "a == 0x42")
	matched, err := cb.Evaluate(RegisterSnapshot{PC: 0x1000, A: 0x01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched {
		t.Fatal("a == 0x42 must not match when A is 0x01")
	}
	if cb.HitCount(0x1000) != 0 {
		t.Fatal("a false evaluation must not increment hit count")
	}
}

func TestEvaluateCompoundExpressionOverMultipleRegisters(t *testing.T) {
	cb := NewConditionalBreakpoints()
	defer cb.Close()
	cb.SetCondition(0x2000, "b == 1 and c == 2")
	matched, _ := cb.Evaluate(RegisterSnapshot{PC: 0x2000, B: 1, C: 2})
	if !matched {
		t.Fatal("compound Lua expression must match when both registers satisfy it")
	}
	matched, _ = cb.Evaluate(RegisterSnapshot{PC: 0x2000, B: 1, C: 3})
	if matched {
		t.Fatal("compound Lua expression must not match when one register fails it")
	}
}

func TestEvaluateMalformedExpressionReturnsErrorAndNoMatch(t *testing.T) {
	cb := NewConditionalBreakpoints()
	defer cb.Close()
	cb.SetCondition(0x1000, "a == (") // syntax error
	matched, err := cb.Evaluate(RegisterSnapshot{PC: 0x1000})
	if err == nil {
		t.Fatal("a malformed Lua expression must return an error")
	}
	if matched {
		t.Fatal("a script error must be treated as no-match")
	}
}

func TestClearConditionRemovesItButLeavesHitCountQueryableAsZero(t *testing.T) {
	cb := NewConditionalBreakpoints()
	defer cb.Close()
	cb.SetCondition(0x1000, "")
	cb.Evaluate(RegisterSnapshot{PC: 0x1000})
	cb.ClearCondition(0x1000)
	if cb.HitCount(0x1000) != 0 {
		t.Fatal("HitCount for a cleared condition must report zero")
	}
	matched, err := cb.Evaluate(RegisterSnapshot{PC: 0x1000})
	if err != nil || !matched {
		t.Fatal("once cleared, the PC reverts to always matching (unconditional)")
	}
}
