// script.go - Lua-backed breakpoint condition scripting
//
// Generalizes the teacher's debug_conditions.go (evaluateCondition/
// evaluateConditionWithHitCount, a bespoke boolean-expression mini
// evaluator over register names) onto Lua, which the teacher already
// depends on (gopher-lua is in its go.mod) but never wires into anything
// reachable - this module is the first thing in the lineage that actually
// exercises it.

package cpucore

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Condition is a Lua boolean expression, kept as source text and run on
// each Evaluate against a register snapshot. An empty Expr always matches
// (an unconditional breakpoint).
type Condition struct {
	Expr     string
	hitCount int
}

// ConditionalBreakpoints attaches Conditions to specific PCs, layered on
// top of Core's plain breakpoint set. Core's own breakpoint check does not
// consult it: Core enters BREAKED on PC membership alone, and a host calls
// Evaluate itself to decide whether that stop is of interest.
type ConditionalBreakpoints struct {
	byPC map[uint16]*Condition
	L    *lua.LState
}

// NewConditionalBreakpoints creates an evaluator with its own Lua state.
// Callers should Close() it when the machine is torn down.
func NewConditionalBreakpoints() *ConditionalBreakpoints {
	return &ConditionalBreakpoints{
		byPC: make(map[uint16]*Condition),
		L:    lua.NewState(),
	}
}

// Close releases the underlying Lua state.
func (cb *ConditionalBreakpoints) Close() { cb.L.Close() }

// SetCondition attaches a Lua boolean expression to pc; register names
// (a, f, b, c, d, e, h, l, ix, iy, sp, pc, i, r) are bound as globals
// before each evaluation.
func (cb *ConditionalBreakpoints) SetCondition(pc uint16, expr string) {
	cb.byPC[pc] = &Condition{Expr: expr}
}

// ClearCondition removes any condition attached to pc (it remains a plain
// unconditional breakpoint if Core.HasBreakpoint(pc) is still true).
func (cb *ConditionalBreakpoints) ClearCondition(pc uint16) {
	delete(cb.byPC, pc)
}

// Evaluate reports whether the breakpoint at snap.PC should actually
// trigger: true if no condition is registered for this PC, or if the
// registered Lua expression evaluates truthy. A script error is reported
// as "no match" together with the error, which is returned to the caller
// rather than panicking - scripting mistakes belong to the host tooling
// layer, not the CPU core.
func (cb *ConditionalBreakpoints) Evaluate(snap RegisterSnapshot) (bool, error) {
	cond, ok := cb.byPC[snap.PC]
	if !ok {
		return true, nil
	}
	if cond.Expr == "" {
		cond.hitCount++
		return true, nil
	}

	bindRegisters(cb.L, snap)
	if err := cb.L.DoString("__cond_result = (" + cond.Expr + ")"); err != nil {
		return false, fmt.Errorf("cpucore: breakpoint condition error at 0x%04X: %w", snap.PC, err)
	}
	result := cb.L.GetGlobal("__cond_result")
	matched := lua.LVAsBool(result)
	if matched {
		cond.hitCount++
	}
	return matched, nil
}

// HitCount returns how many times the condition at pc has evaluated true.
func (cb *ConditionalBreakpoints) HitCount(pc uint16) int {
	if cond, ok := cb.byPC[pc]; ok {
		return cond.hitCount
	}
	return 0
}

func bindRegisters(L *lua.LState, s RegisterSnapshot) {
	set := func(name string, v uint16) { L.SetGlobal(name, lua.LNumber(v)) }
	set("a", uint16(s.A))
	set("f", uint16(s.F))
	set("b", uint16(s.B))
	set("c", uint16(s.C))
	set("d", uint16(s.D))
	set("e", uint16(s.E))
	set("h", uint16(s.H))
	set("l", uint16(s.L))
	set("ix", s.IX)
	set("iy", s.IY)
	set("sp", s.SP)
	set("pc", s.PC)
	set("i", uint16(s.I))
	set("r", uint16(s.R))
}
