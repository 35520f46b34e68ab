package history

import (
	"errors"
	"log"

	"xl-vim/internal/grid"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty stack.
	ErrNothingToUndo = errors.New("already at oldest change")
	// ErrNothingToRedo is returned by Redo on an empty stack.
	ErrNothingToRedo = errors.New("already at newest change")
)

type entry struct {
	op     Op
	before Focus
}

// History is a linear undo/redo log. Recording a new op discards redo.
// Stacks are unbounded.
type History struct {
	undo []entry
	redo []entry
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Record pushes an op that has already been applied. before is the cursor
// position to restore when the op is undone; a nil Sheet falls back to the
// op's own focus.
func (h *History) Record(op Op, before Focus) {
	h.undo = append(h.undo, entry{op: op, before: before})
	h.redo = nil
}

// Do applies op and records it.
func (h *History) Do(w *grid.Workbook, op Op, before Focus) (Focus, error) {
	f, err := op.apply(w)
	if err != nil {
		log.Printf("[history] apply %s: %v", op.Describe(), err)
		return f, err
	}
	h.Record(op, before)
	return f, nil
}

// Undo reverts the most recent op.
func (h *History) Undo(w *grid.Workbook) (Op, Focus, error) {
	if len(h.undo) == 0 {
		return nil, Focus{}, ErrNothingToUndo
	}
	e := h.undo[len(h.undo)-1]
	f, err := e.op.revert(w)
	if err != nil {
		log.Printf("[history] revert %s: %v", e.op.Describe(), err)
		return e.op, f, err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e)
	if e.before.Sheet != nil {
		f = e.before
	}
	return e.op, f, nil
}

// Redo re-applies the most recently undone op.
func (h *History) Redo(w *grid.Workbook) (Op, Focus, error) {
	if len(h.redo) == 0 {
		return nil, Focus{}, ErrNothingToRedo
	}
	e := h.redo[len(h.redo)-1]
	f, err := e.op.apply(w)
	if err != nil {
		log.Printf("[history] reapply %s: %v", e.op.Describe(), err)
		return e.op, f, err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e)
	return e.op, f, nil
}

// CanUndo reports whether Undo has anything to do.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has anything to do.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the sizes of the undo and redo stacks.
func (h *History) Len() (undo, redo int) { return len(h.undo), len(h.redo) }
