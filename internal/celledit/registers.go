package celledit

// Registers holds the process-wide clipboard and the editor's local
// yank register. Paste reads whichever was written last.
type Registers struct {
	clipboard string
	local     string
	clipSeq   uint64
	localSeq  uint64
	seq       uint64
}

// NewRegisters returns empty registers.
func NewRegisters() *Registers {
	return &Registers{}
}

// SetClipboard stores a copied cell value.
func (r *Registers) SetClipboard(text string) {
	r.seq++
	r.clipboard = text
	r.clipSeq = r.seq
}

// Clipboard returns the copied cell value.
func (r *Registers) Clipboard() string { return r.clipboard }

// Yank stores text yanked or deleted inside the cell editor.
func (r *Registers) Yank(text string) {
	r.seq++
	r.local = text
	r.localSeq = r.seq
}

// Paste returns the most recently written register.
func (r *Registers) Paste() string {
	if r.localSeq > r.clipSeq {
		return r.local
	}
	return r.clipboard
}
