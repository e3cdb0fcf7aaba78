package diag

// Bag is the ordered, self-coalescing collection of diagnostics produced by
// one pass. A Bag is owned by a single producer until it is handed to a renderer.
type Bag struct {
	items []Diagnostic
	max   int // 0: без лимита
}

// NewBag creates a bag holding at most max entries; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Push folds d into the most recent diagnostic when they can merge and
// otherwise appends it. Returns false when d was dropped because the bag is full.
func (b *Bag) Push(d Diagnostic) bool {
	if n := len(b.items); n > 0 {
		last := &b.items[n-1]
		if last.CanMerge(&d) {
			last.Merge(d)
			return true
		}
	}
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Report makes Bag a Reporter.
func (b *Bag) Report(d Diagnostic) {
	b.Push(d)
}

// Cap returns the configured limit, 0 when unlimited.
func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика уровня error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Kind == KindError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одно предупреждение.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Kind == KindWarning {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// IsEmpty reports whether nothing was recorded.
func (b *Bag) IsEmpty() bool {
	return len(b.items) == 0
}

// Clear drops every diagnostic while keeping the limit.
func (b *Bag) Clear() {
	b.items = b.items[:0]
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Append pushes every diagnostic of other in order, so the usual merge rules
// apply at the seam. The limit grows if needed to fit everything.
func (b *Bag) Append(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	for _, d := range other.items {
		b.Push(d)
	}
}
