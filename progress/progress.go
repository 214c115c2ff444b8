// Package progress reports segment completion counters. Render only:
// nothing here feeds back into control flow.
package progress

import "github.com/schollz/progressbar/v3"

// Reporter receives completion counters from the assembler.
type Reporter interface {
	Start(total int)
	Update(current, total int)
	Finish()
}

// Nop discards all updates.
type Nop struct{}

func (Nop) Start(int)       {}
func (Nop) Update(int, int) {}
func (Nop) Finish()         {}

// Bar renders a terminal progress bar.
type Bar struct {
	desc string
	bar  *progressbar.ProgressBar
}

// NewBar builds a terminal progress bar with the given description.
func NewBar(desc string) *Bar {
	return &Bar{desc: desc}
}

func (b *Bar) Start(total int) {
	b.bar = progressbar.New(total)
	b.bar.Describe(b.desc)
	_ = b.bar.RenderBlank()
}

func (b *Bar) Update(current, total int) {
	if b.bar == nil {
		b.Start(total)
	}
	_ = b.bar.Set(current)
}

func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}
