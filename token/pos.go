package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc indexes the newlines of a document so that byte offsets can
// be mapped to line/column pairs on demand.
type PosDoc struct {
	d []byte
	n []int
}

func NewPosDoc(d []byte) *PosDoc {
	p := &PosDoc{d: d}
	for i, c := range d {
		if c == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

// LineCol returns the 0-based line and column of a byte offset.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off
	}
	return di, off - p.n[di-1] - 1
}

func (p *PosDoc) Pos(i int) *Pos {
	return &Pos{I: i, D: p}
}

func (p *PosDoc) End() *Pos {
	return &Pos{I: len(p.d), D: p}
}

// Pos is a position in a document, identified by byte offset.
type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

// Line returns the 0-based line number.
func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

// Col returns the 0-based column number.
func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

func (p Pos) String() string {
	var sample string
	if p.D != nil && len(p.D.d) > 0 {
		sample = string(p.D.d[max(0, p.I-8):min(p.I+8, len(p.D.d))])
	} else {
		sample = "?"
	}
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	l, c := p.LineCol()
	return fmt.Sprintf("`...%s...` at offset %d (line %d, col %d)", sample, p.I, l+1, c+1)
}
