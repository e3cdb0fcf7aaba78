package source

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is returned when spans of different files are combined.
var ErrInvariantViolation = errors.New("invariant violation")

type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// NewSpan builds a span; lo must not exceed hi.
func NewSpan(file FileID, lo, hi uint32) Span {
	if lo > hi {
		panic(fmt.Errorf("span start %d is past its end %d", lo, hi))
	}
	return Span{File: file, Start: lo, End: hi}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && s.End >= other.End
}

// Adjacent reports whether the spans touch end-to-start in either order.
func (s Span) Adjacent(other Span) bool {
	return s.End == other.Start || s.Start == other.End
}

// Offset shifts both bounds forward by delta.
func (s Span) Offset(delta uint32) Span {
	return Span{
		File:  s.File,
		Start: s.Start + delta,
		End:   s.End + delta,
	}
}

// Union returns the smallest span covering both s and other.
// Spans of different files cannot be combined.
func (s Span) Union(other Span) (Span, error) {
	if s.File != other.File {
		return s, fmt.Errorf("%w: union of spans from files %d and %d", ErrInvariantViolation, s.File, other.File)
	}
	return s.Cover(other), nil
}

// UnionWith widens s in place to cover other.
func (s *Span) UnionWith(other Span) error {
	u, err := s.Union(other)
	if err != nil {
		return err
	}
	*s = u
	return nil
}

// Cover is the lenient variant of Union: a span from another file is ignored.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
