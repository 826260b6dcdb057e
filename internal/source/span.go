package source

import "fmt"

// Span is the byte range [Start, End) of one file.
// The zero Span of a file (Start == End == 0) stands for the file as a whole.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
