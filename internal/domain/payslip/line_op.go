package payslip

// LineOp is one edit of a payslip's input line collection. Ops are applied in
// order by ApplyLineOps.
type LineOp interface {
	apply(s *lineSet)
}

// Replace sets the collection to the known lines with the given IDs.
// Replace{} clears the collection.
type Replace struct {
	IDs []string
}

// Add links an existing line back into the collection.
type Add struct {
	ID string
}

// Remove unlinks a line from the collection.
type Remove struct {
	ID string
}

// Create appends a new, not yet persisted line.
type Create struct {
	Line InputLine
}

type lineSet struct {
	known map[string]InputLine
	lines []InputLine
}

func (s *lineSet) indexOf(id string) int {
	for i, l := range s.lines {
		if l.ID != "" && l.ID == id {
			return i
		}
	}
	return -1
}

func (op Replace) apply(s *lineSet) {
	s.lines = s.lines[:0:0]
	for _, id := range op.IDs {
		if l, ok := s.known[id]; ok && s.indexOf(id) < 0 {
			s.lines = append(s.lines, l)
		}
	}
}

func (op Add) apply(s *lineSet) {
	if s.indexOf(op.ID) >= 0 {
		return
	}
	if l, ok := s.known[op.ID]; ok {
		s.lines = append(s.lines, l)
	}
}

func (op Remove) apply(s *lineSet) {
	if i := s.indexOf(op.ID); i >= 0 {
		s.lines = append(s.lines[:i:i], s.lines[i+1:]...)
	}
}

func (op Create) apply(s *lineSet) {
	line := op.Line
	line.ID = ""
	s.lines = append(s.lines, line)
}

// ApplyLineOps applies ops to a copy of current and returns the resulting set.
// Lines referenced by Replace and Add must be part of current.
func ApplyLineOps(current []InputLine, ops ...LineOp) []InputLine {
	s := &lineSet{
		known: make(map[string]InputLine, len(current)),
		lines: append([]InputLine(nil), current...),
	}
	for _, l := range current {
		if l.ID != "" {
			s.known[l.ID] = l
		}
	}
	for _, op := range ops {
		op.apply(s)
	}
	return s.lines
}
