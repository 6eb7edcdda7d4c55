package nereval

import (
	"fmt"
	"sort"
	"strings"
)

// Markup describes the inline tag used to delimit entities, e.g.
// <ENAMEX TYPE="PERSON">John</ENAMEX>.
type Markup struct {
	Tag  string // element name
	Attr string // attribute holding the entity type
}

// DefaultMarkup is the ENAMEX markup used by MUC-style NER corpora.
var DefaultMarkup = Markup{Tag: "ENAMEX", Attr: "TYPE"}

// Validate reports ErrInvalidMarkup when Tag or Attr is empty. An empty tag
// would turn every "<...>" in the text into an entity boundary.
func (m Markup) Validate() error {
	if m.Tag == "" || m.Attr == "" {
		return fmt.Errorf("%w: tag %q, attribute %q", ErrInvalidMarkup, m.Tag, m.Attr)
	}
	return nil
}

// region is one balanced tag pair found in marked text.
type region struct {
	pos     int // byte offset of the open tag in the marked text
	endPos  int // byte offset just past the close tag
	typ     Type
	rawType string
	start   int    // byte offset of the content in the stripped text
	surface string // tag-free content
	height  int    // 1 when the region holds no nested tags
	level   int    // 1 when no other closed region encloses it
}

type frame struct {
	pos        int
	plainStart int
	rawType    string
	maxChild   int
}

// Strip removes every open and close tag from marked, leaving only content.
func (m Markup) Strip(marked string) string {
	plain, _ := m.scan(marked)
	return plain
}

// Strip removes DefaultMarkup tags from marked.
func Strip(marked string) string {
	return DefaultMarkup.Strip(marked)
}

// scan walks marked once with an explicit stack and returns the stripped
// text together with every balanced region in document order. Close tags
// without a matching open tag are dropped; open tags never closed lose
// their region but keep their content, and do not count toward the level
// of the regions inside them.
func (m Markup) scan(marked string) (string, []region) {
	var (
		plain   strings.Builder
		stack   []frame
		regions []region
	)
	closeTag := "</" + m.Tag + ">"
	plain.Grow(len(marked))

	for i := 0; i < len(marked); {
		if marked[i] != '<' {
			next := strings.IndexByte(marked[i:], '<')
			if next < 0 {
				next = len(marked) - i
			}
			plain.WriteString(marked[i : i+next])
			i += next
			continue
		}

		if strings.HasPrefix(marked[i:], closeTag) {
			i += len(closeTag)
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			height := f.maxChild + 1
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				parent.maxChild = max(parent.maxChild, height)
			}
			regions = append(regions, region{
				pos:     f.pos,
				endPos:  i,
				typ:     ParseType(f.rawType),
				rawType: f.rawType,
				start:   f.plainStart,
				surface: plain.String()[f.plainStart:],
				height:  height,
			})
			continue
		}

		if attrs, n, ok := m.openTag(marked[i:]); ok {
			rawType, _ := attrValue(attrs, m.Attr)
			stack = append(stack, frame{pos: i, plainStart: plain.Len(), rawType: rawType})
			i += n
			continue
		}

		plain.WriteByte('<')
		i++
	}

	sort.Slice(regions, func(a, b int) bool { return regions[a].pos < regions[b].pos })
	assignLevels(regions)
	return plain.String(), regions
}

// assignLevels sets each region's level from the closed regions enclosing
// it. Regions must be sorted by pos; balanced pairs never cross, so the
// enclosing regions form a stack.
func assignLevels(regions []region) {
	var open []int // endPos of enclosing regions
	for i := range regions {
		r := &regions[i]
		for len(open) > 0 && open[len(open)-1] <= r.pos {
			open = open[:len(open)-1]
		}
		r.level = len(open) + 1
		open = append(open, r.endPos)
	}
}

// openTag reports whether s starts with an open tag and returns its
// attribute text and length.
func (m Markup) openTag(s string) (attrs string, n int, ok bool) {
	if len(s) < len(m.Tag)+2 || s[0] != '<' || !strings.HasPrefix(s[1:], m.Tag) {
		return "", 0, false
	}
	rest := s[1+len(m.Tag):]
	if c := rest[0]; c != '>' && !isSpace(c) {
		return "", 0, false
	}
	end := strings.IndexByte(rest, '>')
	if end < 0 {
		return "", 0, false
	}
	return rest[:end], 1 + len(m.Tag) + end + 1, true
}

// attrValue extracts name="value" (or single quoted, or bare) from attrs.
func attrValue(attrs, name string) (string, bool) {
	s := attrs
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		if s == "" {
			return "", false
		}
		k := 0
		for k < len(s) && s[k] != '=' && !isSpace(s[k]) {
			k++
		}
		key := s[:k]
		s = strings.TrimLeft(s[k:], " \t\r\n")
		if !strings.HasPrefix(s, "=") {
			if key == name {
				return "", true
			}
			continue
		}
		s = strings.TrimLeft(s[1:], " \t\r\n")

		var val string
		switch {
		case s == "":
		case s[0] == '"' || s[0] == '\'':
			q := s[0]
			end := strings.IndexByte(s[1:], q)
			if end < 0 {
				val, s = s[1:], ""
			} else {
				val, s = s[1:1+end], s[2+end:]
			}
		default:
			end := 0
			for end < len(s) && !isSpace(s[end]) {
				end++
			}
			val, s = s[:end], s[end:]
		}
		if key == name {
			return val, true
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
