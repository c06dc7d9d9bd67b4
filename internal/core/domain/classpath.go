package domain

import (
	"os"
	"strings"
)

// Classpath is an ordered list of class path elements.
type Classpath struct {
	elements []string
}

// NewClasspath creates a Classpath from already separated elements.
// Empty elements are dropped.
func NewClasspath(elements ...string) Classpath {
	cp := Classpath{elements: make([]string, 0, len(elements))}
	for _, e := range elements {
		if e != "" {
			cp.elements = append(cp.elements, e)
		}
	}
	return cp
}

// ParseClasspath splits a path list into elements.
//
// Both ';' and ':' separate elements regardless of the host platform, so a
// build file written on one platform works on the other. A single drive
// letter followed by ':' and a slash (C:\lib or C:/lib) stays one element.
func ParseClasspath(s string) Classpath {
	var elements []string
	var current strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ';':
			elements = append(elements, current.String())
			current.Reset()
		case c == ':' && isDriveLetter(current.String()) && i+1 < len(s) && isSlash(s[i+1]):
			current.WriteByte(c)
		case c == ':':
			elements = append(elements, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	elements = append(elements, current.String())

	return NewClasspath(elements...)
}

func isDriveLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSlash(c byte) bool {
	return c == '/' || c == '\\'
}

// Elements returns a copy of the class path elements.
func (c Classpath) Elements() []string {
	out := make([]string, len(c.elements))
	copy(out, c.elements)
	return out
}

// IsEmpty reports whether the class path has no elements.
func (c Classpath) IsEmpty() bool {
	return len(c.elements) == 0
}

// String joins the elements with the host path list separator.
func (c Classpath) String() string {
	return strings.Join(c.elements, string(os.PathListSeparator))
}
