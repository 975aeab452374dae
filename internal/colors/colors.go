// Package colors assigns display colors to category names.
//
// Well-known category names map to fixed colors. Every other name draws
// from a shared palette, either round-robin through an Assigner, in list
// order through ColorMap, or by hashing the name with HashColor.
package colors

import (
	"hash/fnv"
	"sync"
)

var known = map[string]string{
	"Food":           "#F97316",
	"Transportation": "#3B82F6",
	"Housing":        "#8B5CF6",
	"Utilities":      "#06B6D4",
	"Entertainment":  "#EC4899",
	"Healthcare":     "#10B981",
	"Shopping":       "#F59E0B",
	"Other":          "#6B7280",
}

// Palette is the color cycle for names outside the fixed table.
var Palette = []string{
	"#7C3AED",
	"#2563EB",
	"#059669",
	"#D97706",
	"#DC2626",
	"#9333EA",
	"#0891B2",
	"#65A30D",
	"#E11D48",
	"#4F46E5",
}

// IsKnown reports whether name has a fixed color.
func IsKnown(name string) bool {
	_, ok := known[name]
	return ok
}

// Known returns the fixed color of name, if any.
func Known(name string) (string, bool) {
	c, ok := known[name]
	return c, ok
}

// Assigner hands out palette colors round-robin. The counter advances on
// every lookup of an unknown name, so asking twice for the same unknown
// name yields two consecutive palette entries. Create one Assigner per
// session or per rendered view tree.
type Assigner struct {
	mu      sync.Mutex
	counter int
}

// NewAssigner returns an Assigner starting at the first palette entry.
func NewAssigner() *Assigner {
	return &Assigner{}
}

// Color returns the display color for name.
func (a *Assigner) Color(name string) string {
	if c, ok := known[name]; ok {
		return c
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	c := Palette[a.counter%len(Palette)]
	a.counter++
	return c
}

// Counter returns how many unknown lookups the Assigner has served.
func (a *Assigner) Counter() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counter
}

// Reset rewinds the Assigner to the first palette entry.
func (a *Assigner) Reset() {
	a.mu.Lock()
	a.counter = 0
	a.mu.Unlock()
}

// ColorMap assigns colors to names in list order with its own counter,
// independent of any Assigner. A name repeated in the list keeps the color
// of its last occurrence.
func ColorMap(names []string) map[string]string {
	m := make(map[string]string, len(names))
	ci := 0
	for _, name := range names {
		if c, ok := known[name]; ok {
			m[name] = c
			continue
		}
		m[name] = Palette[ci%len(Palette)]
		ci++
	}
	return m
}

// HashColor derives a color from the name alone, so the same name always
// gets the same color.
func HashColor(name string) string {
	if c, ok := known[name]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return Palette[h.Sum32()%uint32(len(Palette))]
}
