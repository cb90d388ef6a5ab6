// Package types holds the data shapes shared by the dataset loader, the selection
// store and the chart renderers.
package types

import "strconv"

// ID is the stable identity of a record. It is the join key between renders and
// between charts.
type ID int

func (id ID) String() string { return strconv.Itoa(int(id)) }

// Record is one data point. The scatter plot reads X/Y, the bar chart reads ID as
// its category and Y as the bar value.
type Record struct {
	ID ID      `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Dataset is an ordered snapshot of records. It is replaced wholesale on reload and
// never mutated in place.
type Dataset []Record

// IDs returns record ids in dataset order.
func (d Dataset) IDs() []ID {
	out := make([]ID, len(d))
	for i, r := range d {
		out[i] = r.ID
	}
	return out
}

// Index maps id to position. When an id repeats, the first position wins.
func (d Dataset) Index() map[ID]int {
	m := make(map[ID]int, len(d))
	for i, r := range d {
		if _, ok := m[r.ID]; !ok {
			m[r.ID] = i
		}
	}
	return m
}

// Lookup returns the record with the given id.
func (d Dataset) Lookup(id ID) (Record, bool) {
	for _, r := range d {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Viewport is the measured pixel size of a chart container.
type Viewport struct {
	Width  float32
	Height float32
}

// Empty reports whether either side is zero (or negative). Rendering is suspended
// for empty viewports.
func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }
