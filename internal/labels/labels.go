// Package labels maps disease labels to the class indices emitted by the classifier.
package labels

import (
	"fmt"
	"sort"
	"strings"
)

// UnknownLabel is substituted when the classifier yields an index with no label.
const UnknownLabel = "Unknown Disease"

type Map struct {
	byIndex map[int]string
	byLabel map[string]int
}

// New builds a Map from a label→index table. Labels must be non-empty and
// indices non-negative and unique.
func New(table map[string]int) (*Map, error) {
	m := &Map{
		byIndex: make(map[int]string, len(table)),
		byLabel: make(map[string]int, len(table)),
	}
	for label, idx := range table {
		if label == "" {
			return nil, fmt.Errorf("empty label for index %d", idx)
		}
		if idx < 0 {
			return nil, fmt.Errorf("negative index %d for label %q", idx, label)
		}
		if prev, ok := m.byIndex[idx]; ok {
			return nil, fmt.Errorf("index %d assigned to both %q and %q", idx, prev, label)
		}
		m.byIndex[idx] = label
		m.byLabel[label] = idx
	}
	return m, nil
}

// Default returns the 15-class pepper/potato/tomato table the crop model was trained on.
func Default() *Map {
	m, err := New(map[string]int{
		"Pepper__bell___Bacterial_spot":               0,
		"Pepper__bell___healthy":                      1,
		"Potato___Early_blight":                       2,
		"Potato___Late_blight":                        3,
		"Potato___healthy":                            4,
		"Tomato_Bacterial_spot":                       5,
		"Tomato_Early_blight":                         6,
		"Tomato_Late_blight":                          7,
		"Tomato_Leaf_Mold":                            8,
		"Tomato_Septoria_leaf_spot":                   9,
		"Tomato_Spider_mites_Two_spotted_spider_mite": 10,
		"Tomato__Target_Spot":                         11,
		"Tomato__Tomato_YellowLeaf__Curl_Virus":       12,
		"Tomato__Tomato_mosaic_virus":                 13,
		"Tomato_healthy":                              14,
	})
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Map) Label(idx int) (string, bool) {
	label, ok := m.byIndex[idx]
	return label, ok
}

func (m *Map) Index(label string) (int, bool) {
	idx, ok := m.byLabel[label]
	return idx, ok
}

// LabelOrUnknown never fails; unmapped indices resolve to UnknownLabel.
func (m *Map) LabelOrUnknown(idx int) string {
	if label, ok := m.byIndex[idx]; ok {
		return label
	}
	return UnknownLabel
}

func (m *Map) Len() int {
	return len(m.byIndex)
}

// MaxIndex is the largest mapped index, or -1 for an empty map.
func (m *Map) MaxIndex() int {
	highest := -1
	for idx := range m.byIndex {
		if idx > highest {
			highest = idx
		}
	}
	return highest
}

// Entry is one row of the table, used for listing.
type Entry struct {
	Index int    `json:"index" yaml:"index" mapstructure:"index"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// Entries returns the table ordered by index.
func (m *Map) Entries() []Entry {
	out := make([]Entry, 0, len(m.byIndex))
	for idx, label := range m.byIndex {
		out = append(out, Entry{Index: idx, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Humanize turns a label such as "Potato___Early_blight" into
// "Potato Early blight". Longer underscore runs are replaced first so they
// collapse to a single space.
func Humanize(label string) string {
	s := label
	for _, sep := range []string{"___", "__", "_"} {
		s = strings.ReplaceAll(s, sep, " ")
	}
	return s
}
