package palette

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entry is one palette colour and its share of the opaque samples.
type Entry struct {
	// Hex is the colour as "#rrggbb".
	Hex string `json:"hex"`
	// Percent is the population share with one decimal place, e.g. "42.5".
	Percent string `json:"percent"`
}

// Palette is an ordered list of entries, one per cluster.
type Palette []Entry

// BuildPalette converts a clustering into a palette. Entries follow centroid
// order and clusters with no members are kept at 0.0%.
func BuildPalette(c *Clustering, total int) Palette {
	p := make(Palette, len(c.Centroids))
	for i, centroid := range c.Centroids {
		p[i] = Entry{
			Hex:     centroid.RGB().Hex(),
			Percent: formatPercent(c.Counts[i], total),
		}
	}
	return p
}

// formatPercent formats count/total as a percentage with one decimal place.
// Exact halves round up, so 100 of 40000 is "0.3".
func formatPercent(count, total int) string {
	if total <= 0 {
		return "0.0"
	}
	tenths := (count*2000 + total) / (2 * total)
	return strconv.Itoa(tenths/10) + "." + strconv.Itoa(tenths%10)
}

// Len returns the number of entries in the palette.
func (p Palette) Len() int {
	return len(p)
}

// Hex returns the hex codes in palette order.
func (p Palette) Hex() []string {
	hex := make([]string, len(p))
	for i, e := range p {
		hex[i] = e.Hex
	}
	return hex
}

// JoinHex returns every hex code joined by ", ", for copying in one go.
func (p Palette) JoinHex() string {
	return strings.Join(p.Hex(), ", ")
}

// RGB returns the entry colours decoded from hex.
func (p Palette) RGB() ([]RGB, error) {
	colours := make([]RGB, len(p))
	for i, e := range p {
		c, err := ParseHex(e.Hex)
		if err != nil {
			return nil, err
		}
		colours[i] = c
	}
	return colours, nil
}

// Total sums the entry percentages.
func (p Palette) Total() float64 {
	var total float64
	for _, e := range p {
		v, err := strconv.ParseFloat(e.Percent, 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total
}

// paletteJSON is the JSON document written by ToJSON.
type paletteJSON struct {
	Count  int     `json:"count"`
	Colors []Entry `json:"colors"`
}

// ToJSON converts the palette to indented JSON.
func (p Palette) ToJSON() ([]byte, error) {
	colors := p
	if colors == nil {
		colors = Palette{}
	}
	return json.MarshalIndent(paletteJSON{Count: len(p), Colors: colors}, "", "  ")
}

// String returns a human-readable representation of the palette.
func (p Palette) String() string {
	if len(p) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p))
	for i, e := range p {
		fmt.Fprintf(&sb, "  %2d: %s %5s%%\n", i+1, e.Hex, e.Percent)
	}
	return sb.String()
}
