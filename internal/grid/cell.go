package grid

import (
	"math"
	"strconv"
	"strings"
)

// Align is the horizontal alignment of a column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

func (a Align) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// ParseAlign maps "left", "right" and "center" to an Align. Anything else is
// left aligned.
func ParseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return AlignRight
	case "center", "centre":
		return AlignCenter
	default:
		return AlignLeft
	}
}

// CellKind selects one of the built-in cell renderers.
type CellKind int

const (
	CellText CellKind = iota
	CellBadge
	CellIconText
	CellProgress
	CellCustom
)

func (k CellKind) String() string {
	switch k {
	case CellBadge:
		return "badge"
	case CellIconText:
		return "icon"
	case CellProgress:
		return "progress"
	case CellCustom:
		return "custom"
	default:
		return "text"
	}
}

// Tone is the semantic color of a badge or action.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneInfo
	ToneSuccess
	ToneWarning
	ToneDanger
	ToneAccent
)

func (t Tone) String() string {
	switch t {
	case ToneInfo:
		return "info"
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneDanger:
		return "danger"
	case ToneAccent:
		return "accent"
	default:
		return "neutral"
	}
}

// CellRenderer is a tagged variant describing how a column formats values.
// The zero value renders plain text.
type CellRenderer struct {
	Kind CellKind

	// Badge
	Tones    map[string]Tone // keyed by lower-cased value
	Fallback Tone

	// Icon + text
	Icon  string
	Icons map[string]string // keyed by lower-cased value, overrides Icon

	// Progress
	Max float64

	// Custom
	Format func(value any, rec Record) string
}

// Text renders the raw value.
func Text() CellRenderer { return CellRenderer{Kind: CellText} }

// Badge renders the value as a chip whose tone is looked up by value.
func Badge(tones map[string]Tone, fallback Tone) CellRenderer {
	norm := make(map[string]Tone, len(tones))
	for k, v := range tones {
		norm[strings.ToLower(k)] = v
	}
	return CellRenderer{Kind: CellBadge, Tones: norm, Fallback: fallback}
}

// IconText prefixes every value with icon.
func IconText(icon string) CellRenderer {
	return CellRenderer{Kind: CellIconText, Icon: icon}
}

// IconTextBy picks the icon by value.
func IconTextBy(icons map[string]string, fallback string) CellRenderer {
	norm := make(map[string]string, len(icons))
	for k, v := range icons {
		norm[strings.ToLower(k)] = v
	}
	return CellRenderer{Kind: CellIconText, Icon: fallback, Icons: norm}
}

// Progress renders a numeric value as a percentage of scale.
func Progress(scale float64) CellRenderer {
	return CellRenderer{Kind: CellProgress, Max: scale}
}

// Custom renders through a pure formatting function.
func Custom(fn func(value any, rec Record) string) CellRenderer {
	return CellRenderer{Kind: CellCustom, Format: fn}
}

// Cell is one rendered value.
type Cell struct {
	Column  string
	Kind    CellKind
	Text    string
	Tone    Tone
	Icon    string
	Percent float64
	Align   Align
	Marker  bool // critical marker, first column only
}

func renderCell(col Column, rec Record) Cell {
	cell := Cell{Column: col.ID, Kind: col.Cell.Kind, Align: col.Align}
	if col.ID == "" {
		return cell
	}

	value := rec[col.ID]
	text := Stringify(value)
	r := col.Cell

	switch r.Kind {
	case CellBadge:
		cell.Text = text
		cell.Tone = r.Fallback
		if tone, ok := r.Tones[strings.ToLower(text)]; ok {
			cell.Tone = tone
		}
	case CellIconText:
		cell.Text = text
		cell.Icon = r.Icon
		if icon, ok := r.Icons[strings.ToLower(text)]; ok {
			cell.Icon = icon
		}
	case CellProgress:
		pct, ok := percentOf(text, r.Max)
		if ok {
			cell.Percent = pct
			cell.Text = strconv.FormatFloat(pct, 'f', 0, 64) + "%"
		}
	case CellCustom:
		cell.Text = safeFormat(r.Format, value, rec)
	default:
		cell.Text = text
	}
	return cell
}

func percentOf(text string, scale float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(text), "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if scale <= 0 {
		scale = 100
	}
	pct := v / scale * 100
	return min(max(pct, 0), 100), true
}

func safeFormat(fn func(any, Record) string, value any, rec Record) (out string) {
	if fn == nil {
		return Stringify(value)
	}
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	return fn(value, rec)
}
