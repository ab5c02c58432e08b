package grid

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// Record is one opaque data row: field name to primitive value.
type Record map[string]any

// Dataset is an ordered, caller-owned collection of records.
type Dataset []Record

// IDField is the conventional identity field.
const IDField = "id"

// Field returns the display string for a field. Missing fields and nil values
// are empty.
func (r Record) Field(name string) string {
	if r == nil || name == "" {
		return ""
	}
	return Stringify(r[name])
}

// matches reports whether any field contains needle. needle must already be
// lower-cased.
func (r Record) matches(needle string) bool {
	for _, v := range r {
		if strings.Contains(strings.ToLower(Stringify(v)), needle) {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Clone copies the dataset and every record in it, so later mutation of the
// caller's maps is not observed.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, rec := range d {
		out[i] = rec.Clone()
	}
	return out
}

// Rows pairs every record with its position in the dataset.
func (d Dataset) Rows() []Row {
	rows := make([]Row, len(d))
	for i, rec := range d {
		rows[i] = Row{Index: i, Record: rec}
	}
	return rows
}

// Row is a record together with its index in the source dataset.
type Row struct {
	Index  int
	Record Record
}

// Key is the stable rendering identity of the row: the id field when present,
// otherwise the source position.
func (r Row) Key() string {
	if id := r.Record.Field(IDField); strings.TrimSpace(id) != "" {
		return id
	}
	return "#" + strconv.Itoa(r.Index)
}

// Stringify converts a field value to its display form. nil becomes the empty
// string; numbers use the shortest exact representation.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return numberText(val)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprint(val)
	}
}

// numberText renders a JSON number the way a decoded float64 would print.
// Integer literals are kept verbatim so values beyond float64 precision stay
// exact, as are literals that overflow.
func numberText(n json.Number) string {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		return lit
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return lit
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
