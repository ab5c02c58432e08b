package grid

import "strings"

// Weight is the visual emphasis a classified row receives.
type Weight int

const (
	WeightNormal Weight = iota
	WeightUrgent
)

// Classification flags priority rows. It is presentational only.
type Classification struct {
	Urgent   bool
	Critical bool // status is critical; adds the first-column marker
}

// Weight returns the row's visual weight.
func (c Classification) Weight() Weight {
	if c.Urgent {
		return WeightUrgent
	}
	return WeightNormal
}

// Classifier derives a Classification from a record.
type Classifier func(Record) Classification

// Conventional field names inspected by DefaultClassifier.
const (
	StatusField   = "status"
	PriorityField = "priority"
)

// DefaultClassifier flags a record urgent when its status is critical or
// urgent, or its priority is high. Comparisons ignore case.
func DefaultClassifier(rec Record) Classification {
	status := rec.Field(StatusField)
	critical := strings.EqualFold(status, "critical")
	urgent := critical ||
		strings.EqualFold(status, "urgent") ||
		strings.EqualFold(rec.Field(PriorityField), "high")
	return Classification{Urgent: urgent, Critical: critical}
}

// FieldClassifier flags a record urgent when field equals any of values,
// ignoring case. It never sets Critical.
func FieldClassifier(field string, values ...string) Classifier {
	return func(rec Record) Classification {
		got := rec.Field(field)
		for _, v := range values {
			if strings.EqualFold(got, v) {
				return Classification{Urgent: true}
			}
		}
		return Classification{}
	}
}

// AnyOf merges classifiers: a flag is set when any classifier sets it.
func AnyOf(classifiers ...Classifier) Classifier {
	return func(rec Record) Classification {
		var out Classification
		for _, c := range classifiers {
			if c == nil {
				continue
			}
			got := safeClassify(c, rec)
			out.Urgent = out.Urgent || got.Urgent
			out.Critical = out.Critical || got.Critical
		}
		return out
	}
}

func safeClassify(c Classifier, rec Record) (out Classification) {
	defer func() {
		if recover() != nil {
			out = Classification{}
		}
	}()
	return c(rec)
}
