package catalog

import (
	"fmt"

	"github.com/medlux/wardgrid/internal/grid"
)

var statusTones = map[string]grid.Tone{
	"critical":     grid.ToneDanger,
	"urgent":       grid.ToneDanger,
	"escalated":    grid.ToneDanger,
	"cancelled":    grid.ToneDanger,
	"stable":       grid.ToneSuccess,
	"active":       grid.ToneSuccess,
	"resolved":     grid.ToneSuccess,
	"done":         grid.ToneSuccess,
	"completed":    grid.ToneSuccess,
	"confirmed":    grid.ToneSuccess,
	"administered": grid.ToneSuccess,
	"on duty":      grid.ToneSuccess,
	"discharged":   grid.ToneSuccess,
	"pending":      grid.ToneWarning,
	"on leave":     grid.ToneWarning,
	"monitoring":   grid.ToneWarning,
	"recovering":   grid.ToneWarning,
	"ongoing":      grid.ToneInfo,
	"open":         grid.ToneInfo,
	"in progress":  grid.ToneInfo,
	"scheduled":    grid.ToneInfo,
	"admitted":     grid.ToneInfo,
}

var priorityTones = map[string]grid.Tone{
	"high":   grid.ToneDanger,
	"medium": grid.ToneWarning,
	"low":    grid.ToneSuccess,
}

func status() grid.CellRenderer { return grid.Badge(statusTones, grid.ToneInfo) }

func priority() grid.CellRenderer { return grid.Badge(priorityTones, grid.ToneNeutral) }

func fullName(_ any, rec grid.Record) string {
	return rec.Field("firstName") + " " + rec.Field("lastName")
}

func suffix(unit string) grid.CellRenderer {
	return grid.Custom(func(v any, _ grid.Record) string {
		s := grid.Stringify(v)
		if s == "" {
			return ""
		}
		return s + unit
	})
}

func withSecondary(field string) grid.CellRenderer {
	return grid.Custom(func(v any, rec grid.Record) string {
		if extra := rec.Field(field); extra != "" {
			return fmt.Sprintf("%s · %s", grid.Stringify(v), extra)
		}
		return grid.Stringify(v)
	})
}

var taskCycle = []string{"Pending", "In Progress", "Done"}

func advanceTask(rec grid.Record) {
	current := rec.Field("status")
	for i, s := range taskCycle {
		if s == current {
			rec["status"] = taskCycle[(i+1)%len(taskCycle)]
			return
		}
	}
	rec["status"] = taskCycle[0]
}

var aliases = map[string]string{
	"patient directory":     "patients",
	"physicians":            "doctors",
	"clinical team":         "nurses",
	"staff directory":       "staff",
	"institutional units":   "departments",
	"patient visits":        "appointments",
	"active admissions":     "admissions",
	"lab":                   "laboratory",
	"diagnostic tests":      "laboratory",
	"medical records":       "records",
	"support":               "tickets",
	"support tickets":       "tickets",
	"task board":            "tasks",
	"medication log":        "medications",
	"meds":                  "medications",
	"duty roster":           "roster",
	"nursing shifts":        "roster",
	"patient care":          "care",
	"patient vitals & care": "care",
}

var screens = []Screen{
	withActions(Screen{
		Name:     "patients",
		Title:    "Patient Directory",
		Subtitle: "Registered patients and their current status.",
		seed:     "patients.json",
		Table: grid.Table{
			Title: "Patient Directory",
			Columns: []grid.Column{
				{ID: "firstName", Label: "Patient", Cell: grid.Custom(fullName)},
				{ID: "email", Label: "Contact", Cell: withSecondary("phone")},
				{ID: "gender", Label: "Info", Cell: withSecondary("bloodGroup")},
				{ID: "city", Label: "Location", Cell: grid.IconText("⌂")},
				{ID: "status", Label: "Status", Cell: status()},
			},
		},
	}),
	withActions(Screen{
		Name:     "doctors",
		Title:    "Physicians & Specialists",
		Subtitle: "Medical staff by specialization.",
		seed:     "doctors.json",
		Table: grid.Table{
			Title: "Physicians & Specialists",
			Columns: []grid.Column{
				{ID: "firstName", Label: "Doctor Name", Cell: grid.Custom(func(v any, rec grid.Record) string {
					return "Dr. " + fullName(v, rec)
				})},
				{ID: "specialization", Label: "Specialization", Cell: grid.Badge(nil, grid.ToneAccent)},
				{ID: "email", Label: "Contact Details", Cell: withSecondary("phoneNumber")},
				{ID: "joiningDate", Label: "Joined", Align: grid.AlignRight},
			},
		},
	}),
	withActions(Screen{
		Name:     "nurses",
		Title:    "Clinical Team",
		Subtitle: "Nursing staff by department and shift.",
		seed:     "nurses.json",
		Table: grid.Table{
			Title: "Clinical Team",
			Columns: []grid.Column{
				{ID: "name", Label: "Nurse"},
				{ID: "department", Label: "Department", Cell: grid.Badge(nil, grid.ToneInfo)},
				{ID: "shift", Label: "Shift", Cell: grid.IconTextBy(map[string]string{"day": "☀", "night": "☾"}, "·")},
			},
		},
	}),
	withActions(Screen{
		Name:     "staff",
		Title:    "Staff Directory",
		Subtitle: "Administrative and support staff.",
		seed:     "staff.json",
		Table: grid.Table{
			Title: "Staff Directory",
			Columns: []grid.Column{
				{ID: "name", Label: "Name"},
				{ID: "role", Label: "Designation"},
				{ID: "department", Label: "Department"},
				{ID: "status", Label: "Status", Cell: status()},
			},
		},
	}),
	withActions(Screen{
		Name:     "departments",
		Title:    "Institutional Units",
		Subtitle: "Hospital departments and their heads.",
		seed:     "departments.json",
		Table: grid.Table{
			Title: "Institutional Units",
			Columns: []grid.Column{
				{ID: "name", Label: "Department"},
				{ID: "head", Label: "Head", Cell: grid.IconText("☤")},
				{ID: "description", Label: "Description"},
			},
		},
	}),
	withActions(Screen{
		Name:     "appointments",
		Title:    "Patient Visits",
		Subtitle: "Scheduled visits awaiting confirmation.",
		seed:     "appointments.json",
		Table: grid.Table{
			Title: "Patient Visits",
			Columns: []grid.Column{
				{ID: "name", Label: "Patient", Cell: withSecondary("email")},
				{ID: "date", Label: "Schedule", Cell: withSecondary("time")},
				{ID: "status", Label: "Status", Cell: status()},
			},
		},
		actions: []rowAction{
			{
				Action: grid.Action{ID: "confirm", Label: "Confirm", Tone: grid.ToneSuccess},
				when:   fieldIs("status", "Pending"),
				apply:  setField("status", "Confirmed"),
			},
			{
				Action: grid.Action{ID: "cancel", Label: "Cancel", Tone: grid.ToneDanger},
				when:   fieldIsNot("status", "Cancelled"),
				apply:  setField("status", "Cancelled"),
			},
		},
	}),
	withActions(Screen{
		Name:     "admissions",
		Title:    "Active Admissions",
		Subtitle: "Inpatients by room.",
		seed:     "admissions.json",
		Table: grid.Table{
			Title: "Active Admissions",
			Columns: []grid.Column{
				{ID: "patientName", Label: "Patient"},
				{ID: "roomNumber", Label: "Room", Cell: grid.IconText("▣")},
				{ID: "admitDate", Label: "Admitted", Align: grid.AlignRight},
				{ID: "status", Label: "Status", Cell: status()},
			},
		},
		actions: []rowAction{{
			Action: grid.Action{ID: "discharge", Label: "Discharge", Tone: grid.ToneAccent},
			when:   fieldIs("status", "Admitted"),
			apply:  setField("status", "Discharged"),
		}},
	}),
	withActions(Screen{
		Name:     "laboratory",
		Title:    "Diagnostic Tests",
		Subtitle: "Laboratory orders and results.",
		seed:     "laboratory.json",
		Table: grid.Table{
			Title: "Diagnostic Tests",
			Columns: []grid.Column{
				{ID: "patientName", Label: "Patient"},
				{ID: "testName", Label: "Test", Cell: grid.IconText("⚗")},
				{ID: "date", Label: "Date", Align: grid.AlignRight},
				{ID: "status", Label: "Status", Cell: status()},
			},
		},
		actions: []rowAction{{
			Action: grid.Action{ID: "complete", Label: "Mark complete", Tone: grid.ToneSuccess},
			when:   fieldIs("status", "Pending"),
			apply:  setField("status", "Completed"),
		}},
	}),
	withActions(Screen{
		Name:     "records",
		Title:    "Patient Record Archive",
		Subtitle: "Diagnoses and clinical notes.",
		seed:     "records.json",
		Table: grid.Table{
			Title: "Patient Record Archive",
			Columns: []grid.Column{
				{ID: "patient", Label: "Patient", Cell: grid.Custom(func(v any, rec grid.Record) string {
					if age := rec.Field("age"); age != "" {
						return fmt.Sprintf("%s (%s)", grid.Stringify(v), age)
					}
					return grid.Stringify(v)
				})},
				{ID: "diagnosis", Label: "Diagnosis"},
				{ID: "date", Label: "Date", Align: grid.AlignRight},
				{ID: "status", Label: "Status", Cell: status()},
			},
		},
	}),
	withActions(Screen{
		Name:     "tickets",
		Title:    "Support Tickets",
		Subtitle: "Facilities, IT and inventory requests.",
		seed:     "tickets.json",
		Table: grid.Table{
			Title: "Support Tickets",
			Columns: []grid.Column{
				{ID: "subject", Label: "Subject", Cell: withSecondary("submittedBy")},
				{ID: "category", Label: "Category", Cell: grid.IconTextBy(map[string]string{
					"it": "⌨", "facilities": "⚒", "inventory": "▤",
				}, "·")},
				{ID: "priority", Label: "Priority", Cell: priority()},
				{ID: "status", Label: "Status", Cell: status()},
				{ID: "created", Label: "Date", Align: grid.AlignRight},
			},
		},
		actions: []rowAction{{
			Action: grid.Action{ID: "resolve", Label: "Resolve", Tone: grid.ToneSuccess},
			when:   fieldIsNot("status", "Resolved"),
			apply:  setField("status", "Resolved"),
		}},
	}),
	withActions(Screen{
		Name:     "tasks",
		Title:    "Task Board",
		Subtitle: "Operational tasks by priority and due date.",
		seed:     "tasks.json",
		Table: grid.Table{
			Title: "Task Board",
			Columns: []grid.Column{
				{ID: "title", Label: "Task", Cell: withSecondary("category")},
				{ID: "priority", Label: "Priority", Cell: priority()},
				{ID: "status", Label: "Status", Cell: status()},
				{ID: "due", Label: "Due", Align: grid.AlignRight},
			},
		},
		actions: []rowAction{{
			Action: grid.Action{ID: "advance", Label: "Advance", Tone: grid.ToneInfo},
			apply:  advanceTask,
		}},
	}),
	withActions(Screen{
		Name:     "medications",
		Title:    "Medication Log",
		Subtitle: "Today's scheduled doses.",
		seed:     "medications.json",
		Table: grid.Table{
			Title: "Medication Log",
			Columns: []grid.Column{
				{ID: "patient", Label: "Patient", Cell: withSecondary("nurse")},
				{ID: "medication", Label: "Medication", Cell: grid.Custom(func(v any, rec grid.Record) string {
					return fmt.Sprintf("%s · %s · %s", grid.Stringify(v), rec.Field("dose"), rec.Field("route"))
				})},
				{ID: "time", Label: "Scheduled Time", Align: grid.AlignRight},
				{ID: "status", Label: "Status", Cell: status()},
			},
		},
		actions: []rowAction{{
			Action: grid.Action{ID: "administer", Label: "Administer", Tone: grid.ToneSuccess},
			when:   fieldIs("status", "Pending"),
			apply:  setField("status", "Administered"),
		}},
	}),
	withActions(Screen{
		Name:     "roster",
		Title:    "Nursing Shifts",
		Subtitle: "Duty roster by ward and date.",
		seed:     "roster.json",
		Table: grid.Table{
			Title: "Nursing Shifts",
			Columns: []grid.Column{
				{ID: "nurse", Label: "Nurse", Cell: withSecondary("role")},
				{ID: "ward", Label: "Ward"},
				{ID: "shift", Label: "Shift"},
				{ID: "date", Label: "Date", Align: grid.AlignRight},
				{ID: "status", Label: "Status", Cell: status()},
			},
		},
		actions: []rowAction{{
			Action: grid.Action{ID: "check-in", Label: "Check in", Tone: grid.ToneSuccess},
			when:   fieldIs("status", "Scheduled"),
			apply:  setField("status", "On Duty"),
		}},
	}),
	withActions(Screen{
		Name:     "care",
		Title:    "Patient Vitals & Care",
		Subtitle: "Live vitals, care schedule, and medication tracking.",
		seed:     "care.json",
		Table: grid.Table{
			Title: "Patient Vitals & Care",
			Columns: []grid.Column{
				{ID: "name", Label: "Patient", Cell: grid.Custom(func(v any, rec grid.Record) string {
					name := grid.Stringify(v)
					if rec.Field("alert") == "true" {
						name = "⚠ " + name
					}
					if bed := rec.Field("bed"); bed != "" {
						name += " · " + bed
					}
					return name
				})},
				{ID: "condition", Label: "Condition", Cell: status()},
				{ID: "bp", Label: "Blood Pressure", Cell: suffix(" mmHg")},
				{ID: "spo2", Label: "SpO₂", Align: grid.AlignRight, Cell: grid.Progress(100)},
				{ID: "meds", Label: "Meds Due", Align: grid.AlignRight, Cell: suffix(" today")},
				{ID: "nextCare", Label: "Next Care", Cell: grid.Badge(map[string]grid.Tone{"now": grid.ToneDanger}, grid.ToneInfo)},
			},
			Classifier: grid.AnyOf(
				grid.DefaultClassifier,
				criticalWhen("condition", "critical"),
				grid.FieldClassifier("alert", "true"),
			),
		},
	}),
}

// criticalWhen marks records critical (and therefore urgent) when field
// holds one of values.
func criticalWhen(field string, values ...string) grid.Classifier {
	urgent := grid.FieldClassifier(field, values...)
	return func(rec grid.Record) grid.Classification {
		c := urgent(rec)
		c.Critical = c.Urgent
		return c
	}
}
