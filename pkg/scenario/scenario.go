package scenario

import (
	"fmt"
	"strings"
)

// Name is one fixed intent category used to select a response overlay.
type Name string

const Off Name = "off_topic"

// Names is the fixed, ordered label set. Matching and classification
// always walk it in this order; off_topic is the catch-all and stays
// last.
var Names = []Name{
	"admissions",
	"schedule",
	"courses",
	"faculty_info",
	"academic_calendar",
	"exams",
	"library",
	"finance",
	"registrar",
	"career_center",
	"international_office",
	"student_services",
	"alumni",
	"campus_map",
	"housing",
	"cafeteria",
	"sports",
	"events",
	"transport",
	"news",
	"contact_us",
	Off,
}

// aliases maps each label to its known phrase variants. Loaded once,
// never mutated at runtime.
var aliases = map[Name][]string{
	"admissions": {
		"admissions", "admission", "apply", "enroll", "enrol", "application",
		"admit", "enrollment", "enrolment",
	},
	"schedule": {
		"schedule", "timetable", "class schedule", "time table",
	},
	"courses": {
		"courses", "course", "subjects", "classes", "curriculum", "modules",
	},
	"faculty_info": {
		"faculty", "faculty info", "professors", "teachers", "staff", "instructors",
		"faculty information",
	},
	"academic_calendar": {
		"academic calendar", "term dates", "semester dates", "holidays", "academic schedule",
	},
	"exams": {
		"exams", "exam", "midterms", "finals", "test", "tests", "assessment",
	},
	"library": {
		"library", "libraries", "books", "lib",
	},
	"finance": {
		"finance", "financial aid", "tuition", "fees", "payments", "billing",
		"scholarship", "scholarships",
	},
	"registrar": {
		"registrar", "records", "transcript", "student records",
		"enrollment verification",
	},
	"career_center": {
		"career center", "career services", "careers", "jobs", "internships", "employment",
	},
	"international_office": {
		"international office", "visa", "immigration", "international", "visas",
		"residence permit",
	},
	"student_services": {
		"student services", "support", "helpdesk", "counseling", "advising", "student support",
	},
	"alumni": {
		"alumni", "graduates", "alumnus", "alumnae", "alumni office",
	},
	"campus_map": {
		"campus map", "map", "directions", "campus directions", "building map",
	},
	"housing": {
		"housing", "dorms", "accommodation", "residence", "residence hall", "dormitories",
	},
	"cafeteria": {
		"cafeteria", "canteen", "dining", "dining hall", "meal plan", "food court",
	},
	"sports": {
		"sports", "gym", "fitness", "athletics", "recreation", "sport",
	},
	"events": {
		"events", "event", "calendar of events", "whats on",
	},
	"transport": {
		"transport", "transportation", "shuttle", "bus", "parking", "commute",
	},
	"news": {
		"news", "updates", "announcements",
	},
	"contact_us": {
		"contact", "contacts", "contact us", "get in touch", "email us",
	},
}

// Meta describes one scenario for listings and for the classifier
// context block.
type Meta struct {
	Title        string
	Description  string
	SystemPrompt string
}

// IndexEntry is one row of the public scenario listing.
type IndexEntry struct {
	Name  Name   `json:"name"`
	Title string `json:"title"`
}

// Index returns the ordered {name, title} listing.
func Index() []IndexEntry {
	items := make([]IndexEntry, 0, len(Names))
	for _, name := range Names {
		title := registry[name].Title
		if title == "" {
			title = humanize(name)
		}
		items = append(items, IndexEntry{Name: name, Title: title})
	}
	return items
}

// SystemPromptFor returns the per-scenario overlay instruction, or ""
// for an unknown label.
func SystemPromptFor(name Name) string {
	key := Name(strings.ToLower(strings.TrimSpace(string(name))))
	return registry[key].SystemPrompt
}

// DefinitionsText renders a concise label/description list injected
// into the classifier prompt.
func DefinitionsText() string {
	var b strings.Builder
	for _, name := range Names {
		desc := registry[name].Description
		if desc == "" {
			desc = "General university-related topic."
		}
		fmt.Fprintf(&b, "- %s: %s\n", name, desc)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Valid reports whether name is a member of the fixed label set.
func Valid(name Name) bool {
	_, ok := registry[name]
	return ok
}

func humanize(name Name) string {
	words := strings.Split(string(name), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
