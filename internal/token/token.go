package token

import "strings"

// Family identifies the placeholder namespace inside a query template.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyPage
	FamilyCurrentDate
	FamilyCurrentMonth
	FamilyCurrentYear
	FamilyQueryString
	FamilyPageContext
)

func (f Family) String() string {
	switch f {
	case FamilyPage:
		return "Page"
	case FamilyCurrentDate:
		return "CurrentDate"
	case FamilyCurrentMonth:
		return "CurrentMonth"
	case FamilyCurrentYear:
		return "CurrentYear"
	case FamilyQueryString:
		return "QueryString"
	case FamilyPageContext:
		return "PageContext"
	default:
		return "Unknown"
	}
}

// Placeholder is one extracted {Family} or {Family.Field} span.
type Placeholder struct {
	Raw    string // exact matched text including braces
	Family Family
	Field  string
	Start  int
	End    int // exclusive
}

// Scan extracts all placeholder spans from a template in a single pass.
// Family names match case-insensitively. Text between braces that does not
// look like a known family is still returned, tagged FamilyUnknown, so the
// resolver can leave it untouched.
func Scan(template string) []Placeholder {
	var placeholders []Placeholder

	pos := 0
	for pos < len(template) {
		open := strings.IndexByte(template[pos:], '{')
		if open == -1 {
			break
		}
		open += pos

		closing := strings.IndexByte(template[open:], '}')
		if closing == -1 {
			break
		}
		closing += open

		inner := template[open+1 : closing]
		family, field := classify(inner)

		placeholders = append(placeholders, Placeholder{
			Raw:    template[open : closing+1],
			Family: family,
			Field:  field,
			Start:  open,
			End:    closing + 1,
		})

		pos = closing + 1
	}

	return placeholders
}

func classify(inner string) (Family, string) {
	name := inner
	field := ""
	if dot := strings.IndexByte(inner, '.'); dot != -1 {
		name = inner[:dot]
		field = inner[dot+1:]
	}

	switch {
	case strings.EqualFold(name, "Page") && field != "":
		return FamilyPage, field
	case strings.EqualFold(name, "CurrentDate") && field == "":
		return FamilyCurrentDate, ""
	case strings.EqualFold(name, "CurrentMonth") && field == "":
		return FamilyCurrentMonth, ""
	case strings.EqualFold(name, "CurrentYear") && field == "":
		return FamilyCurrentYear, ""
	case strings.EqualFold(name, "QueryString") && field != "":
		return FamilyQueryString, field
	case strings.EqualFold(name, "PageContext") && field != "":
		return FamilyPageContext, field
	default:
		return FamilyUnknown, field
	}
}
