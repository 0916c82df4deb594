package reporter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CourtName is the standard court line for every published ruling.
const CourtName = "Mayflower District Court, District for the County of Clark"

var (
	citeRe = regexp.MustCompile(`(\d+)\s+M\.2d\s+(\d+)`)
	slugRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// FormatReporterCite builds the official citation for a published ruling,
// e.g. "Smith v. Jones, 4 M.2d 10 (May 4th 2024)".
func FormatReporterCite(title string, volume, pageStart int, date string) string {
	return fmt.Sprintf("%s, %d M.2d %d (%s)", title, volume, pageStart, date)
}

// FormatSlipCite builds the slip citation used before a ruling is paginated,
// e.g. "Smith v. Jones, No. 22-001 (Mayflower Dist. Ct. May 4th 2024)".
func FormatSlipCite(title, docket, date string) string {
	return fmt.Sprintf("%s, No. %s (Mayflower Dist. Ct. %s)", title, docket, date)
}

// ParseReporterCite extracts the volume and starting page from the "V M.2d P"
// core of a reporter citation. ok is false when no citation core is present.
func ParseReporterCite(s string) (volume, pageStart int, ok bool) {
	m := citeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	volume, err1 := strconv.Atoi(m[1])
	pageStart, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return volume, pageStart, true
}

// Slugify converts a case title into a URL path segment.
func Slugify(title string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "case"
	}
	return s
}

// Cite returns the citation label for a record: the published reporter cite
// when present, otherwise one rebuilt from the record's own pagination
// fields in the publisher's format, otherwise the slip cite. A record with
// nothing to cite by yields "".
func (c Case) Cite() string {
	if c.ReporterCite != "" {
		return c.ReporterCite
	}
	date := c.displayDate()
	if c.Title == "" || date == "" {
		return ""
	}
	if c.Volume > 0 && c.PageStart > 0 {
		return FormatReporterCite(c.Title, c.Volume, c.PageStart, date)
	}
	if c.Docket != "" {
		return FormatSlipCite(c.Title, c.Docket, date)
	}
	return ""
}

// PagePath returns the record's page location under the site root,
// rebuilding the publisher's cases/<volume>/<page>-<slug>/ layout when the
// path is missing but the pagination fields are present.
func (c Case) PagePath() string {
	if c.Path != "" {
		return c.Path
	}
	if c.Volume > 0 && c.PageStart > 0 {
		return fmt.Sprintf("cases/%d/%d-%s/", c.Volume, c.PageStart, Slugify(c.Title))
	}
	return ""
}

// displayDate is the human decision date, recovered from the ISO form when
// the publisher's rendering is absent.
func (c Case) displayDate() string {
	if c.DecisionDate != "" {
		return c.DecisionDate
	}
	if t, err := time.Parse("2006-01-02", c.DateISO); err == nil {
		return OrdinalDate(t)
	}
	return ""
}

// OrdinalDate renders a decision date the way case pages display it,
// e.g. "May 4th 2024".
func OrdinalDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
