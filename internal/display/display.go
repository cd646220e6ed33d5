// Package display formats report values for people: grouped counts,
// localized timestamps and request method labels.
package display

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Bahjat/har-report/backend/internal/model"
)

// Unknown is rendered for timestamps that are missing or cannot be parsed.
const Unknown = "unknown"

const defaultLayout = "2006-01-02 15:04:05"

// timestampLayouts follows each locale's short date and medium time style.
// Lookups try the full tag first, then its base language.
var timestampLayouts = map[string]string{
	"en":    "1/2/2006, 3:04:05 PM",
	"en-GB": "02/01/2006, 15:04:05",
	"en-AU": "2/1/2006, 3:04:05 pm",
	"en-CA": "2006-01-02, 3:04:05 p.m.",
	"de":    "2.1.2006, 15:04:05",
	"fr":    "02/01/2006 15:04:05",
	"es":    "2/1/2006, 15:04:05",
	"it":    "2/1/2006, 15:04:05",
	"nl":    "2-1-2006, 15:04:05",
	"pt":    "02/01/2006, 15:04:05",
	"ja":    "2006/1/2 15:04:05",
	"zh":    "2006/1/2 15:04:05",
	"sv":    "2006-01-02 15:04:05",
}

// Formatter renders values for one locale and time zone. It is safe for
// concurrent use.
type Formatter struct {
	printer *message.Printer
	layout  string
	loc     *time.Location
}

// New returns a Formatter for the BCP 47 locale and time zone. A nil loc
// means UTC.
func New(locale string, loc *time.Location) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("display: invalid locale %q: %w", locale, err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Formatter{
		printer: message.NewPrinter(tag),
		layout:  layoutFor(tag),
		loc:     loc,
	}, nil
}

func layoutFor(tag language.Tag) string {
	if l, ok := timestampLayouts[tag.String()]; ok {
		return l
	}
	base, _ := tag.Base()
	if l, ok := timestampLayouts[base.String()]; ok {
		return l
	}
	return defaultLayout
}

// Count renders n with the locale's digit grouping, e.g. 12345 as "12,345"
// in en-US.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Decimal renders x with grouping and at most two fraction digits.
func (f *Formatter) Decimal(x float64) string {
	return f.printer.Sprint(number.Decimal(x, number.MaxFractionDigits(2)))
}

// Timestamp renders the instant in the formatter's locale and time zone, or
// Unknown when it is missing or unparseable. Date-times without a zone are
// taken to be in the formatter's time zone and shown unshifted.
func (f *Formatter) Timestamp(i model.Instant) string {
	t, ok := i.TimeIn(f.loc)
	if !ok {
		return Unknown
	}
	return t.In(f.loc).Format(f.layout)
}

// MethodLabel resolves the request method to display for a pattern: its
// method when set, otherwise the first space-separated token of its URL
// ("GET /api/users" yields "GET"), otherwise an empty label.
func MethodLabel(p model.PatternMetric) string {
	if p.Method != "" {
		return p.Method
	}
	method, _, _ := strings.Cut(p.URL, " ")
	return method
}
