package reader

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CellKind discriminates the value held by a CellValue.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
	KindDate
	KindBool
)

// CellValue is a tagged variant for one spreadsheet cell. Exactly one of the
// payload fields is meaningful for a given Kind.
type CellValue struct {
	Kind    CellKind
	Text    string
	Number  decimal.Decimal
	Time    time.Time
	Boolean bool
}

func EmptyCell() CellValue               { return CellValue{Kind: KindEmpty} }
func TextCell(s string) CellValue        { return CellValue{Kind: KindText, Text: s} }
func NumberCell(d decimal.Decimal) CellValue {
	return CellValue{Kind: KindNumber, Number: d}
}
func DateCell(t time.Time) CellValue { return CellValue{Kind: KindDate, Time: t} }
func BoolCell(b bool) CellValue      { return CellValue{Kind: KindBool, Boolean: b} }

// CellFromString classifies a raw string cell as Empty, Number or Text.
// Dates stay textual until a caller asks for Date(); spreadsheet libraries
// hand us display strings, not typed values.
func CellFromString(s string) CellValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return EmptyCell()
	}
	if d, ok := ParseDecimal(trimmed); ok && looksNumeric(trimmed) {
		return NumberCell(d)
	}
	return TextCell(trimmed)
}

// looksNumeric guards against strings like "3건" that ParseDecimal would
// reject anyway, and against account-number-looking text with leading zeros
// being silently retyped.
func looksNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return false
	}
	if strings.HasPrefix(s, "0") && len(s) > 1 && !strings.HasPrefix(s, "0.") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ',' || r == '.' || r == '-' || r == '+' || r == '%':
		default:
			return false
		}
	}
	return true
}

// IsEmpty reports whether the cell carries no value at all.
func (c CellValue) IsEmpty() bool {
	if c.Kind == KindEmpty {
		return true
	}
	if c.Kind == KindText {
		t := strings.TrimSpace(c.Text)
		return t == "" || t == "-"
	}
	return false
}

// String renders the payload as trimmed text. Empty cells render as "".
func (c CellValue) String() string {
	switch c.Kind {
	case KindText:
		return strings.TrimSpace(c.Text)
	case KindNumber:
		return c.Number.String()
	case KindDate:
		return c.Time.Format("2006-01-02")
	case KindBool:
		if c.Boolean {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Decimal converts the cell to a decimal following the upload parsing rules:
// thousands separators and inner spaces are stripped, a lone dash means no
// value, a trailing percent sign divides by 100.
func (c CellValue) Decimal() (decimal.Decimal, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Number, true
	case KindText:
		return ParseDecimal(c.Text)
	case KindBool:
		if c.Boolean {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	default:
		return decimal.Zero, false
	}
}

// Int converts the cell to an int where the value is integral.
func (c CellValue) Int() (int, bool) {
	d, ok := c.Decimal()
	if !ok || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Date converts the cell to a date. Textual cells are tried against the
// common disk formats; purely numeric cells in a plausible range are treated
// as spreadsheet serial dates (epoch 1899-12-30).
func (c CellValue) Date() (time.Time, bool) {
	switch c.Kind {
	case KindDate:
		return c.Time, true
	case KindNumber:
		return serialDate(c.Number)
	case KindText:
		s := strings.TrimSpace(c.Text)
		if s == "" || s == "-" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		if d, ok := ParseDecimal(s); ok {
			return serialDate(d)
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Bool converts the cell to a boolean, accepting the yes/no spellings seen
// across the bank disks.
func (c CellValue) Bool() (bool, bool) {
	if c.Kind == KindBool {
		return c.Boolean, true
	}
	switch strings.ToLower(strings.TrimSpace(c.String())) {
	case "y", "yes", "true", "1", "예", "○":
		return true, true
	case "n", "no", "false", "0", "아니오", "x":
		return false, true
	}
	return false, false
}

// ParseDecimal applies the disk numeric conventions to a raw string.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return decimal.Zero, false
	}
	if strings.HasSuffix(s, "%") {
		d, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
		if err != nil {
			return decimal.Zero, false
		}
		return d.Div(decimal.NewFromInt(100)), true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

func serialDate(d decimal.Decimal) (time.Time, bool) {
	f, _ := d.Float64()
	if f <= 0 || f >= 100000 {
		return time.Time{}, false
	}
	days := int(f)
	frac := f - float64(days)
	t := serialEpoch.AddDate(0, 0, days)
	t = t.Add(time.Duration(frac * 24 * float64(time.Hour)))
	return t, true
}
