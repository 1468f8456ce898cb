package ingest

import (
	"sort"
	"strings"
)

// SheetType is a canonical disk sheet classification. The canonical set is
// closed: six types plus Unknown.
type SheetType int

const (
	SheetUnknown SheetType = iota
	SheetBorrowerGeneral
	SheetBorrowerRestructuring
	SheetLoan
	SheetProperty
	SheetRegistryDetail
	SheetGuarantee
)

var sheetTypeNames = map[SheetType]string{
	SheetUnknown:               "Unknown",
	SheetBorrowerGeneral:       "BorrowerGeneral",
	SheetBorrowerRestructuring: "BorrowerRestructuring",
	SheetLoan:                  "Loan",
	SheetProperty:              "Property",
	SheetRegistryDetail:        "RegistryDetail",
	SheetGuarantee:             "Guarantee",
}

// canonicalSheetNames are the internal standard sheet names; they key the
// mapping template's per-bank sheets sections.
var canonicalSheetNames = map[SheetType]string{
	SheetBorrowerGeneral:       "차주일반정보",
	SheetBorrowerRestructuring: "회생차주정보",
	SheetLoan:                  "채권일반정보",
	SheetProperty:              "물건정보",
	SheetRegistryDetail:        "등기부등본정보",
	SheetGuarantee:             "신용보증서",
}

func (t SheetType) String() string {
	if n, ok := sheetTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// CanonicalName returns the standard sheet name keying the template.
func (t SheetType) CanonicalName() string {
	return canonicalSheetNames[t]
}

// SheetTypeFromCanonical maps a template sheets key back to its SheetType.
func SheetTypeFromCanonical(name string) SheetType {
	normalized := NormalizeName(name)
	for t, canonical := range canonicalSheetNames {
		if normalized == NormalizeName(canonical) {
			return t
		}
	}
	return SheetUnknown
}

// ParseSheetType resolves a caller-supplied type label, accepting either
// the English type name or the canonical sheet name. Unrecognized labels
// map to Unknown.
func ParseSheetType(label string) SheetType {
	for t, n := range sheetTypeNames {
		if t != SheetUnknown && strings.EqualFold(strings.TrimSpace(label), n) {
			return t
		}
	}
	return SheetTypeFromCanonical(label)
}

// CanonicalSheetTypes lists the closed canonical set in processing order:
// the borrower roster first so dependent sheets can resolve against it.
var CanonicalSheetTypes = []SheetType{
	SheetBorrowerGeneral,
	SheetBorrowerRestructuring,
	SheetLoan,
	SheetProperty,
	SheetRegistryDetail,
	SheetGuarantee,
}

// ClassifySheet maps one observed sheet name to a canonical type using the
// bank's configured sheet names. Phase 1 is exact (normalized, or raw
// case-insensitive); phase 2 tests containment with longer configured names
// first, so "Sheet A-1" beats "Sheet A".
func ClassifySheet(tpl *MappingTemplate, bank BankType, sheetName string) SheetType {
	cfg, ok := tpl.BankConfigFor(bank)
	if !ok || len(cfg.Sheets) == 0 {
		return SheetUnknown
	}

	normalized := NormalizeName(sheetName)

	for canonical, sc := range cfg.Sheets {
		if sc.SheetName == "" {
			continue
		}
		if normalized == NormalizeName(sc.SheetName) || strings.EqualFold(sheetName, sc.SheetName) {
			return SheetTypeFromCanonical(canonical)
		}
	}

	type candidate struct {
		canonical string
		sheetName string
	}
	var ordered []candidate
	for canonical, sc := range cfg.Sheets {
		if sc.SheetName != "" {
			ordered = append(ordered, candidate{canonical, sc.SheetName})
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].sheetName) != len(ordered[j].sheetName) {
			return len(ordered[i].sheetName) > len(ordered[j].sheetName)
		}
		return ordered[i].sheetName < ordered[j].sheetName
	})

	for _, c := range ordered {
		if strings.Contains(sheetName, c.sheetName) || strings.Contains(normalized, NormalizeName(c.sheetName)) {
			return SheetTypeFromCanonical(c.canonical)
		}
	}
	return SheetUnknown
}
