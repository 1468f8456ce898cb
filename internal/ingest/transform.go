package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"npldisk/internal/reader"
)

// Row transforms run on raw header-keyed rows before column resolution, so
// each one carries its own alias list for the headers it reads.

var assetTypeKeys = []string{"자산유형", "채권구분", "Pool 구분", "Pool"}

// TransformAssetType rewrites pool codes to their full labels: R means a
// regular (담보부) pool and S a special situation pool. Other values pass
// through untouched.
func TransformAssetType(row map[string]reader.CellValue) {
	key, cell, ok := firstCell(row, assetTypeKeys)
	if !ok {
		return
	}
	switch strings.ToUpper(strings.TrimSpace(cell.String())) {
	case "R":
		row[key] = reader.TextCell("Regular")
	case "S":
		row[key] = reader.TextCell("Special")
	}
}

var (
	loanSerialKeys     = []string{"대출일련번호", "채권일련번호", "계좌일련번호"}
	borrowerSerialKeys = []string{"차주일련번호", "차주번호"}
)

// TransformLoanSerialNumber prefixes a bare numeric loan serial with its
// borrower number so the account key is unique across borrowers. Serials
// that already carry a separator or any non-numeric text are left alone.
func TransformLoanSerialNumber(row map[string]reader.CellValue) {
	loanKey, loanCell, ok := firstCell(row, loanSerialKeys)
	if !ok || loanCell.IsEmpty() {
		return
	}
	_, borrowerCell, ok := firstCell(row, borrowerSerialKeys)
	if !ok || borrowerCell.IsEmpty() {
		return
	}

	loan := strings.TrimSpace(loanCell.String())
	borrower := strings.TrimSpace(borrowerCell.String())
	if loan == "" || borrower == "" || !bareSerial(loan, "-") {
		return
	}
	row[loanKey] = reader.TextCell(borrower + "-" + loan)
}

// bareSerial reports whether s is a plain numeric serial still missing its
// borrower prefix: no separator and parseable as a number once commas are
// stripped.
func bareSerial(s, sep string) bool {
	if strings.Contains(s, sep) {
		return false
	}
	_, ok := reader.ParseDecimal(s)
	return ok
}

var (
	normalRateKeys  = []string{"정상이자율", "약정이자율(%)", "약정이자율"}
	overdueRateKeys = []string{"연체이자율", "Cutoff적용이자율(%)", "Cutoff적용이자율"}

	rateSpread = decimal.NewFromFloat(0.03)
)

// TransformInterestRates fills a missing rate from its counterpart using the
// standard 3 percentage point spread. A derived normal rate never goes below
// zero.
func TransformInterestRates(row map[string]reader.CellValue) {
	normalKey, normalCell, hasNormal := firstCell(row, normalRateKeys)
	overdueKey, overdueCell, hasOverdue := firstCell(row, overdueRateKeys)

	normal, normalOK := normalCell.Decimal()
	overdue, overdueOK := overdueCell.Decimal()

	switch {
	case normalOK && !overdueOK && hasOverdue:
		row[overdueKey] = reader.NumberCell(normal.Add(rateSpread))
	case overdueOK && !normalOK && hasNormal:
		derived := overdue.Sub(rateSpread)
		if derived.IsNegative() {
			derived = decimal.Zero
		}
		row[normalKey] = reader.NumberCell(derived)
	}
}

var (
	totalClaimKeys = []string{"채권액 합계", "채권액합계", "채권액합계(E=C+D)"}
	balanceKeys    = []string{"환산된 대출잔액", "환산후대출원금잔액", "환산후원금잔액", "미상환원금잔액", "미상환원금잔액(C=A+B)"}
	advanceKeys    = []string{"가지급금", "가지급금잔액", "가지급금잔액(B)"}
	interestKeys   = []string{"미수이자", "미수이자잔액", "미수이자잔액(D)"}
)

// CalculateTotalClaimAmount derives the claim total as principal balance
// plus advances plus accrued interest when the disk carries it blank or as
// zero. Positive totals are trusted as-is.
func CalculateTotalClaimAmount(row map[string]reader.CellValue) {
	totalKey, totalCell, ok := firstCell(row, totalClaimKeys)
	if !ok || hasPositiveValue(totalCell) {
		return
	}

	sum := decimal.Zero
	found := false
	for _, keys := range [][]string{balanceKeys, advanceKeys, interestKeys} {
		if _, cell, ok := firstCell(row, keys); ok {
			if v, ok := cell.Decimal(); ok {
				sum = sum.Add(v)
				found = true
			}
		}
	}
	if found {
		row[totalKey] = reader.NumberCell(sum)
	}
}

var (
	seniorSmallHousingKeys    = []string{"선순위 주택 소액보증금", "선순위소액보증금(주택)", "소액임대차보증금(주택)"}
	seniorSmallCommercialKeys = []string{"선순위 상가 소액보증금", "선순위소액보증금(상가)", "소액임대차보증금(상가)"}
	seniorSmallKeys           = []string{"선순위 소액보증금", "선순위소액보증금"}

	seniorLeaseHousingKeys    = []string{"선순위 주택 임차보증금", "선순위임차보증금(주택)", "임차보증금(주택)"}
	seniorLeaseCommercialKeys = []string{"선순위 상가 임차보증금", "선순위임차보증금(상가)", "임차보증금(상가)"}
	seniorLeaseKeys           = []string{"선순위 임차보증금", "선순위임차보증금"}
)

// AggregateSeniorDeposits folds the housing and commercial split of senior
// deposits into their combined columns when the disk only carries the split.
func AggregateSeniorDeposits(row map[string]reader.CellValue) {
	aggregatePair(row, seniorSmallKeys, seniorSmallHousingKeys, seniorSmallCommercialKeys)
	aggregatePair(row, seniorLeaseKeys, seniorLeaseHousingKeys, seniorLeaseCommercialKeys)
}

func aggregatePair(row map[string]reader.CellValue, totalKeys, housingKeys, commercialKeys []string) {
	totalKey, totalCell, ok := firstCell(row, totalKeys)
	if ok && hasPositiveValue(totalCell) {
		return
	}

	sum := decimal.Zero
	found := false
	for _, keys := range [][]string{housingKeys, commercialKeys} {
		if _, cell, ok := firstCell(row, keys); ok {
			if v, ok := cell.Decimal(); ok {
				sum = sum.Add(v)
				found = true
			}
		}
	}
	if !found {
		return
	}
	if !ok {
		totalKey = totalKeys[0]
	}
	row[totalKey] = reader.NumberCell(sum)
}

var listingStatusKeys = []string{"상장/비상장", "상장여부"}

// NormalizeListingStatus collapses free-form listing markers to 상장 or
// 비상장. 비상장 is checked first since the 상장 token is its substring.
func NormalizeListingStatus(row map[string]reader.CellValue) {
	key, cell, ok := firstCell(row, listingStatusKeys)
	if !ok || cell.IsEmpty() {
		return
	}
	value := stripAll(cell.String())
	switch {
	case strings.Contains(value, "비상장"):
		row[key] = reader.TextCell("비상장")
	case strings.Contains(value, "상장"):
		row[key] = reader.TextCell("상장")
	}
}

var (
	employeeCountKeys = []string{"종업원수", "종업원 수"}
	employeeCountRe   = regexp.MustCompile(`(\d+)\s*명`)
)

// NormalizeEmployeeCount reduces annotated head counts like "약 25명 (2023
// 기준)" to the plain "25명" form. Bare numbers also gain the suffix.
func NormalizeEmployeeCount(row map[string]reader.CellValue) {
	key, cell, ok := firstCell(row, employeeCountKeys)
	if !ok || cell.IsEmpty() {
		return
	}
	text := cell.String()
	if m := employeeCountRe.FindStringSubmatch(text); m != nil {
		row[key] = reader.TextCell(m[1] + "명")
		return
	}
	if n, ok := cell.Int(); ok && n >= 0 {
		row[key] = reader.TextCell(fmt.Sprintf("%d명", n))
	}
}

var guaranteeAccountKeys = []string{"계좌일련번호", "관련대출채권일련번호"}

// TransformGuaranteeAccountSerial builds the guarantee account key as
// borrower number and account serial joined with an underscore.
func TransformGuaranteeAccountSerial(row map[string]reader.CellValue) {
	accountKey, accountCell, ok := firstCell(row, guaranteeAccountKeys)
	if !ok || accountCell.IsEmpty() {
		return
	}
	_, borrowerCell, ok := firstCell(row, borrowerSerialKeys)
	if !ok || borrowerCell.IsEmpty() {
		return
	}

	account := strings.TrimSpace(accountCell.String())
	borrower := strings.TrimSpace(borrowerCell.String())
	if account == "" || borrower == "" || !bareSerial(account, "_") {
		return
	}
	row[accountKey] = reader.TextCell(borrower + "_" + account)
}

// TransformRow applies every transform that makes sense for a sheet type.
// Restructuring sheets get the listing and head-count cleanup only for NH
// and SHB disks, which are the formats that carry those columns free-form.
func TransformRow(sheetType SheetType, bank BankType, row map[string]reader.CellValue) {
	TransformAssetType(row)
	switch sheetType {
	case SheetLoan:
		TransformLoanSerialNumber(row)
		TransformInterestRates(row)
		CalculateTotalClaimAmount(row)
	case SheetProperty:
		AggregateSeniorDeposits(row)
	case SheetBorrowerRestructuring:
		if bank == BankNH || bank == BankSHB {
			NormalizeListingStatus(row)
			NormalizeEmployeeCount(row)
		}
	case SheetGuarantee:
		TransformGuaranteeAccountSerial(row)
	}
}

// firstCell finds the first alias present in the row, matching headers with
// whitespace stripped. Returns the row's actual key so writes land back on
// the original header.
func firstCell(row map[string]reader.CellValue, aliases []string) (string, reader.CellValue, bool) {
	for _, alias := range aliases {
		if cell, ok := row[alias]; ok {
			return alias, cell, true
		}
	}
	normalized := make(map[string]string, len(row))
	for key := range row {
		normalized[stripAll(key)] = key
	}
	for _, alias := range aliases {
		if key, ok := normalized[stripAll(alias)]; ok {
			return key, row[key], true
		}
	}
	return "", reader.CellValue{}, false
}

// hasPositiveValue reports whether the cell holds a number greater than
// zero. Blank cells and explicit zeros both leave a total open for
// derivation.
func hasPositiveValue(c reader.CellValue) bool {
	v, ok := c.Decimal()
	return ok && v.IsPositive()
}

func stripAll(s string) string {
	return NormalizeName(s)
}
