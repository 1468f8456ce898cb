package ingest

import "strings"

// BankType identifies the originating bank of a portfolio disk.
type BankType int

const (
	BankUnknown BankType = iota
	BankKB
	BankIBK
	BankNH
	BankSHB
)

var bankNames = map[BankType]string{
	BankUnknown: "Unknown",
	BankKB:      "KB",
	BankIBK:     "IBK",
	BankNH:      "NH",
	BankSHB:     "SHB",
}

func (b BankType) String() string {
	if n, ok := bankNames[b]; ok {
		return n
	}
	return "Unknown"
}

// ParseBankType maps a bank id string (as it appears in the mapping
// template) back to a BankType.
func ParseBankType(s string) BankType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "KB":
		return BankKB
	case "IBK":
		return BankIBK
	case "NH":
		return BankNH
	case "SHB":
		return BankSHB
	default:
		return BankUnknown
	}
}

// detectionBanks is the candidate order; it also breaks would-be ties in
// favor of earlier entries when the margin rule is disabled.
var detectionBanks = []BankType{BankKB, BankIBK, BankNH, BankSHB}

type sheetPattern struct {
	pattern string
	weight  int
}

// bankPatterns are the per-bank sheet-name signatures. Exact normalized
// match scores weight*2, containment either way scores weight.
var bankPatterns = map[BankType][]sheetPattern{
	BankKB: {
		{"Sheet A(차주일반정보)", 10},
		{"Sheet B(채권일반정보)", 10},
		{"Sheet C-1(물건정보)", 10},
		{"Sheet C-2(등기부등본정보)", 10},
		{"Sheet D(신용보증서정보)", 10},
		{"(차주일반정보)", 5},
		{"(채권일반정보)", 5},
		{"(물건정보)", 5},
	},
	BankIBK: {
		{"Sheet A-1", 8}, // IBK alone keeps 회생차주정보 on A-1
		{"Sheet A", 3},
		{"Sheet B", 3},
		{"Sheet C-1", 3},
		{"Sheet C-2", 3},
		{"Sheet D", 3},
	},
	BankNH: {
		{"Sheet F", 10},   // 회생차주정보
		{"Sheet B-1", 10}, // 채권일반정보
		{"Sheet A", 3},
		{"Sheet C-1", 3},
		{"Sheet C-2", 3},
		{"Sheet D", 3},
	},
	BankSHB: {
		{"1.차주일반", 10},
		{"2.매각대상채권", 10},
		{"3.담보물건", 10},
		{"3-1.담보지번", 10},
		{"4.회생차주 추가정보", 10},
		{"5.신용보증서", 10},
	},
}

// MinScoreMargin is the lead the winning bank must hold over the runner-up
// before detection auto-selects it. A dead heat reports Unknown rather than
// guessing by enumeration order.
const MinScoreMargin = 1

// DetectBank scores the workbook's sheet names against each bank's
// signature patterns and returns the winner with a confidence in [0,1].
func DetectBank(sheetNames []string) (BankType, float64) {
	if len(sheetNames) == 0 {
		return BankUnknown, 0
	}

	scores := make(map[BankType]int, len(detectionBanks))
	for _, sheetName := range sheetNames {
		normalized := NormalizeName(sheetName)
		for _, bank := range detectionBanks {
			for _, p := range bankPatterns[bank] {
				normalizedPattern := NormalizeName(p.pattern)
				switch {
				case normalized == normalizedPattern:
					scores[bank] += p.weight * 2
				case strings.Contains(sheetName, p.pattern) || strings.Contains(normalized, normalizedPattern):
					scores[bank] += p.weight
				}
			}
		}
	}

	best, runnerUp := BankUnknown, 0
	maxScore := 0
	for _, bank := range detectionBanks {
		s := scores[bank]
		if s > maxScore {
			runnerUp = maxScore
			best, maxScore = bank, s
		} else if s > runnerUp {
			runnerUp = s
		}
	}
	if maxScore == 0 {
		return BankUnknown, 0
	}
	if maxScore-runnerUp < MinScoreMargin {
		return BankUnknown, 0
	}

	totalPossible := 0
	for _, p := range bankPatterns[best] {
		totalPossible += p.weight * 2
	}
	confidence := float64(maxScore) / float64(totalPossible)
	if confidence > 1 {
		confidence = 1
	}
	return best, confidence
}
