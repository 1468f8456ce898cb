package ingest

import "strings"

// ColumnDataType is the parse target for a mapped column.
type ColumnDataType int

const (
	TypeString ColumnDataType = iota
	TypeInteger
	TypeDecimal
	TypeDate
	TypeBoolean
)

// ColumnMappingRule is one bank-agnostic header alias. Several rules may
// target the same canonical column id; they are tried in table order.
type ColumnMappingRule struct {
	SourceName  string
	CanonicalID string
	Required    bool
	DataType    ColumnDataType
}

// MappingRules returns the generic alias table for a canonical sheet type.
// These are the fallback when no bank template covers a header.
func MappingRules(sheetType SheetType) []ColumnMappingRule {
	switch sheetType {
	case SheetBorrowerGeneral:
		return borrowerGeneralRules
	case SheetBorrowerRestructuring:
		return borrowerRestructuringRules
	case SheetLoan:
		return loanRules
	case SheetProperty:
		return propertyRules
	case SheetRegistryDetail:
		return registryDetailRules
	case SheetGuarantee:
		return guaranteeRules
	default:
		return nil
	}
}

var borrowerGeneralRules = []ColumnMappingRule{
	{"일련번호", "serial_number", false, TypeInteger},
	{"Pool 구분", "pool_type", false, TypeString},
	{"차주구분", "borrower_category", false, TypeString},
	{"차주일련번호", "borrower_number", true, TypeString},
	{"차주명", "borrower_name", true, TypeString},
	{"관련차주", "related_borrower", false, TypeString},
	{"차주형태", "borrower_type", false, TypeString},
	{"대출원금잔액", "opb", false, TypeDecimal},
	{"가지급금", "advance_payment", false, TypeDecimal},
	{"미상환원금잔액", "unpaid_principal", false, TypeDecimal},
	{"미수이자", "accrued_interest", false, TypeDecimal},
	{"차주별 근저당권설정액", "mortgage_amount", false, TypeDecimal},
	{"근저당권설정액", "mortgage_amount", false, TypeDecimal},
	{"차주별 선순위 근저당설정액", "senior_mortgage_amount", false, TypeDecimal},
	{"비고", "notes", false, TypeString},
}

var borrowerRestructuringRules = []ColumnMappingRule{
	{"일련번호", "serial_number", false, TypeInteger},
	{"차주구분", "borrower_category", false, TypeString},
	{"차주일련번호", "borrower_number", true, TypeString},
	{"차주명", "borrower_name", false, TypeString},
	{"관련차주", "related_borrower", false, TypeString},
	{"인가/미인가", "approval_status", false, TypeString},
	{"세부진행단계", "progress_stage", false, TypeString},
	{"세부 진행단계", "progress_stage", false, TypeString},
	{"관할법원", "court_name", false, TypeString},
	{"회생사건번호", "case_number", false, TypeString},
	{"회생신청일", "filing_date", false, TypeDate},
	{"보전처분일", "preservation_date", false, TypeDate},
	{"개시결정일", "commencement_date", false, TypeDate},
	{"채권신고일", "claim_filing_date", false, TypeDate},
	{"인가/폐지결정일", "approval_dismissal_date", false, TypeDate},
	{"업종", "industry", false, TypeString},
	{"상장/비상장", "listing_status", false, TypeString},
	{"상장여부", "listing_status", false, TypeString},
	{"종업원수", "employee_count", false, TypeString},
	{"설립일", "establishment_date", false, TypeDate},
}

var loanRules = []ColumnMappingRule{
	{"일련번호", "serial_number", false, TypeInteger},
	{"Pool 구분", "pool_type", false, TypeString},
	{"차주구분", "borrower_category", false, TypeString},
	{"차주일련번호", "borrower_number", true, TypeString},
	{"차주명", "borrower_name", false, TypeString},
	{"대출일련번호", "account_serial", true, TypeString},
	{"채권일련번호", "account_serial", true, TypeString},
	{"대출과목", "loan_type", false, TypeString},
	{"계좌번호", "account_number", false, TypeString},
	{"정상이자율", "normal_interest_rate", false, TypeDecimal},
	{"약정이자율", "normal_interest_rate", false, TypeDecimal},
	{"이자율", "normal_interest_rate", false, TypeDecimal},
	{"연체이자율", "overdue_interest_rate", false, TypeDecimal},
	{"최초대출일", "initial_loan_date", false, TypeDate},
	{"대출만기일", "maturity_date", false, TypeDate},
	{"최종이수일", "last_interest_date", false, TypeDate},
	{"통화표시", "currency", false, TypeString},
	{"최초대출금액", "initial_loan_amount", false, TypeDecimal},
	{"최초대출원금", "initial_loan_amount", false, TypeDecimal},
	{"대출금잔액", "loan_principal_balance", false, TypeDecimal},
	{"환산된 대출잔액", "loan_principal_balance", false, TypeDecimal},
	{"가지급금", "advance_payment", false, TypeDecimal},
	{"미상환원금잔액", "unpaid_principal", false, TypeDecimal},
	{"미수이자", "accrued_interest", false, TypeDecimal},
	{"채권액 합계", "total_claim_amount", false, TypeDecimal},
}

var propertyRules = []ColumnMappingRule{
	{"일련번호", "serial_number", false, TypeInteger},
	{"Pool 구분", "pool_type", false, TypeString},
	{"Pool", "pool_type", false, TypeString},
	{"차주구분", "borrower_category", false, TypeString},
	{"채권구분", "borrower_category", false, TypeString},
	{"차주일련번호", "borrower_number", true, TypeString},
	{"차주명", "borrower_name", false, TypeString},
	{"물건번호", "collateral_number", false, TypeString},
	{"물건 일련번호", "property_serial", false, TypeInteger},
	{"Property 일련번호", "property_serial", false, TypeInteger},
	{"담보소재지1", "address_province", false, TypeString},
	{"담보소재지 1", "address_province", false, TypeString},
	{"(특별광역시/도)", "address_province", false, TypeString},
	{"담보소재지2", "address_city", false, TypeString},
	{"담보소재지 2", "address_city", false, TypeString},
	{"(시/군/구)", "address_city", false, TypeString},
	{"담보소재지3", "address_district", false, TypeString},
	{"담보소재지 3", "address_district", false, TypeString},
	{"(동/리/읍/면)", "address_district", false, TypeString},
	{"담보소재지4", "address_detail", false, TypeString},
	{"담보소재지 4", "address_detail", false, TypeString},
	{"(나머지/상세지번/기타재산내역)", "address_detail", false, TypeString},
	{"물건 종류", "property_type", false, TypeString},
	{"Property Type", "property_type", false, TypeString},
	{"물건 대지면적", "land_area", false, TypeDecimal},
	{"Property-대지면적", "land_area", false, TypeDecimal},
	{"물건 건물면적", "building_area", false, TypeDecimal},
	{"Property-건물면적", "building_area", false, TypeDecimal},
	{"물건 기타 (기계기구 등)", "machinery_value", false, TypeDecimal},
	{"Property-기타(기계기구등)", "machinery_value", false, TypeDecimal},
	{"소유자명", "owner_name", false, TypeString},
	{"공담 물건 금액", "shared_collateral_amount", false, TypeDecimal},
	{"물건별 선순위 설정액", "senior_setting_amount", false, TypeDecimal},
	{"Property별 근저당권설정액", "mortgage_amount", false, TypeDecimal},
	{"선순위 주택 소액보증금", "senior_small_deposit_housing", false, TypeDecimal},
	{"선순위 상가 소액보증금", "senior_small_deposit_commercial", false, TypeDecimal},
	{"선순위 소액보증금", "senior_small_deposit", false, TypeDecimal},
	{"선순위 주택 임차보증금", "senior_lease_deposit_housing", false, TypeDecimal},
	{"선순위 상가 임차보증금", "senior_lease_deposit_commercial", false, TypeDecimal},
	{"선순위 임차보증금", "senior_lease_deposit", false, TypeDecimal},
	{"선순위 임금채권", "senior_wage_claim", false, TypeDecimal},
	{"선순위 당해세", "senior_current_tax", false, TypeDecimal},
	{"선순위 조세채권", "senior_tax_claim", false, TypeDecimal},
	{"선순위 기타", "senior_other", false, TypeDecimal},
	{"기타 선순위", "senior_other", false, TypeDecimal},
	{"선순위 합계", "senior_total", false, TypeDecimal},
	{"감정평가구분", "appraisal_type", false, TypeString},
	{"감정평가일자", "appraisal_date", false, TypeDate},
	{"감정평가일", "appraisal_date", false, TypeDate},
	{"감정평가기관", "appraisal_agency", false, TypeString},
	{"토지감정평가액", "appraisal_land", false, TypeDecimal},
	{"감정평가액_대지", "appraisal_land", false, TypeDecimal},
	{"건물감정평가액", "appraisal_building", false, TypeDecimal},
	{"감정평가액_건물", "appraisal_building", false, TypeDecimal},
	{"기계평가액", "appraisal_machinery", false, TypeDecimal},
	{"감정평가액_기계기구", "appraisal_machinery", false, TypeDecimal},
	{"제시외", "appraisal_other", false, TypeDecimal},
	{"감정평가액_제시외 및 기타", "appraisal_other", false, TypeDecimal},
	{"감정평가액합계", "appraisal_value", false, TypeDecimal},
	{"감정평가액_합계", "appraisal_value", false, TypeDecimal},
	{"KB아파트시세", "kb_apartment_price", false, TypeDecimal},
	{"경매개시여부", "auction_status", false, TypeString},
	{"경매 관할법원", "court_name", false, TypeString},
	{"경매신청기관(선행)", "auction_applicant_precedent", false, TypeString},
	{"경매개시일자(선행)", "auction_start_date_precedent", false, TypeDate},
	{"경매사건번호(선행)", "case_number_precedent", false, TypeString},
	{"배당요구종기일(선행)", "claim_deadline_precedent", false, TypeDate},
	{"청구금액(선행)", "claim_amount_precedent", false, TypeDecimal},
	{"경매신청기관(후행)", "auction_applicant_subsequent", false, TypeString},
	{"경매개시일자(후행)", "auction_start_date_subsequent", false, TypeDate},
	{"경매사건번호(후행)", "case_number_subsequent", false, TypeString},
	{"배당요구종기일(후행)", "claim_deadline_subsequent", false, TypeDate},
	{"청구금액(후행)", "claim_amount_subsequent", false, TypeDecimal},
	{"최초법사가", "initial_appraisal_value", false, TypeDecimal},
	{"최초경매기일", "initial_auction_date", false, TypeDate},
	{"최종경매회차", "final_auction_round", false, TypeInteger},
	{"최종경매결과", "final_auction_result", false, TypeString},
	{"최종경매기일", "final_auction_date", false, TypeDate},
	{"차기경매기일", "next_auction_date", false, TypeDate},
	{"낙찰금액", "winning_bid_amount", false, TypeDecimal},
	{"매각금액", "winning_bid_amount", false, TypeDecimal},
	{"최종경매일의 최저입찰금액", "final_minimum_bid", false, TypeDecimal},
	{"차후최종경매일의 최저입찰금액", "next_minimum_bid", false, TypeDecimal},
	{"차후예정경매일의 최저입찰금액", "next_minimum_bid", false, TypeDecimal},
	{"경매사건번호", "property_number", false, TypeString},
	{"비고", "notes", false, TypeString},
}

var registryDetailRules = []ColumnMappingRule{
	{"일련번호", "serial_number", false, TypeInteger},
	{"차주일련번호", "borrower_number", true, TypeString},
	{"차주명", "borrower_name", false, TypeString},
	{"물건번호", "collateral_number", false, TypeString},
	{"지번번호", "parcel_number", false, TypeString},
	{"Property 일련번호", "property_serial", false, TypeInteger},
	{"담보소재지1", "address_province", false, TypeString},
	{"담보소재지2", "address_city", false, TypeString},
	{"담보소재지3", "address_district", false, TypeString},
	{"담보소재지4", "address_detail", false, TypeString},
}

var guaranteeRules = []ColumnMappingRule{
	{"일련번호", "serial_number", false, TypeInteger},
	{"자산유형", "pool_type", false, TypeString},
	{"차주일련번호", "borrower_number", true, TypeString},
	{"차주명", "borrower_name", false, TypeString},
	{"계좌일련번호", "account_serial", false, TypeString},
	{"보증기관", "guarantee_institution", false, TypeString},
	{"보증종류", "guarantee_type", false, TypeString},
	{"보증서번호", "guarantee_number", false, TypeString},
	{"보증비율", "guarantee_ratio", false, TypeDecimal},
	{"환산후 보증잔액", "guarantee_balance", false, TypeDecimal},
	{"보증금액", "guarantee_amount", false, TypeDecimal},
	{"관련 대출채권 계좌번호", "related_loan_account", false, TypeString},
}

// FindMappingRule resolves one observed header against a rule table:
// exact normalized match first, then header-contains-pattern, then
// pattern-contains-header. First hit in table order wins.
func FindMappingRule(rules []ColumnMappingRule, header string) *ColumnMappingRule {
	normalized := NormalizeName(header)
	if normalized == "" {
		return nil
	}

	for i := range rules {
		if strings.EqualFold(NormalizeName(rules[i].SourceName), normalized) {
			return &rules[i]
		}
	}
	for i := range rules {
		if containsFold(normalized, NormalizeName(rules[i].SourceName)) {
			return &rules[i]
		}
	}
	for i := range rules {
		if containsFold(NormalizeName(rules[i].SourceName), normalized) {
			return &rules[i]
		}
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// columnDisplayNames label canonical column ids for the mapping review
// screen and the audit record.
var columnDisplayNames = map[string]string{
	"borrower_number":        "차주번호",
	"borrower_name":          "차주명",
	"borrower_type":          "차주형태",
	"opb":                    "대출원금잔액",
	"mortgage_amount":        "근저당설정액",
	"address_province":       "담보소재지1 (시/도)",
	"address_city":           "담보소재지2 (시/군/구)",
	"address_district":       "담보소재지3 (동/읍/면)",
	"address_detail":         "담보소재지4 (상세)",
	"property_type":          "물건유형",
	"land_area":              "대지면적",
	"building_area":          "건물면적",
	"machinery_value":        "기계기구",
	"appraisal_value":        "감정평가액",
	"court_name":             "관할법원",
	"case_number":            "사건번호",
	"property_number":        "물건번호",
	"collateral_number":      "담보번호",
	"account_serial":         "대출일련번호",
	"loan_type":              "대출과목",
	"account_number":         "계좌번호",
	"normal_interest_rate":   "정상이자율",
	"overdue_interest_rate":  "연체이자율",
	"initial_loan_date":      "최초대출일",
	"initial_loan_amount":    "최초대출금액",
	"loan_principal_balance": "대출금잔액",
	"total_claim_amount":     "채권액 합계",
	"senior_small_deposit":   "선순위 소액보증금",
	"senior_lease_deposit":   "선순위 임차보증금",
	"senior_wage_claim":      "선순위 임금채권",
	"senior_current_tax":     "선순위 당해세",
	"senior_tax_claim":       "선순위 조세채권",
	"senior_other":           "기타 선순위",
	"guarantee_institution":  "보증기관",
	"guarantee_balance":      "보증잔액",
}

// DisplayName labels a canonical column id; unknown ids fall back to the id
// itself.
func DisplayName(canonicalID string) string {
	if label, ok := columnDisplayNames[canonicalID]; ok {
		return label
	}
	return canonicalID
}
