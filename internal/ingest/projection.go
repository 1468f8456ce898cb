package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"npldisk/internal/models"
	"npldisk/internal/reader"
)

// Projection turns canonical-keyed row values into entities. Missing and
// unparseable optional cells project to nil; required fields are validated
// by the orchestrator before projection runs.

func optText(values map[string]reader.CellValue, id string) *string {
	cell, ok := values[id]
	if !ok || cell.IsEmpty() {
		return nil
	}
	s := strings.TrimSpace(cell.String())
	if s == "" {
		return nil
	}
	return &s
}

func optDecimal(values map[string]reader.CellValue, id string) *decimal.Decimal {
	cell, ok := values[id]
	if !ok {
		return nil
	}
	d, ok := cell.Decimal()
	if !ok {
		return nil
	}
	return &d
}

func optDate(values map[string]reader.CellValue, id string) *time.Time {
	cell, ok := values[id]
	if !ok {
		return nil
	}
	t, ok := cell.Date()
	if !ok {
		return nil
	}
	return &t
}

func optInt(values map[string]reader.CellValue, id string) *int {
	cell, ok := values[id]
	if !ok {
		return nil
	}
	n, ok := cell.Int()
	if !ok {
		return nil
	}
	return &n
}

func text(values map[string]reader.CellValue, id string) string {
	if s := optText(values, id); s != nil {
		return *s
	}
	return ""
}

// ProjectBorrower builds a borrower entity from a 차주일반정보 row.
func ProjectBorrower(values map[string]reader.CellValue) (*models.Borrower, error) {
	number := text(values, "borrower_number")
	if number == "" {
		return nil, fmt.Errorf("borrower row missing borrower_number")
	}
	return &models.Borrower{
		ID:                   uuid.New(),
		SerialNumber:         optInt(values, "serial_number"),
		PoolType:             optText(values, "pool_type"),
		BorrowerCategory:     optText(values, "borrower_category"),
		BorrowerNumber:       number,
		BorrowerName:         text(values, "borrower_name"),
		RelatedBorrower:      optText(values, "related_borrower"),
		BorrowerType:         optText(values, "borrower_type"),
		OPB:                  optDecimal(values, "opb"),
		AdvancePayment:       optDecimal(values, "advance_payment"),
		UnpaidPrincipal:      optDecimal(values, "unpaid_principal"),
		AccruedInterest:      optDecimal(values, "accrued_interest"),
		MortgageAmount:       optDecimal(values, "mortgage_amount"),
		SeniorMortgageAmount: optDecimal(values, "senior_mortgage_amount"),
		Notes:                optText(values, "notes"),
	}, nil
}

// ProjectRestructuring builds a rehabilitation snapshot from a 회생차주정보 row.
func ProjectRestructuring(values map[string]reader.CellValue, borrowerID *uuid.UUID) (*models.BorrowerRestructuring, error) {
	number := text(values, "borrower_number")
	if number == "" {
		return nil, fmt.Errorf("restructuring row missing borrower_number")
	}
	return &models.BorrowerRestructuring{
		ID:                    uuid.New(),
		BorrowerID:            borrowerID,
		BorrowerNumber:        number,
		BorrowerName:          optText(values, "borrower_name"),
		ApprovalStatus:        optText(values, "approval_status"),
		ProgressStage:         optText(values, "progress_stage"),
		CourtName:             optText(values, "court_name"),
		CaseNumber:            optText(values, "case_number"),
		FilingDate:            optDate(values, "filing_date"),
		PreservationDate:      optDate(values, "preservation_date"),
		CommencementDate:      optDate(values, "commencement_date"),
		ClaimFilingDate:       optDate(values, "claim_filing_date"),
		ApprovalDismissalDate: optDate(values, "approval_dismissal_date"),
		Industry:              optText(values, "industry"),
		ListingStatus:         optText(values, "listing_status"),
		EmployeeCount:         optText(values, "employee_count"),
		EstablishmentDate:     optDate(values, "establishment_date"),
	}, nil
}

// ProjectLoan builds a loan entity from a 채권일반정보 row.
func ProjectLoan(values map[string]reader.CellValue, borrowerID *uuid.UUID) (*models.Loan, error) {
	number := text(values, "borrower_number")
	serial := text(values, "account_serial")
	if number == "" || serial == "" {
		return nil, fmt.Errorf("loan row missing borrower_number or account_serial")
	}
	return &models.Loan{
		ID:                   uuid.New(),
		BorrowerID:           borrowerID,
		BorrowerNumber:       number,
		AccountSerial:        serial,
		LoanType:             optText(values, "loan_type"),
		AccountNumber:        optText(values, "account_number"),
		NormalInterestRate:   optDecimal(values, "normal_interest_rate"),
		OverdueInterestRate:  optDecimal(values, "overdue_interest_rate"),
		InitialLoanDate:      optDate(values, "initial_loan_date"),
		MaturityDate:         optDate(values, "maturity_date"),
		LastInterestDate:     optDate(values, "last_interest_date"),
		Currency:             optText(values, "currency"),
		InitialLoanAmount:    optDecimal(values, "initial_loan_amount"),
		LoanPrincipalBalance: optDecimal(values, "loan_principal_balance"),
		AdvancePayment:       optDecimal(values, "advance_payment"),
		UnpaidPrincipal:      optDecimal(values, "unpaid_principal"),
		AccruedInterest:      optDecimal(values, "accrued_interest"),
		TotalClaimAmount:     optDecimal(values, "total_claim_amount"),
	}, nil
}

// joinAddress assembles the display address from its parts, skipping blanks.
func joinAddress(parts ...*string) *string {
	var present []string
	for _, p := range parts {
		if p != nil && *p != "" {
			present = append(present, *p)
		}
	}
	if len(present) == 0 {
		return nil
	}
	full := strings.Join(present, " ")
	return &full
}

// ProjectProperty builds a property entity from a 물건정보 row. rowIndex
// backs the generated property number when the sheet carries none.
func ProjectProperty(values map[string]reader.CellValue, borrowerID *uuid.UUID, rowIndex int) (*models.Property, error) {
	number := text(values, "borrower_number")
	if number == "" {
		return nil, fmt.Errorf("property row missing borrower_number")
	}

	propertyNumber := text(values, "property_number")
	if propertyNumber == "" {
		propertyNumber = text(values, "collateral_number")
	}
	if propertyNumber == "" {
		propertyNumber = fmt.Sprintf("P-%04d", rowIndex+1)
	}

	p := &models.Property{
		ID:                     uuid.New(),
		BorrowerID:             borrowerID,
		BorrowerNumber:         number,
		PropertyNumber:         propertyNumber,
		CollateralNumber:       optText(values, "collateral_number"),
		PoolType:               optText(values, "pool_type"),
		AddressProvince:        optText(values, "address_province"),
		AddressCity:            optText(values, "address_city"),
		AddressDistrict:        optText(values, "address_district"),
		AddressDetail:          optText(values, "address_detail"),
		PropertyType:           optText(values, "property_type"),
		LandArea:               optDecimal(values, "land_area"),
		BuildingArea:           optDecimal(values, "building_area"),
		MachineryValue:         optDecimal(values, "machinery_value"),
		OwnerName:              optText(values, "owner_name"),
		MortgageAmount:         optDecimal(values, "mortgage_amount"),
		SharedCollateralAmount: optDecimal(values, "shared_collateral_amount"),
		SeniorSettingAmount:    optDecimal(values, "senior_setting_amount"),
		AppraisalType:          optText(values, "appraisal_type"),
		AppraisalDate:          optDate(values, "appraisal_date"),
		AppraisalAgency:        optText(values, "appraisal_agency"),
		AppraisalLand:          optDecimal(values, "appraisal_land"),
		AppraisalBuilding:      optDecimal(values, "appraisal_building"),
		AppraisalMachinery:     optDecimal(values, "appraisal_machinery"),
		AppraisalOther:         optDecimal(values, "appraisal_other"),
		AppraisalValue:         optDecimal(values, "appraisal_value"),
		KBApartmentPrice:       optDecimal(values, "kb_apartment_price"),
		AuctionStatus:          optText(values, "auction_status"),
		CourtName:              optText(values, "court_name"),
		CaseNumber:             firstText(values, "case_number_precedent", "case_number_subsequent"),
		AuctionStartDate:       firstDate(values, "auction_start_date_precedent", "auction_start_date_subsequent"),
		ClaimDeadline:          firstDate(values, "claim_deadline_precedent", "claim_deadline_subsequent"),
		ClaimAmount:            firstDecimal(values, "claim_amount_precedent", "claim_amount_subsequent"),
		InitialAppraisalValue:  optDecimal(values, "initial_appraisal_value"),
		InitialAuctionDate:     optDate(values, "initial_auction_date"),
		FinalAuctionRound:      optInt(values, "final_auction_round"),
		FinalAuctionResult:     optText(values, "final_auction_result"),
		FinalAuctionDate:       optDate(values, "final_auction_date"),
		NextAuctionDate:        optDate(values, "next_auction_date"),
		WinningBidAmount:       optDecimal(values, "winning_bid_amount"),
		FinalMinimumBid:        optDecimal(values, "final_minimum_bid"),
		NextMinimumBid:         optDecimal(values, "next_minimum_bid"),
		Notes:                  optText(values, "notes"),
	}
	p.AddressFull = joinAddress(p.AddressProvince, p.AddressCity, p.AddressDistrict, p.AddressDetail)
	return p, nil
}

// ProjectRightAnalysis derives per-property deduction figures from the
// property row's senior claim columns. Returns nil when the row carries no
// figures at all.
func ProjectRightAnalysis(values map[string]reader.CellValue, propertyID uuid.UUID) *models.RightAnalysis {
	ra := &models.RightAnalysis{
		ID:             uuid.New(),
		PropertyID:     propertyID,
		SmallDepositDd: optDecimal(values, "senior_small_deposit"),
		LeaseDepositDd: optDecimal(values, "senior_lease_deposit"),
		WageClaimDd:    optDecimal(values, "senior_wage_claim"),
		CurrentTaxDd:   optDecimal(values, "senior_current_tax"),
		SeniorTaxDd:    optDecimal(values, "senior_tax_claim"),
		EtcDd:          optDecimal(values, "senior_other"),
	}

	total := decimal.Zero
	any := false
	for _, d := range []*decimal.Decimal{
		ra.SmallDepositDd, ra.LeaseDepositDd, ra.WageClaimDd,
		ra.CurrentTaxDd, ra.SeniorTaxDd, ra.EtcDd,
	} {
		if d != nil {
			total = total.Add(*d)
			any = true
		}
	}
	if !any {
		return nil
	}
	ra.SeniorTotalDd = &total
	return ra
}

// ProjectRegistryDetail builds one 등기부등본정보 parcel row.
func ProjectRegistryDetail(values map[string]reader.CellValue, propertyID *uuid.UUID) (*models.RegistryDetail, error) {
	number := text(values, "borrower_number")
	if number == "" {
		return nil, fmt.Errorf("registry row missing borrower_number")
	}
	r := &models.RegistryDetail{
		ID:               uuid.New(),
		PropertyID:       propertyID,
		BorrowerNumber:   number,
		CollateralNumber: optText(values, "collateral_number"),
		ParcelNumber:     optText(values, "parcel_number"),
		AddressProvince:  optText(values, "address_province"),
		AddressCity:      optText(values, "address_city"),
		AddressDistrict:  optText(values, "address_district"),
		AddressDetail:    optText(values, "address_detail"),
	}
	r.AddressFull = joinAddress(r.AddressProvince, r.AddressCity, r.AddressDistrict, r.AddressDetail)
	return r, nil
}

// ProjectGuarantee builds a guarantee entity from a 신용보증서 row.
func ProjectGuarantee(values map[string]reader.CellValue, borrowerID *uuid.UUID) (*models.Guarantee, error) {
	number := text(values, "borrower_number")
	if number == "" {
		return nil, fmt.Errorf("guarantee row missing borrower_number")
	}
	return &models.Guarantee{
		ID:                   uuid.New(),
		BorrowerID:           borrowerID,
		BorrowerNumber:       number,
		AccountSerial:        optText(values, "account_serial"),
		GuaranteeInstitution: optText(values, "guarantee_institution"),
		GuaranteeType:        optText(values, "guarantee_type"),
		GuaranteeNumber:      optText(values, "guarantee_number"),
		GuaranteeRatio:       optDecimal(values, "guarantee_ratio"),
		GuaranteeBalance:     optDecimal(values, "guarantee_balance"),
		GuaranteeAmount:      optDecimal(values, "guarantee_amount"),
		RelatedLoanAccount:   optText(values, "related_loan_account"),
	}, nil
}

func firstText(values map[string]reader.CellValue, ids ...string) *string {
	for _, id := range ids {
		if s := optText(values, id); s != nil {
			return s
		}
	}
	return nil
}

func firstDate(values map[string]reader.CellValue, ids ...string) *time.Time {
	for _, id := range ids {
		if t := optDate(values, id); t != nil {
			return t
		}
	}
	return nil
}

func firstDecimal(values map[string]reader.CellValue, ids ...string) *decimal.Decimal {
	for _, id := range ids {
		if d := optDecimal(values, id); d != nil {
			return d
		}
	}
	return nil
}
