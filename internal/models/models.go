package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Borrower is one row of the 차주일반정보 sheet. BorrowerNumber is the
// natural key the other sheets reference.
type Borrower struct {
	ID                   uuid.UUID        `json:"id"`
	SerialNumber         *int             `json:"serial_number,omitempty"`
	PoolType             *string          `json:"pool_type,omitempty"`
	BorrowerCategory     *string          `json:"borrower_category,omitempty"`
	BorrowerNumber       string           `json:"borrower_number"`
	BorrowerName         string           `json:"borrower_name"`
	RelatedBorrower      *string          `json:"related_borrower,omitempty"`
	BorrowerType         *string          `json:"borrower_type,omitempty"`
	OPB                  *decimal.Decimal `json:"opb,omitempty"`
	AdvancePayment       *decimal.Decimal `json:"advance_payment,omitempty"`
	UnpaidPrincipal      *decimal.Decimal `json:"unpaid_principal,omitempty"`
	AccruedInterest      *decimal.Decimal `json:"accrued_interest,omitempty"`
	MortgageAmount       *decimal.Decimal `json:"mortgage_amount,omitempty"`
	SeniorMortgageAmount *decimal.Decimal `json:"senior_mortgage_amount,omitempty"`
	Notes                *string          `json:"notes,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// BorrowerRestructuring is one 회생차주정보 row. Insert-only: each upload
// appends the rehabilitation snapshot it carries.
type BorrowerRestructuring struct {
	ID                    uuid.UUID  `json:"id"`
	BorrowerID            *uuid.UUID `json:"borrower_id,omitempty"`
	BorrowerNumber        string     `json:"borrower_number"`
	BorrowerName          *string    `json:"borrower_name,omitempty"`
	ApprovalStatus        *string    `json:"approval_status,omitempty"`
	ProgressStage         *string    `json:"progress_stage,omitempty"`
	CourtName             *string    `json:"court_name,omitempty"`
	CaseNumber            *string    `json:"case_number,omitempty"`
	FilingDate            *time.Time `json:"filing_date,omitempty"`
	PreservationDate      *time.Time `json:"preservation_date,omitempty"`
	CommencementDate      *time.Time `json:"commencement_date,omitempty"`
	ClaimFilingDate       *time.Time `json:"claim_filing_date,omitempty"`
	ApprovalDismissalDate *time.Time `json:"approval_dismissal_date,omitempty"`
	Industry              *string    `json:"industry,omitempty"`
	ListingStatus         *string    `json:"listing_status,omitempty"`
	EmployeeCount         *string    `json:"employee_count,omitempty"`
	EstablishmentDate     *time.Time `json:"establishment_date,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// Loan is one 채권일반정보 row. AccountSerial is the composite
// borrower-loan key and the upsert target.
type Loan struct {
	ID                   uuid.UUID        `json:"id"`
	BorrowerID           *uuid.UUID       `json:"borrower_id,omitempty"`
	BorrowerNumber       string           `json:"borrower_number"`
	AccountSerial        string           `json:"account_serial"`
	LoanType             *string          `json:"loan_type,omitempty"`
	AccountNumber        *string          `json:"account_number,omitempty"`
	NormalInterestRate   *decimal.Decimal `json:"normal_interest_rate,omitempty"`
	OverdueInterestRate  *decimal.Decimal `json:"overdue_interest_rate,omitempty"`
	InitialLoanDate      *time.Time       `json:"initial_loan_date,omitempty"`
	MaturityDate         *time.Time       `json:"maturity_date,omitempty"`
	LastInterestDate     *time.Time       `json:"last_interest_date,omitempty"`
	Currency             *string          `json:"currency,omitempty"`
	InitialLoanAmount    *decimal.Decimal `json:"initial_loan_amount,omitempty"`
	LoanPrincipalBalance *decimal.Decimal `json:"loan_principal_balance,omitempty"`
	AdvancePayment       *decimal.Decimal `json:"advance_payment,omitempty"`
	UnpaidPrincipal      *decimal.Decimal `json:"unpaid_principal,omitempty"`
	AccruedInterest      *decimal.Decimal `json:"accrued_interest,omitempty"`
	TotalClaimAmount     *decimal.Decimal `json:"total_claim_amount,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// Property is one 물건정보 row.
type Property struct {
	ID                     uuid.UUID        `json:"id"`
	BorrowerID             *uuid.UUID       `json:"borrower_id,omitempty"`
	BorrowerNumber         string           `json:"borrower_number"`
	PropertyNumber         string           `json:"property_number"`
	CollateralNumber       *string          `json:"collateral_number,omitempty"`
	PoolType               *string          `json:"pool_type,omitempty"`
	AddressProvince        *string          `json:"address_province,omitempty"`
	AddressCity            *string          `json:"address_city,omitempty"`
	AddressDistrict        *string          `json:"address_district,omitempty"`
	AddressDetail          *string          `json:"address_detail,omitempty"`
	AddressFull            *string          `json:"address_full,omitempty"`
	PropertyType           *string          `json:"property_type,omitempty"`
	LandArea               *decimal.Decimal `json:"land_area,omitempty"`
	BuildingArea           *decimal.Decimal `json:"building_area,omitempty"`
	MachineryValue         *decimal.Decimal `json:"machinery_value,omitempty"`
	OwnerName              *string          `json:"owner_name,omitempty"`
	MortgageAmount         *decimal.Decimal `json:"mortgage_amount,omitempty"`
	SharedCollateralAmount *decimal.Decimal `json:"shared_collateral_amount,omitempty"`
	SeniorSettingAmount    *decimal.Decimal `json:"senior_setting_amount,omitempty"`
	AppraisalType          *string          `json:"appraisal_type,omitempty"`
	AppraisalDate          *time.Time       `json:"appraisal_date,omitempty"`
	AppraisalAgency        *string          `json:"appraisal_agency,omitempty"`
	AppraisalLand          *decimal.Decimal `json:"appraisal_land,omitempty"`
	AppraisalBuilding      *decimal.Decimal `json:"appraisal_building,omitempty"`
	AppraisalMachinery     *decimal.Decimal `json:"appraisal_machinery,omitempty"`
	AppraisalOther         *decimal.Decimal `json:"appraisal_other,omitempty"`
	AppraisalValue         *decimal.Decimal `json:"appraisal_value,omitempty"`
	KBApartmentPrice       *decimal.Decimal `json:"kb_apartment_price,omitempty"`
	AuctionStatus          *string          `json:"auction_status,omitempty"`
	CourtName              *string          `json:"court_name,omitempty"`
	CaseNumber             *string          `json:"case_number,omitempty"`
	AuctionStartDate       *time.Time       `json:"auction_start_date,omitempty"`
	ClaimDeadline          *time.Time       `json:"claim_deadline,omitempty"`
	ClaimAmount            *decimal.Decimal `json:"claim_amount,omitempty"`
	InitialAppraisalValue  *decimal.Decimal `json:"initial_appraisal_value,omitempty"`
	InitialAuctionDate     *time.Time       `json:"initial_auction_date,omitempty"`
	FinalAuctionRound      *int             `json:"final_auction_round,omitempty"`
	FinalAuctionResult     *string          `json:"final_auction_result,omitempty"`
	FinalAuctionDate       *time.Time       `json:"final_auction_date,omitempty"`
	NextAuctionDate        *time.Time       `json:"next_auction_date,omitempty"`
	WinningBidAmount       *decimal.Decimal `json:"winning_bid_amount,omitempty"`
	FinalMinimumBid        *decimal.Decimal `json:"final_minimum_bid,omitempty"`
	NextMinimumBid         *decimal.Decimal `json:"next_minimum_bid,omitempty"`
	Notes                  *string          `json:"notes,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

// RegistryDetail is one 등기부등본정보 parcel row under a property.
type RegistryDetail struct {
	ID               uuid.UUID  `json:"id"`
	PropertyID       *uuid.UUID `json:"property_id,omitempty"`
	BorrowerNumber   string     `json:"borrower_number"`
	CollateralNumber *string    `json:"collateral_number,omitempty"`
	ParcelNumber     *string    `json:"parcel_number,omitempty"`
	AddressProvince  *string    `json:"address_province,omitempty"`
	AddressCity      *string    `json:"address_city,omitempty"`
	AddressDistrict  *string    `json:"address_district,omitempty"`
	AddressDetail    *string    `json:"address_detail,omitempty"`
	AddressFull      *string    `json:"address_full,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Guarantee is one 신용보증서 row.
type Guarantee struct {
	ID                   uuid.UUID        `json:"id"`
	BorrowerID           *uuid.UUID       `json:"borrower_id,omitempty"`
	BorrowerNumber       string           `json:"borrower_number"`
	AccountSerial        *string          `json:"account_serial,omitempty"`
	GuaranteeInstitution *string          `json:"guarantee_institution,omitempty"`
	GuaranteeType        *string          `json:"guarantee_type,omitempty"`
	GuaranteeNumber      *string          `json:"guarantee_number,omitempty"`
	GuaranteeRatio       *decimal.Decimal `json:"guarantee_ratio,omitempty"`
	GuaranteeBalance     *decimal.Decimal `json:"guarantee_balance,omitempty"`
	GuaranteeAmount      *decimal.Decimal `json:"guarantee_amount,omitempty"`
	RelatedLoanAccount   *string          `json:"related_loan_account,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

// RightAnalysis carries the due-diligence deduction figures for one
// property. Upserted by property id so a re-uploaded disk refreshes it.
type RightAnalysis struct {
	ID             uuid.UUID        `json:"id"`
	PropertyID     uuid.UUID        `json:"property_id"`
	SmallDepositDd *decimal.Decimal `json:"small_deposit_dd,omitempty"`
	LeaseDepositDd *decimal.Decimal `json:"lease_deposit_dd,omitempty"`
	WageClaimDd    *decimal.Decimal `json:"wage_claim_dd,omitempty"`
	CurrentTaxDd   *decimal.Decimal `json:"current_tax_dd,omitempty"`
	SeniorTaxDd    *decimal.Decimal `json:"senior_tax_dd,omitempty"`
	EtcDd          *decimal.Decimal `json:"etc_dd,omitempty"`
	SeniorTotalDd  *decimal.Decimal `json:"senior_total_dd,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// SheetMappingAudit records how one uploaded sheet was recognized and
// mapped, for the review screen and later troubleshooting.
type SheetMappingAudit struct {
	ID             uuid.UUID `json:"id"`
	UploadID       uuid.UUID `json:"upload_id"`
	ProgramID      string    `json:"program_id,omitempty"`
	UploadedBy     string    `json:"uploaded_by,omitempty"`
	FileName       string    `json:"file_name"`
	BankType       string    `json:"bank_type"`
	Confidence     float64   `json:"confidence"`
	SheetName      string    `json:"sheet_name"`
	SheetType      string    `json:"sheet_type"`
	ColumnMappings []byte    `json:"column_mappings"` // JSONB payload
	RowsProcessed  int       `json:"rows_processed"`
	RowsFailed     int       `json:"rows_failed"`
	CreatedAt      time.Time `json:"created_at"`
}
