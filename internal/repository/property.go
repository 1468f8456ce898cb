package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"npldisk/internal/models"
)

type propertyStore struct {
	pool *pgxpool.Pool
}

func (s *propertyStore) Insert(ctx context.Context, p *models.Property) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO public.properties
			(id, borrower_id, borrower_number, property_number, collateral_number,
			 pool_type, address_province, address_city, address_district,
			 address_detail, address_full, property_type, land_area,
			 building_area, machinery_value, owner_name, mortgage_amount,
			 shared_collateral_amount, senior_setting_amount, appraisal_type,
			 appraisal_date, appraisal_agency, appraisal_land,
			 appraisal_building, appraisal_machinery, appraisal_other,
			 appraisal_value, kb_apartment_price, auction_status, court_name,
			 case_number, auction_start_date, claim_deadline, claim_amount,
			 initial_appraisal_value, initial_auction_date, final_auction_round,
			 final_auction_result, final_auction_date, next_auction_date,
			 winning_bid_amount, final_minimum_bid, next_minimum_bid, notes,
			 created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
			$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,
			$34,$35,$36,$37,$38,$39,$40,$41,$42,$43,$44,now(),now())`,
		p.ID, p.BorrowerID, p.BorrowerNumber, p.PropertyNumber, p.CollateralNumber,
		p.PoolType, p.AddressProvince, p.AddressCity, p.AddressDistrict,
		p.AddressDetail, p.AddressFull, p.PropertyType, p.LandArea,
		p.BuildingArea, p.MachineryValue, p.OwnerName, p.MortgageAmount,
		p.SharedCollateralAmount, p.SeniorSettingAmount, p.AppraisalType,
		p.AppraisalDate, p.AppraisalAgency, p.AppraisalLand,
		p.AppraisalBuilding, p.AppraisalMachinery, p.AppraisalOther,
		p.AppraisalValue, p.KBApartmentPrice, p.AuctionStatus, p.CourtName,
		p.CaseNumber, p.AuctionStartDate, p.ClaimDeadline, p.ClaimAmount,
		p.InitialAppraisalValue, p.InitialAuctionDate, p.FinalAuctionRound,
		p.FinalAuctionResult, p.FinalAuctionDate, p.NextAuctionDate,
		p.WinningBidAmount, p.FinalMinimumBid, p.NextMinimumBid, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert property %s: %w", p.PropertyNumber, err)
	}
	return nil
}

func (s *propertyStore) InsertRegistryBatch(ctx context.Context, rows []models.RegistryDetail) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO public.registry_details
		(id, property_id, borrower_number, collateral_number, parcel_number,
		 address_province, address_city, address_district, address_detail,
		 address_full, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())`
	for _, r := range rows {
		batch.Queue(query, r.ID, r.PropertyID, r.BorrowerNumber, r.CollateralNumber,
			r.ParcelNumber, r.AddressProvince, r.AddressCity, r.AddressDistrict,
			r.AddressDetail, r.AddressFull)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	var errs []string
	for i := range rows {
		if _, err := br.Exec(); err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		inserted++
	}
	if len(errs) > 0 {
		return inserted, fmt.Errorf("registry batch: %s", strings.Join(errs, "; "))
	}
	return inserted, nil
}
