package payperiod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldpay/commission-backend-go/internal/domain/payperiod"
)

type PayPeriodServiceImpl struct {
	payPeriodRepo payperiod.PayPeriodRepository
}

func NewPayPeriodService(payPeriodRepo payperiod.PayPeriodRepository) payperiod.PayPeriodService {
	return &PayPeriodServiceImpl{payPeriodRepo: payPeriodRepo}
}

// ========== SCHEDULE CONFIG ==========

func (s *PayPeriodServiceImpl) UpsertScheduleConfig(ctx context.Context, req payperiod.UpsertScheduleConfigRequest) (payperiod.ScheduleConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return payperiod.ScheduleConfigResponse{}, err
	}

	firstStart, err := time.Parse("2006-01-02", req.FirstPeriodStart)
	if err != nil {
		return payperiod.ScheduleConfigResponse{}, fmt.Errorf("failed to parse first_period_start: %w", err)
	}

	config, err := s.payPeriodRepo.UpsertScheduleConfig(ctx, payperiod.ScheduleConfig{
		ScheduleType:     payperiod.ScheduleType(req.ScheduleType),
		FirstPeriodStart: firstStart,
		PayDelayDays:     req.PayDelayDays,
	})
	if err != nil {
		return payperiod.ScheduleConfigResponse{}, fmt.Errorf("failed to save schedule config: %w", err)
	}

	return mapToScheduleConfigResponse(config), nil
}

func (s *PayPeriodServiceImpl) GetScheduleConfig(ctx context.Context) (payperiod.ScheduleConfigResponse, error) {
	config, err := s.payPeriodRepo.GetScheduleConfig(ctx)
	if err != nil {
		return payperiod.ScheduleConfigResponse{}, err
	}
	return mapToScheduleConfigResponse(config), nil
}

// ========== PERIOD GENERATION ==========

func (s *PayPeriodServiceImpl) Generate(ctx context.Context, req payperiod.GeneratePeriodsRequest) ([]payperiod.PayPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	config, err := s.payPeriodRepo.GetScheduleConfig(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.payPeriodRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}

	numberOffset := 0
	if len(existing) > 0 {
		if req.Replace {
			withResults, err := s.payPeriodRepo.CountWithResults(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to check stored results: %w", err)
			}
			if withResults > 0 {
				return nil, payperiod.ErrPeriodsHaveResults
			}
		} else {
			// Extend the schedule: continue numbering from the last
			// period and start the day after it ends.
			last := existing[len(existing)-1]
			config.FirstPeriodStart = last.EndDate.AddDate(0, 0, 1)
			numberOffset = last.PeriodNumber
		}
	}

	periods := GeneratePeriods(config, req.Count)
	for i := range periods {
		periods[i].PeriodNumber += numberOffset
	}

	saved, err := s.payPeriodRepo.ReplacePeriods(ctx, periods, req.Replace)
	if err != nil {
		return nil, fmt.Errorf("failed to save pay periods: %w", err)
	}

	today := time.Now().UTC()
	responses := make([]payperiod.PayPeriodResponse, 0, len(saved))
	for _, p := range saved {
		responses = append(responses, mapToPeriodResponse(p, today))
	}
	return responses, nil
}

// ========== PERIOD QUERIES ==========

func (s *PayPeriodServiceImpl) List(ctx context.Context) ([]payperiod.PayPeriodResponse, error) {
	periods, err := s.payPeriodRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}

	today := time.Now().UTC()
	responses := make([]payperiod.PayPeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, mapToPeriodResponse(p, today))
	}
	return responses, nil
}

func (s *PayPeriodServiceImpl) GetByID(ctx context.Context, id string) (payperiod.PayPeriodResponse, error) {
	period, err := s.payPeriodRepo.GetByID(ctx, id)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}
	return mapToPeriodResponse(period, time.Now().UTC()), nil
}

func (s *PayPeriodServiceImpl) Current(ctx context.Context) (payperiod.PayPeriodResponse, error) {
	today := time.Now().UTC()
	period, err := s.payPeriodRepo.GetContaining(ctx, today)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}
	return mapToPeriodResponse(period, today), nil
}

func (s *PayPeriodServiceImpl) GetStats(ctx context.Context) (payperiod.PeriodStatsResponse, error) {
	periods, err := s.payPeriodRepo.List(ctx)
	if err != nil {
		return payperiod.PeriodStatsResponse{}, fmt.Errorf("failed to list pay periods: %w", err)
	}

	var config *payperiod.ScheduleConfig
	if cfg, err := s.payPeriodRepo.GetScheduleConfig(ctx); err == nil {
		config = &cfg
	} else if !errors.Is(err, payperiod.ErrScheduleNotConfigured) {
		return payperiod.PeriodStatsResponse{}, err
	}

	stats := BuildStats(periods, config, time.Now().UTC())
	return mapToStatsResponse(stats), nil
}

// ========== MAPPERS ==========

func mapToScheduleConfigResponse(config payperiod.ScheduleConfig) payperiod.ScheduleConfigResponse {
	return payperiod.ScheduleConfigResponse{
		ID:               config.ID,
		ScheduleType:     string(config.ScheduleType),
		FirstPeriodStart: config.FirstPeriodStart.Format("2006-01-02"),
		PayDelayDays:     config.PayDelayDays,
		UpdatedAt:        config.UpdatedAt,
	}
}

func mapToPeriodResponse(p payperiod.PayPeriod, today time.Time) payperiod.PayPeriodResponse {
	return payperiod.PayPeriodResponse{
		ID:           p.ID,
		PeriodNumber: p.PeriodNumber,
		StartDate:    p.StartDate.Format("2006-01-02"),
		EndDate:      p.EndDate.Format("2006-01-02"),
		PayDate:      p.PayDate.Format("2006-01-02"),
		ScheduleType: string(p.ScheduleType),
		Status:       string(p.StatusOn(today)),
	}
}

func mapToStatsResponse(stats payperiod.PeriodStats) payperiod.PeriodStatsResponse {
	resp := payperiod.PeriodStatsResponse{
		TotalPeriods:     stats.TotalPeriods,
		PeriodsRemaining: stats.PeriodsRemaining,
	}
	if stats.CurrentPeriodNumber != nil {
		number := *stats.CurrentPeriodNumber
		resp.CurrentPeriodNumber = &number
	}
	if stats.NextPayDate != nil {
		payDate := stats.NextPayDate.Format("2006-01-02")
		resp.NextPayDate = &payDate
	}
	if stats.ScheduleType != nil {
		scheduleType := string(*stats.ScheduleType)
		resp.ScheduleType = &scheduleType
	}
	return resp
}
