package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"armentum/internal/cache"
	apperrors "armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/repository"
)

const (
	financeSummaryCacheKey = "finance:summary"
	financeSummaryCacheTTL = time.Minute
)

// CreateDueInput carries the fields for billing a member.
type CreateDueInput struct {
	MiembroID        uuid.UUID
	Monto            decimal.Decimal
	Descripcion      string
	Tipo             model.DueType
	FechaVencimiento time.Time
	CreatedBy        uuid.UUID
}

// FinanceSummary aggregates dues by effective status. Overdue counts both
// dues stored as "vencida" and pending dues whose date has passed, so the
// totals stay honest even when nobody has swept stored statuses.
type FinanceSummary struct {
	TotalIngresos  decimal.Decimal `json:"total_ingresos"`
	TotalPendiente decimal.Decimal `json:"total_pendiente"`
	TotalVencido   decimal.Decimal `json:"total_vencido"`
	TotalCuotas    int             `json:"total_cuotas"`
}

// FinanceReport is a summary over a date range plus the dues behind it.
type FinanceReport struct {
	Desde   *time.Time     `json:"desde"`
	Hasta   *time.Time     `json:"hasta"`
	Resumen FinanceSummary `json:"resumen"`
	Cuotas  []model.Due    `json:"cuotas"`
}

// FinanceService manages the dues ledger: billing, payments and reporting.
type FinanceService interface {
	CreateDue(ctx context.Context, input CreateDueInput) (*model.Due, error)
	MarkPaid(ctx context.Context, dueID uuid.UUID, fechaPago time.Time) (*model.Due, error)
	ListDues(ctx context.Context, params repository.DueListParams) ([]model.Due, int64, error)
	ListPayments(ctx context.Context, memberID *uuid.UUID) ([]model.Due, error)
	MemberDues(ctx context.Context, userID uuid.UUID, estado model.DueStatus) ([]model.Due, error)
	MemberHistory(ctx context.Context, userID uuid.UUID) ([]model.Due, error)
	MemberSummary(ctx context.Context, userID uuid.UUID) (*FinanceSummary, error)
	Summary(ctx context.Context) (*FinanceSummary, error)
	Report(ctx context.Context, desde, hasta *time.Time) (*FinanceReport, error)
}

type financeService struct {
	dues      repository.DueRepository
	memberSvc MemberService
	cache     *cache.Client
	now       func() time.Time
}

// NewFinanceService creates a new finance service.
func NewFinanceService(dues repository.DueRepository, memberSvc MemberService, cacheClient *cache.Client) FinanceService {
	return &financeService{
		dues:      dues,
		memberSvc: memberSvc,
		cache:     cacheClient,
		now:       time.Now,
	}
}

// CreateDue bills a member. The amount must be strictly positive and the
// member must exist; new dues always start pending.
func (s *financeService) CreateDue(ctx context.Context, input CreateDueInput) (*model.Due, error) {
	if !input.Monto.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if _, err := s.memberSvc.Get(ctx, input.MiembroID); err != nil {
		return nil, err
	}

	tipo := input.Tipo
	if tipo == "" {
		tipo = model.DueTypeRegular
	}
	due := &model.Due{
		MiembroID:        input.MiembroID,
		Monto:            input.Monto,
		Descripcion:      input.Descripcion,
		Tipo:             tipo,
		FechaVencimiento: input.FechaVencimiento,
		Estado:           model.DueStatusPending,
		CreatedBy:        input.CreatedBy,
	}
	if err := s.dues.Create(ctx, due); err != nil {
		return nil, fmt.Errorf("create due: %w", err)
	}

	s.cache.Delete(ctx, financeSummaryCacheKey)
	return due, nil
}

// MarkPaid settles a due. Paying an already paid due overwrites the payment
// date; there is no idempotency guard.
func (s *financeService) MarkPaid(ctx context.Context, dueID uuid.UUID, fechaPago time.Time) (*model.Due, error) {
	due, err := s.dues.FindByID(ctx, dueID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDueNotFound
		}
		return nil, fmt.Errorf("find due: %w", err)
	}

	due.Estado = model.DueStatusPaid
	due.FechaPago = &fechaPago
	if err := s.dues.Update(ctx, due); err != nil {
		return nil, fmt.Errorf("update due: %w", err)
	}

	s.cache.Delete(ctx, financeSummaryCacheKey)
	return due, nil
}

func (s *financeService) ListDues(ctx context.Context, params repository.DueListParams) ([]model.Due, int64, error) {
	return s.dues.List(ctx, params)
}

// ListPayments returns paid dues, newest payment first, optionally for a
// single member.
func (s *financeService) ListPayments(ctx context.Context, memberID *uuid.UUID) ([]model.Due, error) {
	if memberID != nil {
		return s.dues.ListPaidByMember(ctx, *memberID)
	}
	dues, _, err := s.dues.List(ctx, repository.DueListParams{Estado: model.DueStatusPaid, Limit: -1})
	return dues, err
}

// MemberDues returns the dues of the member behind the user account,
// optionally filtered by status.
func (s *financeService) MemberDues(ctx context.Context, userID uuid.UUID, estado model.DueStatus) ([]model.Due, error) {
	member, err := s.memberSvc.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.dues.ListByMember(ctx, member.ID, estado)
}

// MemberHistory returns the member's paid dues, most recent payment first.
func (s *financeService) MemberHistory(ctx context.Context, userID uuid.UUID) ([]model.Due, error) {
	member, err := s.memberSvc.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.dues.ListPaidByMember(ctx, member.ID)
}

// MemberSummary aggregates one member's dues.
func (s *financeService) MemberSummary(ctx context.Context, userID uuid.UUID) (*FinanceSummary, error) {
	member, err := s.memberSvc.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dues, err := s.dues.ListAll(ctx, &member.ID)
	if err != nil {
		return nil, fmt.Errorf("list dues: %w", err)
	}
	summary := s.summarize(dues)
	return &summary, nil
}

// Summary aggregates the whole ledger, served from cache for up to a
// minute. CreateDue and MarkPaid invalidate it.
func (s *financeService) Summary(ctx context.Context) (*FinanceSummary, error) {
	if cached, _ := s.cache.Get(ctx, financeSummaryCacheKey); cached != nil {
		var summary FinanceSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
	}

	dues, err := s.dues.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list dues: %w", err)
	}
	summary := s.summarize(dues)

	if payload, err := json.Marshal(summary); err == nil {
		s.cache.Set(ctx, financeSummaryCacheKey, payload, financeSummaryCacheTTL)
	}
	return &summary, nil
}

// Report aggregates dues whose due date falls in the range. Open-ended
// bounds are allowed on either side.
func (s *financeService) Report(ctx context.Context, desde, hasta *time.Time) (*FinanceReport, error) {
	dues, err := s.dues.ListByDateRange(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list dues by range: %w", err)
	}
	return &FinanceReport{
		Desde:   desde,
		Hasta:   hasta,
		Resumen: s.summarize(dues),
		Cuotas:  dues,
	}, nil
}

// summarize buckets dues by effective status as of today: paid amounts are
// income, pending dues not yet due are pending, and everything overdue by
// either stored status or elapsed date is overdue.
func (s *financeService) summarize(dues []model.Due) FinanceSummary {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	summary := FinanceSummary{
		TotalIngresos:  decimal.Zero,
		TotalPendiente: decimal.Zero,
		TotalVencido:   decimal.Zero,
		TotalCuotas:    len(dues),
	}
	for i := range dues {
		due := &dues[i]
		switch {
		case due.Estado == model.DueStatusPaid:
			summary.TotalIngresos = summary.TotalIngresos.Add(due.Monto)
		case due.IsOverdue(today):
			summary.TotalVencido = summary.TotalVencido.Add(due.Monto)
		case due.Estado == model.DueStatusPending:
			summary.TotalPendiente = summary.TotalPendiente.Add(due.Monto)
		}
	}
	return summary
}
