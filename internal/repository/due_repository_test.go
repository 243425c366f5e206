package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"armentum/internal/model"
)

func seedDue(t *testing.T, repo DueRepository, memberID, adminID uuid.UUID, monto int64, estado model.DueStatus, vence time.Time) *model.Due {
	t.Helper()
	due := &model.Due{
		MiembroID:        memberID,
		Monto:            decimal.NewFromInt(monto),
		Tipo:             model.DueTypeRegular,
		FechaVencimiento: vence,
		Estado:           estado,
		CreatedBy:        adminID,
	}
	require.NoError(t, repo.Create(context.Background(), due))
	return due
}

func TestDueRepository_ListByMember(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	memberID, _, adminID := seedMemberAndRehearsal(t, db)
	repo := NewDueRepository(db)

	seedDue(t, repo, memberID, adminID, 20, model.DueStatusPending, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC))
	seedDue(t, repo, memberID, adminID, 20, model.DueStatusPaid, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))
	seedDue(t, repo, memberID, adminID, 20, model.DueStatusPending, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))

	all, err := repo.ListByMember(ctx, memberID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// ascending by due date
	assert.True(t, all[0].FechaVencimiento.Before(all[1].FechaVencimiento))
	assert.True(t, all[1].FechaVencimiento.Before(all[2].FechaVencimiento))

	pending, err := repo.ListByMember(ctx, memberID, model.DueStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	for _, due := range pending {
		assert.Equal(t, model.DueStatusPending, due.Estado)
	}
}

func TestDueRepository_ListByDateRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	memberID, _, adminID := seedMemberAndRehearsal(t, db)
	repo := NewDueRepository(db)

	seedDue(t, repo, memberID, adminID, 10, model.DueStatusPending, time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC))
	seedDue(t, repo, memberID, adminID, 20, model.DueStatusPending, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	seedDue(t, repo, memberID, adminID, 30, model.DueStatusPending, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))

	desde := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	inAugust, err := repo.ListByDateRange(ctx, &desde, &hasta)
	require.NoError(t, err)
	require.Len(t, inAugust, 1)
	assert.True(t, inAugust[0].Monto.Equal(decimal.NewFromInt(20)))

	fromAugust, err := repo.ListByDateRange(ctx, &desde, nil)
	require.NoError(t, err)
	assert.Len(t, fromAugust, 2)

	everything, err := repo.ListByDateRange(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, everything, 3)
}

func TestDueRepository_ListPaidByMember(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	memberID, _, adminID := seedMemberAndRehearsal(t, db)
	repo := NewDueRepository(db)

	early := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	first := seedDue(t, repo, memberID, adminID, 20, model.DueStatusPaid, early)
	first.FechaPago = &early
	require.NoError(t, repo.Update(ctx, first))

	second := seedDue(t, repo, memberID, adminID, 20, model.DueStatusPaid, late)
	second.FechaPago = &late
	require.NoError(t, repo.Update(ctx, second))

	seedDue(t, repo, memberID, adminID, 20, model.DueStatusPending, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC))

	paid, err := repo.ListPaidByMember(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, paid, 2)
	// most recent payment first
	assert.Equal(t, second.ID, paid[0].ID)
	assert.Equal(t, first.ID, paid[1].ID)
}

func TestDueRepository_List_Pagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	memberID, _, adminID := seedMemberAndRehearsal(t, db)
	repo := NewDueRepository(db)

	for i := 0; i < 5; i++ {
		seedDue(t, repo, memberID, adminID, 20, model.DueStatusPending,
			time.Date(2026, time.Month(i+1), 15, 0, 0, 0, 0, time.UTC))
	}

	page, total, err := repo.List(ctx, DueListParams{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	// latest due date first
	assert.True(t, page[0].FechaVencimiento.After(page[1].FechaVencimiento))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
