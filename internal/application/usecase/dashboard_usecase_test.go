package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardUseCase_Stats(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDashboard{projects: 3, vendors: 5, materials: 12, expenses: decimal.RequireFromString("1500.50")})

	out, err := uc.Stats(context.Background(), scopeFor(t, orgA, userA))
	require.NoError(t, err)
	assert.Equal(t, 3, out.Projects)
	assert.Equal(t, 5, out.Vendors)
	assert.Equal(t, 12, out.Materials)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(out.ExpenseTotal))
}

func TestDashboardUseCase_Stats_PropagaError(t *testing.T) {
	boom := errors.New("timeout")
	uc := NewDashboardUseCase(&fakeDashboard{err: boom})

	_, err := uc.Stats(context.Background(), scopeFor(t, orgA, userA))
	assert.ErrorIs(t, err, boom)
}
