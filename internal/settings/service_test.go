package settings_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/settings"
)

func TestService_Update(t *testing.T) {
	tests := []struct {
		name    string
		params  settings.UpdateParams
		wantErr error
	}{
		{
			name:   "Valid",
			params: settings.UpdateParams{MonthlyContribution: 4000, LoanInterestRate: decimal.NewFromInt(10), LateFeeAmount: 500},
		},
		{
			name:   "ZeroRateAndFee",
			params: settings.UpdateParams{MonthlyContribution: 1000},
		},
		{
			name:    "ZeroContribution",
			params:  settings.UpdateParams{LoanInterestRate: decimal.NewFromInt(10)},
			wantErr: chama.ErrInvalidSettings,
		},
		{
			name:    "NegativeRate",
			params:  settings.UpdateParams{MonthlyContribution: 4000, LoanInterestRate: decimal.NewFromInt(-1)},
			wantErr: chama.ErrInvalidSettings,
		},
		{
			name:    "NegativeFee",
			params:  settings.UpdateParams{MonthlyContribution: 4000, LateFeeAmount: -1},
			wantErr: chama.ErrInvalidSettings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := settings.NewMockRepository(ctrl)
			svc := settings.NewService(repo)

			if tt.wantErr == nil {
				repo.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).Return(nil)
			}

			got, err := svc.Update(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.MonthlyContribution, got.MonthlyContribution)
			assert.True(t, tt.params.LoanInterestRate.Equal(got.LoanInterestRate))
			assert.Equal(t, tt.params.LateFeeAmount, got.LateFeeAmount)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)
	svc := settings.NewService(repo)

	want := &chama.Settings{MonthlyContribution: 4000, LoanInterestRate: decimal.NewFromInt(10), LateFeeAmount: 500}
	repo.EXPECT().GetSettings(gomock.Any()).Return(want, nil)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}
