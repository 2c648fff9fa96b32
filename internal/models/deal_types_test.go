package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDealIsLive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	deal := Deal{
		Status:    DealStatusActive,
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	}
	assert.True(t, deal.IsLive(now))

	// Wrong status
	for _, status := range []string{DealStatusDraft, DealStatusScheduled, DealStatusExpired} {
		d := deal
		d.Status = status
		assert.False(t, d.IsLive(now), "status %s should not be live", status)
	}

	// Outside the window
	early := deal
	early.StartDate = now.Add(time.Hour)
	early.EndDate = now.Add(48 * time.Hour)
	assert.False(t, early.IsLive(now))

	late := deal
	late.StartDate = now.Add(-48 * time.Hour)
	late.EndDate = now.Add(-time.Hour)
	assert.False(t, late.IsLive(now))
}

func TestDealIsLiveUsageCap(t *testing.T) {
	now := time.Now()
	maxUses := int64(100)
	deal := Deal{
		Status:    DealStatusActive,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		MaxUses:   &maxUses,
	}

	deal.CurrentUses = 99
	assert.True(t, deal.IsLive(now))

	deal.CurrentUses = 100
	assert.False(t, deal.IsLive(now))

	// No cap means unlimited
	deal.MaxUses = nil
	deal.CurrentUses = 1000000
	assert.True(t, deal.IsLive(now))
}

func TestDiscountDisplay(t *testing.T) {
	pct := 33.0
	amount := 500.0

	tests := []struct {
		deal Deal
		want string
	}{
		{Deal{DealType: DealTypePercentage, DiscountPercentage: &pct}, "33% OFF"},
		{Deal{DealType: DealTypeFixed, DiscountAmount: &amount}, "₱500 OFF"},
		{Deal{DealType: DealTypeBOGO}, "Buy 1 Get 1 FREE"},
		{Deal{DealType: DealTypeBundle}, "Bundle Deal"},
		{Deal{DealType: DealTypePercentage}, "Special Offer"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.deal.DiscountDisplay())
	}
}
