package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/velmor/VCS-ConsultationService/pkg/ptr"
)

func TestPromoCode_Discount(t *testing.T) {
	tests := []struct {
		name          string
		promo         PromoCode
		originalPrice float64
		want          float64
	}{
		{
			name:          "процентная скидка",
			promo:         PromoCode{Type: DiscountPercent, Value: 20},
			originalPrice: 100,
			want:          20,
		},
		{
			name:          "фиксированная скидка",
			promo:         PromoCode{Type: DiscountAmount, Value: 15},
			originalPrice: 100,
			want:          15,
		},
		{
			name:          "ограничение maxDiscount",
			promo:         PromoCode{Type: DiscountPercent, Value: 50, MaxDiscount: ptr.Ptr(30.0)},
			originalPrice: 100,
			want:          30,
		},
		{
			name:          "скидка не больше суммы покупки",
			promo:         PromoCode{Type: DiscountAmount, Value: 150},
			originalPrice: 100,
			want:          100,
		},
		{
			name:          "нулевая сумма покупки",
			promo:         PromoCode{Type: DiscountPercent, Value: 20},
			originalPrice: 0,
			want:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.promo.Discount(tt.originalPrice)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.GreaterOrEqual(t, tt.originalPrice-got, 0.0)
		})
	}
}

func TestPromoCode_IsWithinWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	t.Run("без границ всегда активен", func(t *testing.T) {
		promo := PromoCode{}
		assert.True(t, promo.IsWithinWindow(now))
	})

	t.Run("до начала действия", func(t *testing.T) {
		promo := PromoCode{StartsAt: &after}
		assert.False(t, promo.IsWithinWindow(now))
	})

	t.Run("после окончания действия", func(t *testing.T) {
		promo := PromoCode{ExpiresAt: &before}
		assert.False(t, promo.IsWithinWindow(now))
	})

	t.Run("внутри окна", func(t *testing.T) {
		promo := PromoCode{StartsAt: &before, ExpiresAt: &after}
		assert.True(t, promo.IsWithinWindow(now))
	})
}

func TestPromoCode_IsExhausted(t *testing.T) {
	t.Run("безлимитный код не исчерпывается", func(t *testing.T) {
		promo := PromoCode{UsageCount: 1000}
		assert.False(t, promo.IsExhausted())
	})

	t.Run("лимит не достигнут", func(t *testing.T) {
		promo := PromoCode{UsageLimit: ptr.Ptr(5), UsageCount: 4}
		assert.False(t, promo.IsExhausted())
	})

	t.Run("лимит достигнут", func(t *testing.T) {
		promo := PromoCode{UsageLimit: ptr.Ptr(5), UsageCount: 5}
		assert.True(t, promo.IsExhausted())
	})
}
