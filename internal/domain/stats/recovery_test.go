package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyRecovery(t *testing.T) {
	tests := []struct {
		name        string
		penalty     int
		wantHealth  int
		wantPenalty int
	}{
		{name: "first revive", penalty: 0, wantHealth: 50, wantPenalty: 10},
		{name: "second revive", penalty: 10, wantHealth: 50, wantPenalty: 20},
		{name: "max health below recovery health", penalty: 60, wantHealth: 30, wantPenalty: 70},
		{name: "tenth revive", penalty: 90, wantHealth: 0, wantPenalty: 100},
		{name: "already capped", penalty: 100, wantHealth: 0, wantPenalty: 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyRecovery(0, tc.penalty)
			assert.True(t, got.Success)
			assert.False(t, got.IsCritical)
			assert.Equal(t, tc.wantHealth, got.Health)
			assert.Equal(t, tc.wantPenalty, got.MaxHealthPenalty)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestApplyRecovery_MessageShowsNewMax(t *testing.T) {
	got := ApplyRecovery(0, 20)
	assert.Equal(t, "Your pet has been revived! Max health is now 70.", got.Message)
}

func TestCanUseRecoveryItem(t *testing.T) {
	tests := []struct {
		name     string
		critical bool
		qty      int
		want     Eligibility
	}{
		{name: "healthy pet", critical: false, qty: 3, want: Eligibility{Reason: ReasonNotCritical}},
		{name: "no items", critical: true, qty: 0, want: Eligibility{Reason: ReasonNoItems}},
		{name: "negative quantity", critical: true, qty: -1, want: Eligibility{Reason: ReasonNoItems}},
		{name: "allowed", critical: true, qty: 1, want: Eligibility{Allowed: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanUseRecoveryItem(tc.critical, tc.qty))
		})
	}
}

func TestIsInGracePeriod(t *testing.T) {
	now := afternoon
	assert.False(t, IsInGracePeriod(nil, now))
	assert.True(t, IsInGracePeriod(ago(now, time.Hour), now))
	assert.True(t, IsInGracePeriod(ago(now, 24*time.Hour-time.Second), now))
	assert.False(t, IsInGracePeriod(ago(now, 24*time.Hour), now))
}
