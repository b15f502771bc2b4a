package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var afternoon = time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC)

func ago(now time.Time, d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func TestCalculate_AwakeTwoHours(t *testing.T) {
	now := afternoon
	got := CalculateStatDegradation(DegradationInput{
		Current:         Initial(),
		LastUpdate:      now.Add(-2 * time.Hour),
		LastInteraction: ago(now, 2*time.Hour),
	}, now)

	assert.Equal(t, Stats{Health: 100, Hunger: 2, Happiness: 99, Energy: 99}, got.Stats)
	assert.Equal(t, now, got.LastStatUpdate)
	assert.False(t, got.IsCritical)
	assert.False(t, got.EnteredCritical)
	assert.False(t, got.InGracePeriod)
	assert.Nil(t, got.NeglectStartedAt)
}

func TestCalculate_GracePeriodHalvesRates(t *testing.T) {
	now := afternoon
	neglected := Stats{Health: 100, Hunger: 60, Happiness: 40, Energy: 100}
	base := DegradationInput{
		Current:         neglected,
		LastUpdate:      now.Add(-4 * time.Hour),
		LastInteraction: ago(now, 4*time.Hour),
	}

	outside := base
	outside.NeglectStartedAt = ago(now, 48*time.Hour)
	full := CalculateStatDegradation(outside, now)
	require.False(t, full.InGracePeriod)

	inside := base
	inside.NeglectStartedAt = ago(now, time.Hour)
	half := CalculateStatDegradation(inside, now)
	require.True(t, half.InGracePeriod)

	assert.Equal(t, 4, full.Stats.Hunger-neglected.Hunger)
	assert.Equal(t, 2, half.Stats.Hunger-neglected.Hunger)
	assert.Equal(t, -2, full.Stats.Happiness-neglected.Happiness)
	assert.Equal(t, -1, half.Stats.Happiness-neglected.Happiness)
	// La energía no depende de la gracia.
	assert.Equal(t, full.Stats.Energy, half.Stats.Energy)
}

func TestCalculate_EntersCriticalAndStaysPinned(t *testing.T) {
	now := afternoon
	got := CalculateStatDegradation(DegradationInput{
		Current:          Stats{Health: 5, Hunger: 95, Happiness: 50, Energy: 50},
		LastUpdate:       now.Add(-3 * time.Hour),
		LastInteraction:  ago(now, 3*time.Hour),
		NeglectStartedAt: ago(now, 48*time.Hour),
	}, now)

	require.True(t, got.IsCritical)
	assert.True(t, got.EnteredCritical)
	assert.Equal(t, 0, got.Stats.Health)

	later := now.Add(100 * time.Hour)
	again := CalculateStatDegradation(DegradationInput{
		Current:          got.Stats,
		LastUpdate:       got.LastStatUpdate,
		NeglectStartedAt: got.NeglectStartedAt,
		IsCritical:       got.IsCritical,
	}, later)

	assert.True(t, again.IsCritical)
	assert.False(t, again.EnteredCritical)
	assert.Equal(t, 0, again.Stats.Health)
	assert.Equal(t, got.Stats.Hunger, again.Stats.Hunger)
	assert.Equal(t, later, again.LastStatUpdate)
}

func TestCalculate_HealthDropsOnlyWhenStarving(t *testing.T) {
	now := afternoon
	in := DegradationInput{
		Current:          Stats{Health: 80, Hunger: 79, Happiness: 80, Energy: 80},
		LastUpdate:       now.Add(-time.Hour),
		LastInteraction:  ago(now, time.Hour),
		NeglectStartedAt: ago(now, 48*time.Hour),
	}

	// 79 + 1 = 80: no supera el umbral.
	got := CalculateStatDegradation(in, now)
	assert.Equal(t, 80, got.Stats.Health)

	in.LastUpdate = now.Add(-2 * time.Hour)
	got = CalculateStatDegradation(in, now)
	assert.Equal(t, 81, got.Stats.Hunger)
	assert.Equal(t, 76, got.Stats.Health)
}

func TestCalculate_SleepWindowRecoversEnergy(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		offset int
		want   int
	}{
		{name: "utc night", now: time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC), offset: 0, want: 60},
		{name: "negative offset", now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), offset: -600, want: 60},
		{name: "window end is exclusive", now: time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC), offset: 600, want: 49},
		{name: "daytime", now: afternoon, offset: 0, want: 49},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateStatDegradation(DegradationInput{
				Current:               Stats{Health: 100, Hunger: 0, Happiness: 100, Energy: 50},
				LastUpdate:            tc.now.Add(-2 * time.Hour),
				LastInteraction:       ago(tc.now, 2*time.Hour),
				TimezoneOffsetMinutes: tc.offset,
			}, tc.now)
			assert.Equal(t, tc.want, got.Stats.Energy)
		})
	}
}

func TestCalculate_SubMinuteSkipsRecalculation(t *testing.T) {
	now := afternoon
	current := Stats{Health: 70, Hunger: 60, Happiness: 20, Energy: 10}
	marker := ago(now, 2*time.Hour)

	got := CalculateStatDegradation(DegradationInput{
		Current:          current,
		LastUpdate:       now.Add(-30 * time.Second),
		NeglectStartedAt: marker,
	}, now)

	assert.Equal(t, current, got.Stats)
	assert.Equal(t, now, got.LastStatUpdate)
	assert.Equal(t, marker, got.NeglectStartedAt)
}

func TestCalculate_NeglectMarker(t *testing.T) {
	now := afternoon
	base := DegradationInput{
		LastUpdate:      now.Add(-time.Hour),
		LastInteraction: ago(now, time.Hour),
	}

	t.Run("stamped on first detection", func(t *testing.T) {
		in := base
		in.Current = Stats{Health: 100, Hunger: 55, Happiness: 90, Energy: 90}
		got := CalculateStatDegradation(in, now)
		require.NotNil(t, got.NeglectStartedAt)
		assert.Equal(t, now, *got.NeglectStartedAt)
		assert.True(t, got.InGracePeriod)
	})

	t.Run("existing stamp is kept", func(t *testing.T) {
		in := base
		in.Current = Stats{Health: 100, Hunger: 10, Happiness: 45, Energy: 90}
		in.NeglectStartedAt = ago(now, 30*time.Hour)
		got := CalculateStatDegradation(in, now)
		require.NotNil(t, got.NeglectStartedAt)
		assert.Equal(t, *in.NeglectStartedAt, *got.NeglectStartedAt)
		assert.False(t, got.InGracePeriod)
	})

	t.Run("cleared once cared for", func(t *testing.T) {
		in := base
		in.Current = Initial()
		in.NeglectStartedAt = ago(now, 30*time.Hour)
		got := CalculateStatDegradation(in, now)
		assert.Nil(t, got.NeglectStartedAt)
	})
}

func TestCalculate_HealthCappedByPenalty(t *testing.T) {
	now := afternoon
	got := CalculateStatDegradation(DegradationInput{
		Current:          Stats{Health: 100, Hunger: 0, Happiness: 100, Energy: 100},
		LastUpdate:       now.Add(-time.Hour),
		LastInteraction:  ago(now, time.Hour),
		MaxHealthPenalty: 30,
	}, now)
	assert.Equal(t, 70, got.Stats.Health)
}

func TestEngine_CustomRates(t *testing.T) {
	rates := DefaultRates()
	rates.HungerPerHour = 10
	e := NewEngine(rates)
	assert.Equal(t, rates, e.Rates())

	now := afternoon
	got := e.Calculate(DegradationInput{
		Current:         Initial(),
		LastUpdate:      now.Add(-2 * time.Hour),
		LastInteraction: ago(now, 2*time.Hour),
	}, now)
	assert.Equal(t, 20, got.Stats.Hunger)
}

func TestCalculate_StatsStayInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		penalty := rapid.IntRange(0, MaxRecoveryPenalty).Draw(t, "penalty")
		current := Stats{
			Health:    rapid.IntRange(0, EffectiveMaxHealth(penalty)).Draw(t, "health"),
			Hunger:    rapid.IntRange(MinStat, MaxStat).Draw(t, "hunger"),
			Happiness: rapid.IntRange(MinStat, MaxStat).Draw(t, "happiness"),
			Energy:    rapid.IntRange(MinStat, MaxStat).Draw(t, "energy"),
		}
		elapsed := time.Duration(rapid.Int64Range(0, int64(2000*time.Hour)).Draw(t, "elapsed"))
		offset := rapid.IntRange(-12*60, 14*60).Draw(t, "offset")
		critical := rapid.Bool().Draw(t, "critical")

		now := afternoon
		got := CalculateStatDegradation(DegradationInput{
			Current:               current,
			LastUpdate:            now.Add(-elapsed),
			IsCritical:            critical,
			MaxHealthPenalty:      penalty,
			TimezoneOffsetMinutes: offset,
		}, now)

		s := got.Stats
		for name, v := range map[string]int{"hunger": s.Hunger, "happiness": s.Happiness, "energy": s.Energy} {
			if v < MinStat || v > MaxStat {
				t.Fatalf("%s out of range: %d", name, v)
			}
		}
		if s.Health < MinStat || s.Health > EffectiveMaxHealth(penalty) {
			t.Fatalf("health out of range: %d (penalty %d)", s.Health, penalty)
		}
		if critical && elapsed >= time.Minute && (!got.IsCritical || s.Health != 0) {
			t.Fatalf("critical pet escaped: %+v", got)
		}
		if got.EnteredCritical && critical {
			t.Fatalf("EnteredCritical reported for a pet already critical")
		}
	})
}

func TestCalculate_CarryMakesStepsAddUp(t *testing.T) {
	morning := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	end := morning.Add(10 * time.Hour)

	once := CalculateStatDegradation(DegradationInput{Current: Initial(), LastUpdate: morning}, end)
	require.Equal(t, Stats{Health: 100, Hunger: 10, Happiness: 95, Energy: 97}, once.Stats)

	for _, step := range []time.Duration{time.Hour, 20 * time.Minute, 6 * time.Minute} {
		in := DegradationInput{Current: Initial(), LastUpdate: morning}
		for now := morning.Add(step); !now.After(end); now = now.Add(step) {
			res := CalculateStatDegradation(in, now)
			in.Current = res.Stats
			in.LastUpdate = res.LastStatUpdate
			in.NeglectStartedAt = res.NeglectStartedAt
			in.IsCritical = res.IsCritical
			in.Carry = res.Carry
		}
		assert.Equal(t, once.Stats, in.Current, "step %s", step)
	}
}

func TestCalculate_SubMinuteKeepsCarry(t *testing.T) {
	now := afternoon
	carry := Remainder{Energy: -0.3}
	got := CalculateStatDegradation(DegradationInput{
		Current:    Initial(),
		LastUpdate: now.Add(-30 * time.Second),
		Carry:      carry,
	}, now)
	assert.Equal(t, carry, got.Carry)
}

func TestCalculate_CriticalDropsCarry(t *testing.T) {
	now := afternoon
	got := CalculateStatDegradation(DegradationInput{
		Current:    Stats{Health: 1, Hunger: 100, Happiness: 0, Energy: 0},
		LastUpdate: now.Add(-3 * time.Hour),
		Carry:      Remainder{Health: 0.4, Energy: -0.2},
	}, now)
	require.True(t, got.IsCritical)
	assert.Equal(t, Remainder{}, got.Carry)
}

func TestEngine_IsInGracePeriodUsesConfiguredWindow(t *testing.T) {
	rates := DefaultRates()
	rates.GracePeriod = 2 * time.Hour
	e := NewEngine(rates)

	now := afternoon
	assert.True(t, e.IsInGracePeriod(ago(now, time.Hour), now))
	assert.False(t, e.IsInGracePeriod(ago(now, 3*time.Hour), now))
	assert.True(t, IsInGracePeriod(ago(now, 3*time.Hour), now), "default window is 24h")
}
