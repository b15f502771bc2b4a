package stats

// Efectos de las acciones de cuidado. Sólo la matemática: quién puede ejecutarlas
// y cuándo lo decide la capa de servicio.
const (
	FeedHungerDecrease = 30
	FeedHappinessGain  = 5
	FeedHealthGain     = 5

	PlayHappinessGain = 15
	PlayEnergyCost    = 10
	PlayHungerCost    = 5

	ChatHappinessGain = 5
)

type Action string

const (
	ActionFeed Action = "feed"
	ActionPlay Action = "play"
	ActionChat Action = "chat"
)

// Apply aplica la acción respetando el techo de salud por penalización.
func Apply(a Action, s Stats, penalty int) Stats {
	next, _ := ApplyExact(a, s, Remainder{}, penalty)
	return next
}

// ApplyExact aplica la acción sobre el valor exacto (stat + remainder), así un
// stat que choca contra un límite no arrastra una fracción vieja.
func ApplyExact(a Action, s Stats, rem Remainder, penalty int) (Stats, Remainder) {
	d := delta(a)
	return settle(
		clampFloat(float64(s.Health)+rem.Health+float64(d.Health), MinStat, float64(EffectiveMaxHealth(penalty))),
		clampFloat(float64(s.Hunger)+rem.Hunger+float64(d.Hunger), MinStat, MaxStat),
		clampFloat(float64(s.Happiness)+rem.Happiness+float64(d.Happiness), MinStat, MaxStat),
		clampFloat(float64(s.Energy)+rem.Energy+float64(d.Energy), MinStat, MaxStat),
	)
}

func delta(a Action) Stats {
	switch a {
	case ActionFeed:
		return Stats{Health: FeedHealthGain, Hunger: -FeedHungerDecrease, Happiness: FeedHappinessGain}
	case ActionPlay:
		return Stats{Hunger: PlayHungerCost, Happiness: PlayHappinessGain, Energy: -PlayEnergyCost}
	case ActionChat:
		return Stats{Happiness: ChatHappinessGain}
	}
	return Stats{}
}

func Feed(s Stats, penalty int) Stats { return Apply(ActionFeed, s, penalty) }

func Play(s Stats, penalty int) Stats { return Apply(ActionPlay, s, penalty) }

func Chat(s Stats, penalty int) Stats { return Apply(ActionChat, s, penalty) }
