package stats

type WarningLevel string

const (
	LevelWarning  WarningLevel = "warning"
	LevelCritical WarningLevel = "critical"
)

type Warning struct {
	Stat    string       `json:"stat"`
	Level   WarningLevel `json:"level"`
	Message string       `json:"message"`
}

type threshold struct {
	stat     string
	value    func(Stats) int
	higher   bool // true: el problema es que suba (hunger)
	warn     int
	critical int
	messages [2]string // warning, critical
}

// Orden de salida: health, hunger, happiness, energy.
var thresholds = []threshold{
	{
		stat: "health", value: func(s Stats) int { return s.Health },
		warn: 30, critical: 10,
		messages: [2]string{"Your pet is not feeling well.", "Your pet is about to collapse!"},
	},
	{
		stat: "hunger", value: func(s Stats) int { return s.Hunger }, higher: true,
		warn: 70, critical: 90,
		messages: [2]string{"Your pet is getting hungry.", "Your pet is starving!"},
	},
	{
		stat: "happiness", value: func(s Stats) int { return s.Happiness },
		warn: 30, critical: 10,
		messages: [2]string{"Your pet feels lonely.", "Your pet is miserable!"},
	},
	{
		stat: "energy", value: func(s Stats) int { return s.Energy },
		warn: 20, critical: 5,
		messages: [2]string{"Your pet is tired.", "Your pet is exhausted!"},
	},
}

// Warnings arma los avisos para la UI. Una mascota en Critical sólo recibe el aviso de revive.
func Warnings(s Stats, isCritical bool) []Warning {
	if isCritical {
		return []Warning{{
			Stat:    "state",
			Level:   LevelCritical,
			Message: "Your pet is in critical condition and needs a revival item.",
		}}
	}

	out := make([]Warning, 0)
	for _, th := range thresholds {
		v := th.value(s)
		switch {
		case reached(v, th.critical, th.higher):
			out = append(out, Warning{Stat: th.stat, Level: LevelCritical, Message: th.messages[1]})
		case reached(v, th.warn, th.higher):
			out = append(out, Warning{Stat: th.stat, Level: LevelWarning, Message: th.messages[0]})
		}
	}
	return out
}

func reached(v, limit int, higher bool) bool {
	if higher {
		return v >= limit
	}
	return v <= limit
}
