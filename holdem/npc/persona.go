package npc

// PersonalityProfile defines the tunable parameters for a RuleBrain.
type PersonalityProfile struct {
	Aggression float64 `json:"aggression"` // 0.0-1.0: tendency to bet/raise vs check/call
	Tightness  float64 `json:"tightness"`  // 0.0-1.0: hand range width (1.0 = only premiums)
	Bluffing   float64 `json:"bluffing"`   // 0.0-1.0: bluff frequency
	Randomness float64 `json:"randomness"` // 0.0-1.0: decision noise
}

// Persona is a named opponent character.
type Persona struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Tagline string             `json:"tagline"`
	Brain   PersonalityProfile `json:"brain"`
}

// Personas are the built-in opponents, from most passive to most aggressive.
var Personas = []Persona{
	{
		ID:      "rock",
		Name:    "The Rock",
		Tagline: "Folds everything but the nuts.",
		Brain:   PersonalityProfile{Aggression: 0.2, Tightness: 0.9, Bluffing: 0.05, Randomness: 0.1},
	},
	{
		ID:      "station",
		Name:    "Calling Station",
		Tagline: "Never met a bet it didn't call.",
		Brain:   PersonalityProfile{Aggression: 0.15, Tightness: 0.1, Bluffing: 0.05, Randomness: 0.2},
	},
	{
		ID:      "tag",
		Name:    "Textbook",
		Tagline: "Tight, aggressive, predictable.",
		Brain:   PersonalityProfile{Aggression: 0.65, Tightness: 0.65, Bluffing: 0.2, Randomness: 0.15},
	},
	{
		ID:      "maniac",
		Name:    "The Maniac",
		Tagline: "Raises with any two cards.",
		Brain:   PersonalityProfile{Aggression: 0.95, Tightness: 0.1, Bluffing: 0.6, Randomness: 0.4},
	},
}

// PersonaByID looks up a built-in persona.
func PersonaByID(id string) (Persona, bool) {
	for _, persona := range Personas {
		if persona.ID == id {
			return persona, true
		}
	}
	return Persona{}, false
}
