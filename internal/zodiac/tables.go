package zodiac

const defaultWeight = 2

// constants holds everything known about one planet or chart point. Chart
// points have zero motion and period.
type constants struct {
	motion float64 // average degrees per day
	period float64 // orbital period in years
	slow   bool
	weight int
	themes []string
	focus  string
}

var planets = map[Planet]constants{
	Sun:       {motion: 0.9856, period: 1.0, weight: 3, themes: []string{"Identity", "Vitality"}, focus: "your sense of self"},
	Moon:      {motion: 13.176, period: 0.0748, weight: 3, themes: []string{"Emotions", "Home"}, focus: "your emotions"},
	Mercury:   {motion: 1.383, period: 0.241, weight: 2, themes: []string{"Communication", "Learning"}, focus: "how you think and communicate"},
	Venus:     {motion: 1.2, period: 0.615, weight: 2, themes: []string{"Love", "Values"}, focus: "your relationships"},
	Mars:      {motion: 0.524, period: 1.881, weight: 2, themes: []string{"Drive", "Courage"}, focus: "your drive and ambition"},
	Jupiter:   {motion: 0.083, period: 11.86, slow: true, weight: 3, themes: []string{"Growth", "Opportunity"}, focus: "your path to growth"},
	Saturn:    {motion: 0.034, period: 29.46, slow: true, weight: 4, themes: []string{"Work", "Structure"}, focus: "your sense of responsibility"},
	Uranus:    {motion: 0.012, period: 84.01, slow: true, weight: 4, themes: []string{"Change", "Freedom"}, focus: "your need for freedom"},
	Neptune:   {motion: 0.006, period: 164.8, slow: true, weight: 4, themes: []string{"Dreams", "Intuition"}, focus: "your inner world"},
	Pluto:     {motion: 0.004, period: 248.1, slow: true, weight: 5, themes: []string{"Transformation", "Power"}, focus: "your personal power"},
	Ascendant: {weight: 3, themes: []string{"Identity", "Appearance"}, focus: "how you show up in the world"},
	Midheaven: {weight: 3, themes: []string{"Career", "Reputation"}, focus: "your public life and career"},
}

var signQualities = map[Sign]string{
	Aries:       "initiating and pioneering",
	Taurus:      "grounding and stabilizing",
	Gemini:      "communicating and adapting",
	Cancer:      "nurturing and protective",
	Leo:         "creative and expressive",
	Virgo:       "practical and analytical",
	Libra:       "harmonizing and diplomatic",
	Scorpio:     "transforming and intense",
	Sagittarius: "expanding and philosophical",
	Capricorn:   "structuring and ambitious",
	Aquarius:    "innovative and independent",
	Pisces:      "intuitive and compassionate",
}
