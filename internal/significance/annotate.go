package significance

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/transit/internal/aspect"
	"github.com/papapumpkin/transit/internal/zodiac"
)

var houseMeanings = map[int]string{
	1:  "Self, Identity, Physical Appearance",
	2:  "Values, Finances, Material Possessions",
	3:  "Communication, Learning, Siblings",
	4:  "Home, Family, Roots, Emotional Foundation",
	5:  "Creativity, Romance, Children, Self-Expression",
	6:  "Health, Work, Daily Routines, Service",
	7:  "Partnerships, Marriage, One-on-One Relationships",
	8:  "Transformation, Intimacy, Shared Resources, Rebirth",
	9:  "Philosophy, Higher Learning, Travel, Spirituality",
	10: "Career, Public Reputation, Life Direction",
	11: "Friends, Community, Hopes, Dreams",
	12: "Spirituality, Subconscious, Hidden Matters, Karma",
}

var timingSummaries = map[Intensity]string{
	Exact:  "This transit is at its peak right now, so its themes are hard to miss.",
	Strong: "This transit is close to exact and its influence is clearly felt.",
	Subtle: "This transit is in the background and works on you gradually.",
}

// HouseMeaning returns the life areas of a natal house, or "" outside 1-12.
func HouseMeaning(house int) string {
	return houseMeanings[house]
}

func natalContext(o aspect.Observation) string {
	sign, ok := o.NatalSign()
	if !ok || !o.NatalPlanet.Known() {
		return fmt.Sprintf("Your natal %s colors how you experience this transit.", o.NatalPlanet)
	}
	return fmt.Sprintf("Your natal %s in %s shapes %s with %s energy.",
		o.NatalPlanet, sign, o.NatalPlanet.Focus(), sign.Quality())
}

func orbExplanation(o aspect.Observation) string {
	var strength string
	switch IntensityFor(o.Orb) {
	case Exact:
		strength = "operating at full strength"
	case Strong:
		strength = "strongly felt"
	default:
		strength = "a gentle background influence"
	}
	return fmt.Sprintf("At %.1f° from exact, this %s is %s.", o.Orb, o.Aspect, strength)
}

func timingSummary(i Intensity) string {
	return timingSummaries[i]
}

func pastPattern(o aspect.Observation) string {
	return fmt.Sprintf("Transiting %s forms this %s to your %s %s. Look back to the last one for a pattern.",
		o.TransitPlanet, o.Aspect, o.NatalPlanet, cyclePhrase(o.TransitPlanet, o.Aspect))
}

// stack attaches a note to every detail that shares its natal planet or its
// house with another detail.
func stack(details []Detail) {
	byPlanet := make(map[zodiac.Planet][]int)
	byHouse := make(map[int][]int)
	for i, d := range details {
		byPlanet[d.NatalPlanet] = append(byPlanet[d.NatalPlanet], i)
		if d.HasHouse() {
			byHouse[d.House] = append(byHouse[d.House], i)
		}
	}

	for i, d := range details {
		if n := len(byPlanet[d.NatalPlanet]); n > 1 {
			details[i].StackingNotes = append(details[i].StackingNotes, planetNote(d.NatalPlanet, n))
		}
		if !d.HasHouse() {
			continue
		}
		if n := len(byHouse[d.House]); n > 1 {
			details[i].StackingNotes = append(details[i].StackingNotes, houseNote(d.House, n))
		}
	}
}

func planetNote(p zodiac.Planet, n int) string {
	theme := "its themes"
	if tags := p.Themes(); len(tags) > 0 {
		theme = strings.ToLower(strings.Join(tags, " and "))
	}
	return fmt.Sprintf("%d transits are touching your natal %s at once, amplifying %s.", n, p, theme)
}

func houseNote(house, n int) string {
	return fmt.Sprintf("%d transits are activating your %s house at once, amplifying %s.",
		n, ordinal(house), strings.ToLower(HouseMeaning(house)))
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	if n%100 >= 11 && n%100 <= 13 {
		suffix = "th"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
