package models

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	CurrentWeek          int
	CurrentScoringPeriod int
	SeasonID             int
	FirstWeek            int
	LastWeek             int
	IsActive             bool
	LastUpdated          time.Time
}

type TeamInfo struct {
	TeamID   int
	TeamName string
	Owner    string
	Division string
}

// TeamWeek is one side of a matchup as loaded from the box score, split into
// the starting lineup (one record per starting slot) and the bench.
type TeamWeek struct {
	Week     int
	TeamID   int
	Owner    string
	TeamName string
	Opponent string
	Starting []PlayerWeekRecord
	Bench    []PlayerWeekRecord
}

type WeekMatchup struct {
	Week int
	Home TeamWeek
	Away TeamWeek
}

type DraftPick struct {
	Owner      string
	PlayerName string
	Position   Position
	Amount     int
}

// DraftBook indexes draft picks by player name.
type DraftBook struct {
	Picks  []DraftPick
	byName map[string]int
}

func NewDraftBook(picks []DraftPick) *DraftBook {
	b := &DraftBook{Picks: picks, byName: make(map[string]int, len(picks))}
	for i, p := range picks {
		b.byName[nameKey(p.PlayerName)] = i
	}
	return b
}

// Lookup finds the pick for a player by name. Names are compared without
// case, accents, punctuation or generational suffixes, so "Odell Beckham Jr."
// and "odell beckham" are the same player. Anything looser is not a match:
// ok is false when the player was never drafted.
func (b *DraftBook) Lookup(playerName string) (DraftPick, bool) {
	if b == nil {
		return DraftPick{}, false
	}
	key := nameKey(playerName)
	if key == "" {
		return DraftPick{}, false
	}
	i, ok := b.byName[key]
	if !ok {
		return DraftPick{}, false
	}
	return b.Picks[i], true
}

var nameSuffixes = map[string]bool{"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true}

func nameKey(name string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, strings.ToLower(name))
	if err != nil {
		folded = strings.ToLower(name)
	}

	words := strings.FieldsFunc(folded, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	var parts []string
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, w)
		if w == "" || (len(parts) > 0 && nameSuffixes[w]) {
			continue
		}
		parts = append(parts, w)
	}
	return strings.Join(parts, " ")
}
