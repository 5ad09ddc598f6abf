package models

type LeagueResponse struct {
	ID              int            `json:"id"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	SeasonID        int            `json:"seasonId"`
	SegmentID       int            `json:"segmentId"`
	Status          Status         `json:"status"`
	Teams           []Team         `json:"teams"`
	Members         []Member       `json:"members"`
	Settings        Settings       `json:"settings"`
	Schedule        []MatchupScore `json:"schedule"`
	DraftDetail     DraftDetail    `json:"draftDetail"`
}

type Settings struct {
	Name             string           `json:"name"`
	Size             int              `json:"size"`
	RosterSettings   RosterSettings   `json:"rosterSettings"`
	ScheduleSettings ScheduleSettings `json:"scheduleSettings"`
}

type RosterSettings struct {
	LineupSlotCounts map[string]int `json:"lineupSlotCounts"`
}

type ScheduleSettings struct {
	Divisions []Division `json:"divisions"`
}

type Division struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type Team struct {
	ID           int      `json:"id"`
	Abbreviation string   `json:"abbrev"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Nickname     string   `json:"nickname"`
	DivisionID   int      `json:"divisionId"`
	PrimaryOwner string   `json:"primaryOwner"`
	Owners       []string `json:"owners"`
	PlayoffSeed  int      `json:"playoffSeed"`
	Points       float64  `json:"points"`
	Roster       Roster   `json:"roster"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type MatchupScore struct {
	ID              int       `json:"id"`
	MatchupPeriodID int       `json:"matchupPeriodId"`
	Away            TeamScore `json:"away"`
	Home            TeamScore `json:"home"`
	Winner          string    `json:"winner"`
}

type TeamScore struct {
	TeamID                        int             `json:"teamId"`
	TotalPoints                   float64         `json:"totalPoints"`
	RosterForCurrentScoringPeriod RosterForPeriod `json:"rosterForCurrentScoringPeriod"`
}

type RosterForPeriod struct {
	Entries []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	PlayerID        int             `json:"playerId"`
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
}

type PlayerPoolEntry struct {
	ID               int     `json:"id"`
	OnTeamID         int     `json:"onTeamId"`
	Player           Player  `json:"player"`
	AppliedStatTotal float64 `json:"appliedStatTotal"`
}

type Player struct {
	ID                int    `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
	Stats             []Stat `json:"stats"`
	InjuryStatus      string `json:"injuryStatus"`
}

type Stat struct {
	StatSourceID    int     `json:"statSourceId"`
	ScoringPeriodID int     `json:"scoringPeriodId"`
	AppliedTotal    float64 `json:"appliedTotal"`
}

type DraftDetail struct {
	Drafted bool        `json:"drafted"`
	Picks   []DraftSlot `json:"picks"`
}

type DraftSlot struct {
	OverallPickNumber int `json:"overallPickNumber"`
	PlayerID          int `json:"playerId"`
	TeamID            int `json:"teamId"`
	BidAmount         int `json:"bidAmount"`
}
