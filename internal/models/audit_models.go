package models

type Position string

const (
	PositionQB      Position = "QB"
	PositionRB      Position = "RB"
	PositionWR      Position = "WR"
	PositionTE      Position = "TE"
	PositionDefense Position = "Defense"
)

type Slot string

const (
	SlotQB     Slot = "QB"
	SlotRB     Slot = "RB"
	SlotWR     Slot = "WR"
	SlotTE     Slot = "TE"
	SlotDEF    Slot = "DEF"
	SlotFlex   Slot = "FLEX"
	SlotExFlex Slot = "EX-FLEX"
	SlotBench  Slot = "Bench"
)

// PlayerWeekRecord is one player's week for one owner. A record with an empty
// PlayerName is the placeholder for a starting slot nobody filled.
type PlayerWeekRecord struct {
	Week          int
	Owner         string
	Team          string
	Opponent      string
	PlayerName    string
	PlayerTeam    string
	Position      Position
	Points        float64
	Projection    float64
	HasProjection bool
	Slot          Slot
	IsBench       bool
	DraftOwner    string
	DraftAmount   int
}

func (r PlayerWeekRecord) IsPlaceholder() bool {
	return r.PlayerName == ""
}

type DecisionBasis string

const (
	BasisActual    DecisionBasis = "actual"
	BasisProjected DecisionBasis = "projected"
)

// WrongDecision pairs a started player with a bench player who should have
// started instead. PointsLost is bench minus starter on the decision basis.
type WrongDecision struct {
	Owner           string
	Week            int
	ReplacedStarter string
	BenchPlayer     string
	PointsLost      float64
	Basis           DecisionBasis
}

type TeamWeekAudit struct {
	Week              int
	TeamID            int
	Owner             string
	TeamName          string
	Opponent          string
	Starting          []PlayerWeekRecord
	Bench             []PlayerWeekRecord
	OptimalLineup     []PlayerWeekRecord
	DisplacedStarters []PlayerWeekRecord
	ActualPoints      float64
	OptimalPoints     float64
	AllDecisions      []WrongDecision
	OptimalDecisions  []WrongDecision
	ProjectedMisses   []WrongDecision
}

func (a TeamWeekAudit) PointsLeftOnBench() float64 {
	return a.OptimalPoints - a.ActualPoints
}

type Standing struct {
	Owner        string
	Division     string
	Wins         int
	Losses       int
	Ties         int
	Points       float64
	MadePlayoffs bool
}

type SeasonAudit struct {
	Weeks []int
	Teams []TeamInfo
	// Audits holds every team's audit for every week, in week then matchup order.
	Audits            []TeamWeekAudit
	Draft             *DraftBook
	Standings         []Standing
	OptimalStandings  []Standing
	IndividualOptimal map[string][]Standing
}
