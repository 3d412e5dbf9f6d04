// Package room defines the shared room document and pure projections
// over it. Every connected client sees the same document; everything in
// this package derives state from a snapshot without mutating it.
package room

import "sort"

// Team identifies one of the two teams. An empty Team means unassigned.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
	TeamNone Team = ""
)

// Opposite returns the other team.
func (t Team) Opposite() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// Status is the room's lifecycle phase. It drives which operations are
// legal at any point in time.
type Status string

const (
	StatusLobby    Status = "lobby"
	StatusPlaying  Status = "playing"
	StatusRound    Status = "round"
	StatusScoring  Status = "scoring"
	StatusFinished Status = "finished"
)

// transitions is the legal status ordering. finished -> lobby is the
// explicit restart path.
var transitions = map[Status][]Status{
	StatusLobby:    {StatusPlaying},
	StatusPlaying:  {StatusRound},
	StatusRound:    {StatusScoring},
	StatusScoring:  {StatusPlaying, StatusFinished},
	StatusFinished: {StatusLobby},
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Settings holds the lobby-tunable game settings.
type Settings struct {
	WinningScore int `json:"winningScore"`
}

// TeamState is the per-team slice of the document. Score never
// decreases within a game.
type TeamState struct {
	Score int `json:"score"`
}

// Teams holds both team states.
type Teams struct {
	Red  TeamState `json:"red"`
	Blue TeamState `json:"blue"`
}

// Player is one connected member of the room.
type Player struct {
	Name     string `json:"name"`
	IsHost   bool   `json:"isHost"`
	Team     Team   `json:"team"`
	JoinedAt int64  `json:"joinedAt"`
}

// Cursor is the per-team rotation index. It is only ever read modulo
// the current team size, so it is never clamped at write time.
type Cursor struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

// Index returns the cursor value for a team.
func (c Cursor) Index(t Team) int {
	if t == TeamRed {
		return c.Red
	}
	return c.Blue
}

// WithIndex returns a copy of the cursor with one team's value replaced.
func (c Cursor) WithIndex(t Team, v int) Cursor {
	if t == TeamRed {
		c.Red = v
	} else {
		c.Blue = v
	}
	return c
}

// Round is the single active round's working state.
type Round struct {
	Team         Team     `json:"team"`
	ExplainerID  string   `json:"explainerId"`
	Words        []string `json:"words"`
	TimerEnd     int64    `json:"timerEnd"`
	CorrectWords []int    `json:"correctWords"`
	PlayerIndex  Cursor   `json:"playerIndex"`
}

// CardState tracks the card draw cycle. Used holds indices already
// shown this cycle; it resets once every index has been drawn.
type CardState struct {
	Used  []int `json:"used"`
	Total int   `json:"total"`
}

// Room is the root shared document, keyed by a 5-character code.
type Room struct {
	Host         string            `json:"host"`
	Status       Status            `json:"status"`
	CreatedAt    int64             `json:"createdAt"`
	Settings     Settings          `json:"settings"`
	Teams        Teams             `json:"teams"`
	Players      map[string]Player `json:"players"`
	CurrentRound Round             `json:"currentRound"`
	Cards        CardState         `json:"cards"`
}

// New builds the initial room document for a freshly created room. The
// creating player is added as the unassigned host.
func New(hostID, hostName string, winningScore, totalCards int, now int64) *Room {
	return &Room{
		Host:      hostID,
		Status:    StatusLobby,
		CreatedAt: now,
		Settings:  Settings{WinningScore: winningScore},
		Players: map[string]Player{
			hostID: {Name: hostName, IsHost: true, JoinedAt: now},
		},
		CurrentRound: Round{Team: TeamRed, CorrectWords: []int{}},
		Cards:        CardState{Used: []int{}, Total: totalCards},
	}
}

// Roster returns the ids of the players on a team, in join order.
// JoinedAt breaks ties by player id so every client derives the same
// ordering from the same snapshot.
func (r *Room) Roster(t Team) []string {
	var ids []string
	for id, p := range r.Players {
		if p.Team == t {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := r.Players[ids[i]], r.Players[ids[j]]
		if a.JoinedAt != b.JoinedAt {
			return a.JoinedAt < b.JoinedAt
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Unassigned returns the ids of players not yet on a team, in join order.
func (r *Room) Unassigned() []string {
	return r.Roster(TeamNone)
}

// Score returns a team's current score.
func (r *Room) Score(t Team) int {
	if t == TeamRed {
		return r.Teams.Red.Score
	}
	return r.Teams.Blue.Score
}

// Winner derives the winning team from the frozen scores. Only
// meaningful once Status is finished.
func (r *Room) Winner() Team {
	if r.Teams.Red.Score >= r.Settings.WinningScore {
		return TeamRed
	}
	return TeamBlue
}

// IsExplainer reports whether the given player explains the current round.
func (r *Room) IsExplainer(playerID string) bool {
	return r.CurrentRound.ExplainerID == playerID
}
