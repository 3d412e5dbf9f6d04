// Package turn decides which team and which player explains next.
package turn

import (
	"github.com/palemoky/thirty-seconds/internal/apperrors"
	"github.com/palemoky/thirty-seconds/internal/game/room"
)

// Next computes the round shell that follows the one just scored: the
// other team explains, its cursor picks the explainer, and the finished
// team's cursor advances by one. Cursors are never clamped when written;
// they are reduced modulo the live team size at read time, so a team
// shrinking mid-game cannot push the cursor out of range.
func Next(r *room.Room) (room.Round, error) {
	finished := r.CurrentRound.Team
	nextTeam := finished.Opposite()

	roster := r.Roster(nextTeam)
	if len(roster) == 0 {
		return room.Round{}, apperrors.ErrEmptyTeam
	}

	cursor := r.CurrentRound.PlayerIndex
	explainer := roster[cursor.Index(nextTeam)%len(roster)]

	return room.Round{
		Team:         nextTeam,
		ExplainerID:  explainer,
		Words:        nil,
		TimerEnd:     0,
		CorrectWords: []int{},
		PlayerIndex:  cursor.WithIndex(finished, cursor.Index(finished)+1),
	}, nil
}

// First computes the opening round shell when the game starts: team red
// leads and both cursors start at zero.
func First(r *room.Room) (room.Round, error) {
	red := r.Roster(room.TeamRed)
	if len(red) == 0 || len(r.Roster(room.TeamBlue)) == 0 {
		return room.Round{}, apperrors.ErrEmptyTeam
	}

	return room.Round{
		Team:         room.TeamRed,
		ExplainerID:  red[0],
		CorrectWords: []int{},
		PlayerIndex:  room.Cursor{},
	}, nil
}
