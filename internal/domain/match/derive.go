package match

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Plays reports whether team is the home or away participant.
func (r Raw) Plays(team string) (Venue, bool, error) {
	if r.Home == nil || r.Away == nil {
		return "", false, fmt.Errorf("%w: id=%s: participants h/a are required", ErrMalformedRecord, r.ID)
	}
	switch team {
	case r.Home.Title:
		return VenueHome, true, nil
	case r.Away.Title:
		return VenueAway, true, nil
	default:
		return "", false, nil
	}
}

// Derive flattens raw into a Row for team. ok is false when team did not play.
func Derive(raw Raw, team string) (Row, bool, error) {
	team = strings.TrimSpace(team)
	venue, ok, err := raw.Plays(team)
	if err != nil || !ok {
		return Row{}, false, err
	}
	if err := validate.Struct(raw); err != nil {
		return Row{}, false, fmt.Errorf("%w: id=%s: %v", ErrMalformedRecord, raw.ID, err)
	}

	kickoff, err := ParseDatetime(raw.Datetime)
	if err != nil {
		return Row{}, false, fmt.Errorf("%w: id=%s: %v", ErrMalformedRecord, raw.ID, err)
	}
	result, err := TargetResult(raw.Result, venue)
	if err != nil {
		return Row{}, false, fmt.Errorf("id=%s: %w", raw.ID, err)
	}

	row := Row{
		ID:         string(raw.ID),
		Datetime:   kickoff,
		Season:     SeasonOf(kickoff),
		HomeTeam:   raw.Home.Title,
		AwayTeam:   raw.Away.Title,
		HomeGoals:  raw.Goals.H.Int(),
		AwayGoals:  raw.Goals.A.Int(),
		NameOfTeam: team,
		Result:     result,
		Venue:      venue,
	}
	if venue == VenueHome {
		row.XG, row.XGConceded = raw.XG.H.Float(), raw.XG.A.Float()
		row.Opponent = raw.Away.Title
	} else {
		row.XG, row.XGConceded = raw.XG.A.Float(), raw.XG.H.Float()
		row.Opponent = raw.Home.Title
	}

	return row, true, nil
}

// Summarize is the reduced counterpart of Derive. It only needs id, datetime and xG.
func Summarize(raw Raw, team string) (Summary, bool, error) {
	team = strings.TrimSpace(team)
	venue, ok, err := raw.Plays(team)
	if err != nil || !ok {
		return Summary{}, false, err
	}
	if err := validate.Var(string(raw.ID), "required"); err != nil {
		return Summary{}, false, fmt.Errorf("%w: id is required", ErrMalformedRecord)
	}
	if raw.XG == nil {
		return Summary{}, false, fmt.Errorf("%w: id=%s: xG is required", ErrMalformedRecord, raw.ID)
	}
	if err := validate.Struct(raw.XG); err != nil {
		return Summary{}, false, fmt.Errorf("%w: id=%s: %v", ErrMalformedRecord, raw.ID, err)
	}

	kickoff, err := ParseDatetime(raw.Datetime)
	if err != nil {
		return Summary{}, false, fmt.Errorf("%w: id=%s: %v", ErrMalformedRecord, raw.ID, err)
	}

	xg := raw.XG.A.Float()
	if venue == VenueHome {
		xg = raw.XG.H.Float()
	}

	return Summary{
		ID:         string(raw.ID),
		Datetime:   kickoff,
		NameOfTeam: team,
		XG:         xg,
		Season:     SeasonOf(kickoff),
	}, true, nil
}
