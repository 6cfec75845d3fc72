package filesystem

import (
	"time"

	"github.com/riskibarqy/understat-xg/internal/domain/match"
)

const datetimeLayout = "2006-01-02 15:04:05"

type csvTimestamp time.Time

func (t csvTimestamp) MarshalCSV() (string, error) {
	return time.Time(t).Format(datetimeLayout), nil
}

func (t *csvTimestamp) UnmarshalCSV(value string) error {
	parsed, err := match.ParseDatetime(value)
	if err != nil {
		return err
	}
	*t = csvTimestamp(parsed)
	return nil
}

type rowModel struct {
	ID         string       `csv:"id"`
	Datetime   csvTimestamp `csv:"datetime"`
	Season     string       `csv:"season"`
	HomeTeam   string       `csv:"home_team"`
	AwayTeam   string       `csv:"away_team"`
	HomeGoals  int          `csv:"home_goals"`
	AwayGoals  int          `csv:"away_goals"`
	NameOfTeam string       `csv:"name_of_team"`
	XG         float64      `csv:"xG"`
	XGConceded float64      `csv:"xG_conceded"`
	Result     string       `csv:"result"`
	Opponent   string       `csv:"opponent"`
	Venue      string       `csv:"venue"`
}

type summaryModel struct {
	ID         string       `csv:"id"`
	Datetime   csvTimestamp `csv:"datetime"`
	NameOfTeam string       `csv:"name_of_team"`
	XG         float64      `csv:"xG"`
	Season     string       `csv:"season"`
}

func toRowModels(rows []match.Row) []rowModel {
	out := make([]rowModel, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowModel{
			ID:         row.ID,
			Datetime:   csvTimestamp(row.Datetime),
			Season:     row.Season,
			HomeTeam:   row.HomeTeam,
			AwayTeam:   row.AwayTeam,
			HomeGoals:  row.HomeGoals,
			AwayGoals:  row.AwayGoals,
			NameOfTeam: row.NameOfTeam,
			XG:         row.XG,
			XGConceded: row.XGConceded,
			Result:     string(row.Result),
			Opponent:   row.Opponent,
			Venue:      string(row.Venue),
		})
	}
	return out
}

func toSummaryModels(rows []match.Summary) []summaryModel {
	out := make([]summaryModel, 0, len(rows))
	for _, row := range rows {
		out = append(out, summaryModel{
			ID:         row.ID,
			Datetime:   csvTimestamp(row.Datetime),
			NameOfTeam: row.NameOfTeam,
			XG:         row.XG,
			Season:     row.Season,
		})
	}
	return out
}
