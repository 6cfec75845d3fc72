package match

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Raw is one fixture as the provider publishes it. Field names follow the
// provider's JSON; only the fields the derivation reads are decoded.
type Raw struct {
	ID       Identifier   `json:"id" validate:"required"`
	Home     *Participant `json:"h" validate:"required"`
	Away     *Participant `json:"a" validate:"required"`
	Goals    *GoalPair    `json:"goals" validate:"required"`
	XG       *XGPair      `json:"xG" validate:"required"`
	Datetime string       `json:"datetime" validate:"required"`
	Result   string       `json:"result" validate:"required"`
}

type Participant struct {
	ID         Identifier `json:"id,omitempty"`
	Title      string     `json:"title" validate:"required"`
	ShortTitle string     `json:"short_title,omitempty"`
}

type GoalPair struct {
	H *Count `json:"h" validate:"required"`
	A *Count `json:"a" validate:"required"`
}

type XGPair struct {
	H *Metric `json:"h" validate:"required"`
	A *Metric `json:"a" validate:"required"`
}

type Venue string

const (
	VenueHome Venue = "Home"
	VenueAway Venue = "Away"
)

type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
	ResultDraw Result = "D"
)

// Row is one match seen from the target team's side.
type Row struct {
	ID         string
	Datetime   time.Time
	Season     string
	HomeTeam   string
	AwayTeam   string
	HomeGoals  int
	AwayGoals  int
	NameOfTeam string
	XG         float64
	XGConceded float64
	Result     Result
	Opponent   string
	Venue      Venue
}

// Summary is the reduced extraction: identity, date, team, xG and season.
type Summary struct {
	ID         string
	Datetime   time.Time
	NameOfTeam string
	XG         float64
	Season     string
}

// Identifier keeps ids opaque; the provider sends them as strings but numbers are accepted.
type Identifier string

func (v *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Identifier(strings.TrimSpace(s))
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("identifier must be a string or number, got %s", data)
	}
	*v = Identifier(data)
	return nil
}

// Count is an integer that may arrive string-encoded ("2").
type Count int

func (v *Count) UnmarshalJSON(data []byte) error {
	raw, ok, err := unquoteNumber(data)
	if err != nil || !ok {
		return err
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*v = Count(n)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return fmt.Errorf("goal count must be an integer, got %q", raw)
	}
	*v = Count(int(f))
	return nil
}

func (v *Count) Int() int {
	if v == nil {
		return 0
	}
	return int(*v)
}

// Metric is a float that may arrive string-encoded ("1.8342").
type Metric float64

func (v *Metric) UnmarshalJSON(data []byte) error {
	raw, ok, err := unquoteNumber(data)
	if err != nil || !ok {
		return err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("metric must be numeric, got %q", raw)
	}
	*v = Metric(f)
	return nil
}

func (v *Metric) Float() float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}

func unquoteNumber(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false, nil
	}
	if data[0] != '"' {
		return string(data), true, nil
	}
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return "", false, err
	}
	return strings.TrimSpace(s), true, nil
}
