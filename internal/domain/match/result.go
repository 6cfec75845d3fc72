package match

import (
	"fmt"
	"strings"
)

// TargetResult turns the provider's home-relative code into the target
// team's outcome. Unknown codes are rejected rather than passed through.
func TargetResult(code string, venue Venue) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "d":
		return ResultDraw, nil
	case "w":
		if venue == VenueAway {
			return ResultLoss, nil
		}
		return ResultWin, nil
	case "l":
		if venue == VenueAway {
			return ResultWin, nil
		}
		return ResultLoss, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownResult, code)
	}
}
