package discovery

import (
	"strings"

	"github.com/famscout/activities-backend-go/internal/models"
)

// UnknownLocation is the terminal fallback for activities whose provider
// supplied no usable location text.
const UnknownLocation = "Unknown Location"

// FirstNonEmpty returns the first candidate that is not blank after
// trimming.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}

// ActivityDisplayName resolves the display name for an activity's location:
// structured venue name, then the plain address string, then city, then
// "Unknown Location".
func ActivityDisplayName(a *models.Activity) string {
	if name := FirstNonEmpty(a.LocationName, a.Location, a.City); name != "" {
		return name
	}
	return UnknownLocation
}
