package domain

import (
	"fmt"
	"strings"
)

// TravelMode selects the routing profile of the backend.
type TravelMode string

const (
	ModeWalking TravelMode = "walking"
	ModeDriving TravelMode = "driving"
)

func ParseTravelMode(s string) (TravelMode, error) {
	switch TravelMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWalking:
		return ModeWalking, nil
	case ModeDriving:
		return ModeDriving, nil
	}
	return "", fmt.Errorf("unsupported travel mode %q (want walking or driving)", s)
}
