package countdown

import (
	"encoding/json"
	"time"
)

// Urgency is the visual band a remaining duration falls into.
type Urgency int

const (
	Normal Urgency = iota
	Urgent
	Critical
	Expired
)

// Classify maps the total time left to an urgency band.
//
//	total <= 0           Expired
//	0 < total < 10m      Critical
//	10m <= total < 1h    Urgent
//	total >= 1h          Normal
func Classify(total time.Duration) Urgency {
	switch {
	case total <= 0:
		return Expired
	case total < CriticalThreshold:
		return Critical
	case total < UrgentThreshold:
		return Urgent
	default:
		return Normal
	}
}

func (u Urgency) String() string {
	switch u {
	case Normal:
		return "normal"
	case Urgent:
		return "urgent"
	case Critical:
		return "critical"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the urgency by name.
func (u Urgency) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}
