package domain

import "encoding/json"

// Availability is the sole return contract of every prerequisite check.
// Reason is empty iff Usable is true.
type Availability struct {
	Usable bool
	Reason string
}

func Available() Availability {
	return Availability{Usable: true}
}

func Unavailable(reason string) Availability {
	if reason == "" {
		reason = "unavailable"
	}
	return Availability{Reason: reason}
}

func (a Availability) MarshalJSON() ([]byte, error) {
	var reason *string
	if !a.Usable {
		r := a.Reason
		reason = &r
	}
	return json.Marshal(struct {
		Usable bool    `json:"usable"`
		Reason *string `json:"reason"`
	}{Usable: a.Usable, Reason: reason})
}
