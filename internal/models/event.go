package models

// Event is a scheduled activity (tasting, workshop, fair).
type Event struct {
	Entity
	Title                string  `json:"title"`
	Date                 string  `json:"date"`
	StartTime            string  `json:"startTime"`
	EndTime              string  `json:"endTime"`
	RegistrationRequired bool    `json:"registrationRequired"`
	IsFree               bool    `json:"isFree"`
	Description          string  `json:"description"`
	Location             string  `json:"location"`
	IsVirtual            bool    `json:"isVirtual"`
	EntryPrice           float64 `json:"entryPrice"`
	CancelledByRain      bool    `json:"cancelledByRain"`
}

// EventInput is the body of event create and update requests.
type EventInput struct {
	Title                *string  `json:"title,omitempty" validate:"omitempty,trimmin=5"`
	Date                 *string  `json:"date,omitempty" validate:"omitempty,ddmmyy"`
	StartTime            *string  `json:"startTime,omitempty" validate:"omitempty,hhmm"`
	EndTime              *string  `json:"endTime,omitempty" validate:"omitempty,hhmm"`
	RegistrationRequired *bool    `json:"registrationRequired,omitempty"`
	IsFree               *bool    `json:"isFree,omitempty"`
	Description          *string  `json:"description,omitempty" validate:"omitempty,trimmin=10"`
	Location             *string  `json:"location,omitempty" validate:"omitempty,trimmin=5"`
	IsVirtual            *bool    `json:"isVirtual,omitempty"`
	EntryPrice           *float64 `json:"entryPrice,omitempty" validate:"omitempty,gte=0"`
	CancelledByRain      *bool    `json:"cancelledByRain,omitempty"`
}
