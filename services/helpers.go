package services

import "time"

const matchDateLayout = "2006-01-02"

func parseMatchDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, ErrMissingDate
	}
	date, err := time.Parse(matchDateLayout, dateStr)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// Broadcaster pushes a message to every live subscriber of a room.
// Implemented by the websocket hub.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}
