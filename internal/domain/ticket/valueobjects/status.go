package valueobjects

import "fmt"

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusClosed     Status = "Closed"
	StatusResolved   Status = "Resolved"
	StatusOnHold     Status = "On Hold"
)

var validStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusClosed:     true,
	StatusResolved:   true,
	StatusOnHold:     true,
}

// AllStatuses lists every status in display order.
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusOnHold, StatusResolved, StatusClosed}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) IsOpen() bool {
	return s == StatusOpen
}

func (s Status) IsClosed() bool {
	return s == StatusClosed
}

func (s Status) IsResolved() bool {
	return s == StatusResolved
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return st, nil
}
