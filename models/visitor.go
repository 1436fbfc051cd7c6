package models

// Visitor linked to a booker's prisoner. Adult, Banned and BanExpiryDate are
// derived from upstream restriction records on every fetch.
type Visitor struct {
	VisitorDisplayID string `json:"visitorDisplayId"`
	VisitorID        int64  `json:"visitorId"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	DateOfBirth      string `json:"dateOfBirth"` // YYYY-MM-DD
	Adult            bool   `json:"adult"`
	Banned           bool   `json:"banned"`
	BanExpiryDate    string `json:"banExpiryDate,omitempty"` // empty with Banned set means indefinite
	Approved         bool   `json:"approved"`
}

// FullName returns "First Last".
func (v Visitor) FullName() string {
	return v.FirstName + " " + v.LastName
}

// VisitorIDs returns the upstream identifiers of the given visitors.
func VisitorIDs(visitors []Visitor) []int64 {
	ids := make([]int64, 0, len(visitors))
	for _, v := range visitors {
		ids = append(ids, v.VisitorID)
	}
	return ids
}

// FindVisitor looks up a visitor by display ID.
func FindVisitor(visitors []Visitor, displayID string) (Visitor, bool) {
	for _, v := range visitors {
		if v.VisitorDisplayID == displayID {
			return v, true
		}
	}
	return Visitor{}, false
}
