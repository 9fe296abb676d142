package issue

import "time"

// Status is the lifecycle state of a stored submission. Records are written
// once and never mutated afterwards, so "open" is the only value this
// service assigns.
type Status string

const StatusOpen Status = "open"

// Submission is one user-reported issue as persisted to the issues
// collection. CreatedAt and Status are assigned by the store at write time.
type Submission struct {
	Title          string    `bson:"title"`
	SenderEmail    string    `bson:"senderEmail"`
	Steps          []string  `bson:"steps"`
	RecipientEmail string    `bson:"recipientEmail"`
	CreatedAt      time.Time `bson:"createdAt"`
	Status         Status    `bson:"status"`
}
