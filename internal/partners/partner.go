package partners

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

const (
	DirectionOutgoing = "outgoing"
	DirectionIncoming = "incoming"
)

// Partner is the other side of an accepted relation.
type Partner struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type Relation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PartnerID string    `json:"partnerId"`
	Status    string    `json:"status"`
	Direction string    `json:"direction"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
