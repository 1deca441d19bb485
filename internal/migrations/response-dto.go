package migrations

import "time"

type Status struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Applied     bool       `json:"applied"`
	AppliedAt   *time.Time `json:"appliedAt"`
}

type RunResponse struct {
	Applied []string `json:"applied"`
	Pending int      `json:"pending"`
}
