package errorlogs

import "time"

type ReportResponse struct {
	EventID string `json:"eventId"`
	Queued  bool   `json:"queued"`
}

type StatsResponse struct {
	Total    int64           `json:"total"`
	Last24h  int64           `json:"last24h"`
	ByLevel  map[Level]int64 `json:"byLevel"`
	BySource map[string]int64 `json:"bySource"`
}

type PurgeResponse struct {
	Deleted int64     `json:"deleted"`
	Before  time.Time `json:"before"`
}
