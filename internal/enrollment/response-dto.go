package enrollment

type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// ChannelCount is the number of applications attributed to a marketing
// channel. A nil ChannelID collects applications without a channel.
type ChannelCount struct {
	ChannelID   *uint  `json:"channelId"`
	ChannelName string `json:"channelName"`
	Count       int64  `json:"count"`
}

type StatsResponse struct {
	Total     int64            `json:"total"`
	ByStatus  map[Status]int64 `json:"byStatus"`
	BySource  []SourceCount    `json:"bySource"`
	ByChannel []ChannelCount   `json:"byChannel"`
}
