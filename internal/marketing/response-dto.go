package marketing

import "time"

type ChannelResponse struct {
	Channel
	ConversionRate float64 `json:"conversionRate"`
}

type ClickStats struct {
	TotalClicks    int64 `json:"totalClicks"`
	ActiveDays     int64 `json:"activeDays"`
	UniqueVisitors int64 `json:"uniqueVisitors"`
}

type PromotionCodeStats struct {
	Code       string     `json:"code"`
	Title      string     `json:"title"`
	Status     CodeStatus `json:"status"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	UsageLimit int        `json:"usageLimit"`
	UsageCount int        `json:"usageCount"`
	Expired    bool       `json:"expired"`
	Clicks     ClickStats `json:"clickStats"`
}

type ClickResponse struct {
	Code       string `json:"code"`
	UsageCount int    `json:"usageCount"`
	Remaining  int    `json:"remaining"`
}
