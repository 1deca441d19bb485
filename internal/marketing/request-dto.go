package marketing

import "kinderadmin/internal/shared/utils/request"

type CreateChannelRequest struct {
	ChannelName string      `json:"channelName" binding:"required,max=100"`
	ChannelType ChannelType `json:"channelType" binding:"omitempty,oneof=online offline referral"`
	UtmSource   string      `json:"utmSource" binding:"max=100"`
	Cost        float64     `json:"cost" binding:"min=0"`
}

type UpdateChannelRequest struct {
	ChannelName     *string      `json:"channelName" binding:"omitempty,max=100"`
	ChannelType     *ChannelType `json:"channelType" binding:"omitempty,oneof=online offline referral"`
	UtmSource       *string      `json:"utmSource" binding:"omitempty,max=100"`
	VisitCount      *int64       `json:"visitCount" binding:"omitempty,min=0"`
	LeadCount       *int64       `json:"leadCount" binding:"omitempty,min=0"`
	ConversionCount *int64       `json:"conversionCount" binding:"omitempty,min=0"`
	Cost            *float64     `json:"cost" binding:"omitempty,min=0"`
	Revenue         *float64     `json:"revenue" binding:"omitempty,min=0"`
}

type ChannelListQuery struct {
	request.PageQuery
	Keyword string `form:"keyword"`
}

type CreatePromotionCodeRequest struct {
	ActivityID   *uint  `json:"activityId"`
	Title        string `json:"title" binding:"max=200"`
	Description  string `json:"description" binding:"max=500"`
	ValidityDays int    `json:"validityDays" binding:"omitempty,min=1,max=365"`
	UsageLimit   int    `json:"usageLimit" binding:"omitempty,min=1,max=100000"`
}

// ClickRequest is assembled from the request, not the body
type ClickRequest struct {
	Code      string
	IPAddress string
	UserAgent string
	Referrer  string
}
