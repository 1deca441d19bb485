package marketing

import (
	"time"

	"gorm.io/gorm"
)

type ChannelType string

const (
	ChannelTypeOnline   ChannelType = "online"
	ChannelTypeOffline  ChannelType = "offline"
	ChannelTypeReferral ChannelType = "referral"
)

// Channel tracks one acquisition source
type Channel struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ChannelName     string         `json:"channelName" gorm:"not null;size:100;uniqueIndex"`
	ChannelType     ChannelType    `json:"channelType" gorm:"size:16;default:'online'"`
	UtmSource       string         `json:"utmSource" gorm:"size:100"`
	VisitCount      int64          `json:"visitCount" gorm:"default:0"`
	LeadCount       int64          `json:"leadCount" gorm:"default:0"`
	ConversionCount int64          `json:"conversionCount" gorm:"default:0"`
	Cost            float64        `json:"cost" gorm:"type:decimal(12,2);default:0"`
	Revenue         float64        `json:"revenue" gorm:"type:decimal(12,2);default:0"`
	CreatedBy       uint           `json:"createdBy"`
	CreatedAt       time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// ConversionRate is conversions per lead, as a percentage
func (ch *Channel) ConversionRate() float64 {
	if ch.LeadCount == 0 {
		return 0
	}
	return float64(ch.ConversionCount) * 100 / float64(ch.LeadCount)
}

type CodeStatus string

const (
	CodeStatusActive   CodeStatus = "active"
	CodeStatusDisabled CodeStatus = "disabled"
)

// PromotionCode is a referral code owned by one user
type PromotionCode struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"userId" gorm:"not null;index"`
	ActivityID   *uint          `json:"activityId"`
	Code         string         `json:"code" gorm:"not null;size:32;uniqueIndex"`
	Title        string         `json:"title" gorm:"size:200"`
	Description  string         `json:"description" gorm:"size:500"`
	ValidityDays int            `json:"validityDays" gorm:"not null;default:30"`
	UsageLimit   int            `json:"usageLimit" gorm:"not null;default:100"`
	UsageCount   int            `json:"usageCount" gorm:"not null;default:0"`
	ExpiresAt    time.Time      `json:"expiresAt" gorm:"not null"`
	IsCustom     bool           `json:"isCustom" gorm:"default:false"`
	Status       CodeStatus     `json:"status" gorm:"size:16;default:'active'"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *PromotionCode) IsExpired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}

func (p *PromotionCode) IsExhausted() bool {
	return p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit
}

// PromotionClick records one visit through a promotion code
type PromotionClick struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"not null;size:32;index"`
	IPAddress string    `json:"ipAddress" gorm:"size:64"`
	UserAgent string    `json:"userAgent" gorm:"size:500"`
	Referrer  string    `json:"referrer" gorm:"size:500"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
}

func (Channel) TableName() string {
	return "channel_trackings"
}

func (PromotionCode) TableName() string {
	return "referral_codes"
}

func (PromotionClick) TableName() string {
	return "referral_clicks"
}
