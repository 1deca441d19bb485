package errorlogs

import (
	"encoding/json"
	"time"

	"kinderadmin/internal/shared/database"
)

type Level string

const (
	LevelFatal   Level = "fatal"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

var Levels = []Level{LevelFatal, LevelError, LevelWarning, LevelInfo}

func (l Level) IsValid() bool {
	for _, v := range Levels {
		if l == v {
			return true
		}
	}
	return false
}

type Source string

const (
	SourceClient Source = "client"
	SourceServer Source = "server"
)

// ErrorLog is one reported error. EventID is assigned at intake and makes
// redelivered stream messages idempotent.
type ErrorLog struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	EventID   string           `json:"eventId" gorm:"uniqueIndex;not null;size:36"`
	Source    Source           `json:"source" gorm:"not null;size:16;default:'client'"`
	Level     Level            `json:"level" gorm:"not null;size:16;index"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	Stack     string           `json:"stack" gorm:"type:text"`
	URL       string           `json:"url" gorm:"size:1000"`
	UserAgent string           `json:"userAgent" gorm:"size:500"`
	Component string           `json:"component" gorm:"size:200;index"`
	UserID    *uint            `json:"userId" gorm:"index"`
	IPAddress string           `json:"ipAddress" gorm:"size:64"`
	Extra     database.JSONMap `json:"extra"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
}

func (ErrorLog) TableName() string {
	return "client_error_logs"
}

func (e *ErrorLog) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (*ErrorLog, error) {
	var e ErrorLog
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
