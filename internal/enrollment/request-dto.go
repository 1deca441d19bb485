package enrollment

import "kinderadmin/internal/shared/utils/request"

type CreateApplicationRequest struct {
	StudentName       string `json:"studentName" binding:"required,max=64"`
	Gender            string `json:"gender" binding:"omitempty,oneof=male female"`
	BirthDate         string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	ParentName        string `json:"parentName" binding:"max=64"`
	ContactPhone      string `json:"contactPhone" binding:"required,min=6,max=32"`
	ApplicationSource string `json:"applicationSource" binding:"max=32"`
	ChannelID         *uint  `json:"channelId"`
	DesiredClass      string `json:"desiredClass" binding:"max=64"`
}

type UpdateStatusRequest struct {
	Status      Status `json:"status" binding:"required"`
	ReviewNotes string `json:"reviewNotes" binding:"max=500"`
}

type ApplicationListQuery struct {
	request.PageQuery
	Status  string `form:"status"`
	Keyword string `form:"keyword"`
}
