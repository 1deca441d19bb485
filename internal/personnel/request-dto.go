package personnel

import "kinderadmin/internal/shared/utils/request"

type CreatePersonRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	Gender    string `json:"gender" binding:"omitempty,oneof=male female"`
	Phone     string `json:"phone" binding:"max=32"`
	ClassName string `json:"className" binding:"max=64"`
	Number    string `json:"number" binding:"max=32"`
	Status    Status `json:"status" binding:"omitempty,oneof=active inactive suspended graduated"`
	BirthDate string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Remark    string `json:"remark" binding:"max=500"`
}

type UpdatePersonRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=64"`
	Gender    *string `json:"gender" binding:"omitempty,oneof=male female"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
	ClassName *string `json:"className" binding:"omitempty,max=64"`
	Number    *string `json:"number" binding:"omitempty,max=32"`
	Status    *Status `json:"status" binding:"omitempty,oneof=active inactive suspended graduated"`
	Remark    *string `json:"remark" binding:"omitempty,max=500"`
}

type PersonListQuery struct {
	request.PageQuery
	Keyword   string `form:"keyword"`
	Status    string `form:"status"`
	ClassName string `form:"className"`
}

type DistributionQuery struct {
	Kind string `form:"kind"`
}
