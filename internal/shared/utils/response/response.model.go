package response

import "math"

// SuccessResponse is the body of every 2xx response.
type SuccessResponse struct {
	Success bool        `json:"success"`           // always true
	Data    interface{} `json:"data"`              // payload, null when absent
	Message string      `json:"message,omitempty"` // human-readable message
}

// ErrorResponse is the body of every 4xx/5xx response.
type ErrorResponse struct {
	Success    bool   `json:"success"`    // always false
	Error      string `json:"error"`      // stable machine code, e.g. VALIDATION_ERROR
	Message    string `json:"message"`    // human-readable message
	StatusCode int    `json:"statusCode"` // HTTP status actually sent
}

// Pagination describes one page of a list.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// PagedData wraps list results with their pagination.
type PagedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

func NewPagedData(items interface{}, total int64, page, pageSize int) PagedData {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	return PagedData{
		Items: items,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}
