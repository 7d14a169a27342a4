package v4

import (
	"time"

	bt_uuid "github.com/esp046-cyber/budget-tracker/internal/uuid"
)

type URIID struct {
	ID bt_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2022-07"` // Year and month in YYYY-MM format
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // Number of records in this response
	Offset uint  `json:"offset" example:"50"` // Offset of the first record returned
	Limit  int   `json:"limit" example:"25"`  // Maximum number of records requested
	Total  int64 `json:"total" example:"827"` // Total number of records matching the query
}
