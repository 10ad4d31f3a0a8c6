package dto

// Envelope is the body of every API response.
type Envelope struct {
	Code int    `json:"code"`
	Data any    `json:"data"`
	Msg  string `json:"msg"`
}

// Empty is serialized as {} for responses that carry no data.
type Empty struct{}

// PaginationQuery: page/size query parameters shared by list endpoints
type PaginationQuery struct {
	Page int `form:"page,default=1" binding:"min=1"`
	Size int `form:"size,default=10" binding:"min=1,max=100"`
}
