// Package dto defines data transfer objects for the tasks feature's HTTP transport layer.
package dto

// CreateTaskReq represents the request body for the POST /api/task endpoint.
type CreateTaskReq struct {
	Title  string `json:"title" binding:"required,max=128"`
	Body   string `json:"body"`
	UserID string `json:"user_id" binding:"required"`
}
