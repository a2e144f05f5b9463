package dto

type StatusChangeRequest struct {
	Status string `json:"status"`
}
