package services

import "fmt"

// UpstreamError переносит ответ внешнего сервиса наружу: хендлеры отдают его
// как 502 с текстом провайдера.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Message)
}
