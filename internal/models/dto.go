package models

import "time"

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is a natural-language query against the library
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse carries the assistant's reply and the photos it acted on
type ChatResponse struct {
	Message string   `json:"message"`
	Photos  []*Photo `json:"photos"`
}

// ContactRequest creates a new contact
type ContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ProfileRequest sets the library owner's name
type ProfileRequest struct {
	Name string `json:"name"`
}

// ShareRequest shares explicit photo IDs with a named contact
type ShareRequest struct {
	PhotoIDs    []string `json:"photo_ids"`
	ContactName string   `json:"contact_name"`
}

// ShareResponse describes a completed share
type ShareResponse struct {
	Message         string       `json:"message"`
	ShareRecord     *ShareRecord `json:"share_record"`
	ReceiveRecord   *ShareRecord `json:"receive_record"`
	WhatsAppLink    string       `json:"whatsapp_link"`
	WhatsAppMessage string       `json:"whatsapp_message"`
}

// ShareWithPhotos is a share record hydrated with its photo records,
// used by the history endpoints.
type ShareWithPhotos struct {
	ShareRecord
	Photos []*Photo `json:"photos"`
}

// StatusResponse is a minimal confirmation payload
type StatusResponse struct {
	Status string `json:"status"`
}
