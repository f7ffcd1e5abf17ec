package models

// EmailPayload is the queued unit of work for the offline email worker.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
