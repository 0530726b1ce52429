package mercadopago

import "time"

// PreapprovalRequest creates a recurring subscription authorization.
type PreapprovalRequest struct {
	Reason            string         `json:"reason"`
	ExternalReference string         `json:"external_reference"`
	PayerEmail        string         `json:"payer_email"`
	BackURL           string         `json:"back_url"`
	AutoRecurring     *AutoRecurring `json:"auto_recurring,omitempty"`
}

type AutoRecurring struct {
	Frequency         int     `json:"frequency"`
	FrequencyType     string  `json:"frequency_type"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
}

// Preapproval is the subscription resource returned by Mercado Pago.
type Preapproval struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"` // pending | authorized | paused | cancelled
	Reason            string     `json:"reason"`
	ExternalReference string     `json:"external_reference"`
	PayerEmail        string     `json:"payer_email"`
	InitPoint         string     `json:"init_point"`
	DateCreated       *time.Time `json:"date_created,omitempty"`
}

// Payment is the subset of a Mercado Pago payment resource the webhook
// handler needs to classify the event.
type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"` // approved | pending | in_process | rejected | ...
	StatusDetail      string  `json:"status_detail"`
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}
