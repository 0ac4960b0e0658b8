package bank

type ClientInfo struct {
	ClientID    string    `json:"client_id"`
	Name        string    `json:"name"`
	WebhookURL  string    `json:"webhook_url"`
	Permissions string    `json:"permissions"`
	Accounts    []Account `json:"accounts"`
	Jars        []Jar     `json:"jars,omitempty"`
}

type Account struct {
	ID           string   `json:"id"`
	SendID       string   `json:"send_id"`
	Balance      int64    `json:"balance"`
	CreditLimit  int64    `json:"credit_limit"`
	Type         string   `json:"type"`
	CurrencyCode int      `json:"currency_code"`
	CashbackType string   `json:"cashback_type"`
	MaskedPan    []string `json:"masked_pan"`
	IBAN         string   `json:"iban"`
}

// Jar is a goal-based savings pot.
type Jar struct {
	ID           string  `json:"id"`
	SendID       string  `json:"send_id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	CurrencyCode int     `json:"currency_code"`
	Balance      int64   `json:"balance"`
	Goal         *int64  `json:"goal,omitempty"`
}

// StatementItem is a transaction as delivered upstream. Amounts are in
// minor units, Time in Unix seconds.
type StatementItem struct {
	ID              string  `json:"id"`
	Time            int64   `json:"time"`
	Description     string  `json:"description"`
	MCC             int     `json:"mcc"`
	OriginalMCC     int     `json:"original_mcc"`
	Hold            bool    `json:"hold"`
	Amount          int64   `json:"amount"`
	OperationAmount int64   `json:"operation_amount"`
	CurrencyCode    int     `json:"currency_code"`
	CommissionRate  int64   `json:"commission_rate"`
	CashbackAmount  int64   `json:"cashback_amount"`
	Balance         int64   `json:"balance"`
	Comment         *string `json:"comment,omitempty"`
	ReceiptID       *string `json:"receipt_id,omitempty"`
	InvoiceID       *string `json:"invoice_id,omitempty"`
	CounterEdrpou   *string `json:"counter_edrpou,omitempty"`
	CounterIBAN     *string `json:"counter_iban,omitempty"`
	CounterName     *string `json:"counter_name,omitempty"`
}

// Transaction is a StatementItem after transformation: major units, an
// ISO-8601 UTC time, and no identifiers.
type Transaction struct {
	Time            string  `json:"time"`
	Description     string  `json:"description"`
	MCC             int     `json:"mcc"`
	OriginalMCC     int     `json:"original_mcc"`
	Hold            bool    `json:"hold"`
	Amount          float64 `json:"amount"`
	OperationAmount float64 `json:"operation_amount"`
	CurrencyCode    int     `json:"currency_code"`
	CommissionRate  float64 `json:"commission_rate"`
	CashbackAmount  float64 `json:"cashback_amount"`
	Balance         float64 `json:"balance"`
	Comment         *string `json:"comment,omitempty"`
	ReceiptID       *string `json:"receipt_id,omitempty"`
	CounterName     *string `json:"counter_name,omitempty"`
}
