package bank

import "time"

// TimeLayout is ISO-8601 in UTC with a literal Z and no fraction.
const TimeLayout = "2006-01-02T15:04:05Z"

// MinorToMajor converts kopiyka/cents to hryvnia/dollars.
func MinorToMajor(v int64) float64 {
	return float64(v) / 100
}

func FormatTime(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(TimeLayout)
}

// Transform converts amounts to major units, renders the time and drops
// id, invoice_id, counter_edrpou and counter_iban.
func Transform(item StatementItem) Transaction {
	return Transaction{
		Time:            FormatTime(item.Time),
		Description:     item.Description,
		MCC:             item.MCC,
		OriginalMCC:     item.OriginalMCC,
		Hold:            item.Hold,
		Amount:          MinorToMajor(item.Amount),
		OperationAmount: MinorToMajor(item.OperationAmount),
		CurrencyCode:    item.CurrencyCode,
		CommissionRate:  MinorToMajor(item.CommissionRate),
		CashbackAmount:  MinorToMajor(item.CashbackAmount),
		Balance:         MinorToMajor(item.Balance),
		Comment:         item.Comment,
		ReceiptID:       item.ReceiptID,
		CounterName:     item.CounterName,
	}
}

func TransformAll(items []StatementItem) []Transaction {
	txns := make([]Transaction, 0, len(items))
	for _, item := range items {
		txns = append(txns, Transform(item))
	}
	return txns
}
