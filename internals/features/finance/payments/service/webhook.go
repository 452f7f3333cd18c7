package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"

	"university_backend/internals/features/finance/payments/model"
)

// MidtransNotification: payload HTTP notification Midtrans (field yang dipakai saja).
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// Signature = sha512(order_id + status_code + gross_amount + server_key), hex.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func VerifySignature(n MidtransNotification, serverKey string) bool {
	if serverKey == "" || n.SignatureKey == "" {
		return false
	}
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	got := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// MapTransactionStatus memetakan transaction_status Midtrans ke status internal.
// ok=false untuk status yang tidak diproses (refund, authorize, ...).
func MapTransactionStatus(transactionStatus, fraudStatus string) (model.PaymentStatus, bool) {
	switch strings.ToLower(transactionStatus) {
	case "capture":
		if strings.EqualFold(fraudStatus, "challenge") {
			return model.PaymentStatusPending, true
		}
		return model.PaymentStatusPaid, true
	case "settlement":
		return model.PaymentStatusPaid, true
	case "pending":
		return model.PaymentStatusPending, true
	case "deny", "failure":
		return model.PaymentStatusFailed, true
	case "cancel":
		return model.PaymentStatusCanceled, true
	case "expire":
		return model.PaymentStatusExpired, true
	}
	return "", false
}

// grossMatches: gross_amount Midtrans berbentuk "150000.00".
func grossMatches(gross string, amount int64) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(gross), 64)
	if err != nil {
		return false
	}
	return int64(f) == amount && f == float64(int64(f))
}
