package service

import (
	"errors"
	"unicode/utf8"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"university_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Gateway
========================================================= */

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Gateway membuat transaksi di payment gateway; mengembalikan token & redirect URL.
type Gateway interface {
	CreateTransaction(p model.Payment, cust CustomerInput) (token, redirectURL string, err error)
}

type SnapGateway struct {
	client snap.Client
}

// NewSnapGateway: useProduction=true untuk Production, false untuk Sandbox.
func NewSnapGateway(serverKey string, useProduction bool) *SnapGateway {
	g := &SnapGateway{}
	if useProduction {
		g.client.New(serverKey, midtrans.Production)
	} else {
		g.client.New(serverKey, midtrans.Sandbox)
	}
	return g
}

func (g *SnapGateway) CreateTransaction(p model.Payment, cust CustomerInput) (string, string, error) {
	req, err := BuildSnapRequest(p, cust)
	if err != nil {
		return "", "", err
	}
	resp, merr := g.client.CreateTransaction(req)
	if merr != nil {
		return "", "", merr
	}
	return resp.Token, resp.RedirectURL, nil
}

func BuildSnapRequest(p model.Payment, cust CustomerInput) (*snap.Request, error) {
	if p.PaymentAmountIDR <= 0 {
		return nil, errors.New("invalid payment_amount_idr")
	}
	if p.PaymentExternalID == "" {
		return nil, errors.New("payment_external_id is required (used as OrderID)")
	}

	name := "Tuition Payment"
	if p.PaymentDescription != nil && *p.PaymentDescription != "" {
		name = truncate(*p.PaymentDescription, 50)
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentExternalID,
			GrossAmt: p.PaymentAmountIDR,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Items: &[]midtrans.ItemDetails{{
			ID:       p.PaymentExternalID,
			Price:    p.PaymentAmountIDR,
			Qty:      1,
			Name:     name,
			Category: "Tuition",
		}},
		CustomField1: p.PaymentStudentID.String(),
	}
	if cust.FirstName != "" || cust.Email != "" {
		req.CustomerDetail = &midtrans.CustomerDetails{
			FName: cust.FirstName,
			LName: cust.LastName,
			Email: cust.Email,
			Phone: cust.Phone,
		}
	}
	return req, nil
}

// truncate memotong di batas rune, bukan byte.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
