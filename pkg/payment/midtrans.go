package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type midtransProcessor struct {
	client snap.Client
}

// NewMidtransProcessor creates Snap transactions. The Snap token is returned as the client secret.
func NewMidtransProcessor(serverKey string, production bool) Processor {
	p := &midtransProcessor{}
	if production {
		p.client.New(serverKey, midtrans.Production)
	} else {
		p.client.New(serverKey, midtrans.Sandbox)
	}
	return p
}

func (p *midtransProcessor) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	// Snap amounts are whole rupiah.
	gross := req.AmountMinor / 100
	if gross <= 0 {
		return nil, ErrInvalidAmount
	}

	orderID := uuid.NewString()
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}

	resp, merr := p.client.CreateTransaction(snapReq)
	if merr != nil {
		return nil, fmt.Errorf("midtrans snap transaction: %s", merr.Message)
	}

	return &Intent{ClientSecret: resp.Token, Reference: orderID}, nil
}
