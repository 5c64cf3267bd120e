package services

import (
	"fmt"

	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// PaymentService wraps the Midtrans Snap client. It is inert unless a server
// key is configured; checkout still stores orders without it.
type PaymentService struct {
	client  snap.Client
	appURL  string
	enabled bool
}

func NewPaymentService(serverKey, appURL, appEnv string) *PaymentService {
	s := &PaymentService{appURL: appURL}
	if serverKey == "" {
		return s
	}

	env := midtrans.Sandbox
	if appEnv == "production" {
		env = midtrans.Production
	}
	s.client.New(serverKey, env)
	s.enabled = true
	return s
}

func (s *PaymentService) Enabled() bool {
	return s.enabled
}

func (s *PaymentService) CreateSnapTransaction(order *models.Order) (redirectURL, token string, err error) {
	var items []midtrans.ItemDetails
	for _, item := range order.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    item.ProductID,
			Name:  item.Name,
			Price: item.Price.IntPart(),
			Qty:   int32(item.Quantity),
		})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.ID,
			GrossAmt: order.Total.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: order.CustomerName,
			Email: order.Email,
			Phone: order.Phone,
		},
		Items: &items,
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/checkout/finish?order_id=%s", s.appURL, order.ID),
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	resp, snapErr := s.client.CreateTransaction(req)
	if snapErr != nil {
		return "", "", fmt.Errorf("failed to create Snap transaction: %w", snapErr)
	}
	return resp.RedirectURL, resp.Token, nil
}
