package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rchoppari/EcomerceProj/internal/models"
	"github.com/rchoppari/EcomerceProj/internal/repositories"
)

// TaxRate is the GST applied to every order subtotal.
const TaxRate = 0.08

const (
	deliveryWindow = 7 * 24 * time.Hour
	publishTimeout = 5 * time.Second
	// OrderPlacedKey is the routing key / message key of order events.
	OrderPlacedKey = "order.placed"
)

// EventPublisher delivers encoded events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, key string, body []byte) error
}

// PaymentDetails is accepted with an order. Only the last four characters of
// the card number are kept; nothing is charged.
type PaymentDetails struct {
	CardNumber     string
	CardHolderName string
	ExpiryDate     string
	CVV            string
}

// OrderService handles business logic related to orders.
type OrderService struct {
	uow       repositories.UnitOfWork
	orderRepo repositories.OrderRepository
	products  repositories.ProductRepository
	carts     *CartService
	publisher EventPublisher
	reprice   bool
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil. When
// reprice is set, unit prices come from the product store instead of the request.
func NewOrderService(
	uow repositories.UnitOfWork,
	orderRepo repositories.OrderRepository,
	products repositories.ProductRepository,
	carts *CartService,
	publisher EventPublisher,
	reprice bool,
) *OrderService {
	return &OrderService{
		uow:       uow,
		orderRepo: orderRepo,
		products:  products,
		carts:     carts,
		publisher: publisher,
		reprice:   reprice,
		now:       time.Now,
	}
}

// PlaceOrder turns a priced cart snapshot into a persisted order, clears the
// user's cart and returns a receipt. The order and the cart clear commit
// together or not at all.
func (s *OrderService) PlaceOrder(userID string, items []models.CartItemView, deliveryAddress string, payment PaymentDetails) (*models.OrderReceipt, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	cardRunes := []rune(payment.CardNumber)
	if len(cardRunes) < 4 {
		return nil, ErrInvalidCardNumber
	}

	if s.reprice {
		var err error
		if items, err = s.priceFromCatalog(items); err != nil {
			return nil, err
		}
	}

	totalPrice := SumItems(items)
	taxAmount := totalPrice * TaxRate
	grandTotal := totalPrice + taxAmount

	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}
	order := &models.Order{
		UserID:          userID,
		Items:           lines,
		TotalPrice:      totalPrice,
		OrderDate:       s.now(),
		DeliveryAddress: deliveryAddress,
		CardLastFour:    string(cardRunes[len(cardRunes)-4:]),
	}

	err := s.uow.Do(func(orders repositories.OrderRepository, carts repositories.CartRepository) error {
		if err := orders.Create(order); err != nil {
			return err
		}
		return s.carts.withRepository(carts).ClearCart(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	expected := order.OrderDate.Add(deliveryWindow)
	receipt := &models.OrderReceipt{
		OrderID:              order.ID,
		Items:                items,
		TotalPrice:           totalPrice,
		TaxAmount:            taxAmount,
		GrandTotal:           grandTotal,
		OrderDate:            order.OrderDate,
		ExpectedDeliveryDate: expected,
		Message:              fmt.Sprintf("Your order has been placed. Will arrive before %s", expected.Format("2006-01-02")),
	}

	s.publishOrderPlaced(order, receipt)
	return receipt, nil
}

// GetUserOrders retrieves the user's orders, newest first.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetTaxRate returns the tax rate for a country. Every country currently
// uses TaxRate.
func (s *OrderService) GetTaxRate(country string) float64 {
	return TaxRate
}

// HandleOrderPlaced processes an order event received from the broker.
func (s *OrderService) HandleOrderPlaced(body []byte) error {
	var event models.OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode order event: %w", err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("order event without order id")
	}
	log.Printf("Order %s placed by user %s: %d item(s), grand total %.2f, expected delivery %s",
		event.OrderID, event.UserID, event.ItemCount, event.GrandTotal, event.ExpectedDeliveryDate.Format("2006-01-02"))
	return nil
}

func (s *OrderService) priceFromCatalog(items []models.CartItemView) ([]models.CartItemView, error) {
	priced := make([]models.CartItemView, len(items))
	for i, item := range items {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			return nil, fmt.Errorf("failed to price product %s: %w", item.ProductID, err)
		}
		priced[i] = item
		priced[i].Price = product.Price
		priced[i].ProductName = product.Name
	}
	return priced, nil
}

// publishOrderPlaced is best effort: the order is already committed.
func (s *OrderService) publishOrderPlaced(order *models.Order, receipt *models.OrderReceipt) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(models.OrderPlacedEvent{
		OrderID:              order.ID,
		UserID:               order.UserID,
		ItemCount:            len(order.Items),
		TotalPrice:           receipt.TotalPrice,
		TaxAmount:            receipt.TaxAmount,
		GrandTotal:           receipt.GrandTotal,
		OrderDate:            receipt.OrderDate,
		ExpectedDeliveryDate: receipt.ExpectedDeliveryDate,
	})
	if err != nil {
		log.Printf("Failed to marshal order event for order %s: %v", order.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, OrderPlacedKey, body); err != nil {
		log.Printf("Warning: Failed to publish order placed event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Successfully published order placed event for order %s", order.ID)
}
