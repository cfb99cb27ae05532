package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"gorm.io/gorm"
)

// OrderEventPublisher announces committed orders to other systems.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *models.Order) error
}

type OrderService interface {
	PlaceOrder(ctx context.Context, customerID uint) (*models.Order, error)
	ListOrders(ctx context.Context, customerID uint) ([]models.Order, error)
	GetOrder(ctx context.Context, customerID, orderID uint) (*models.Order, error)
}

type orderService struct {
	db        *gorm.DB
	publisher OrderEventPublisher
	log       *logger.Logger
}

func NewOrderService(db *gorm.DB, publisher OrderEventPublisher, log *logger.Logger) OrderService {
	return &orderService{db: db, publisher: publisher, log: log}
}

// PlaceOrder converts the customer's cart into an order in one transaction:
// the cart row is locked, the order and its price-frozen lines are written,
// and the cart is deleted. Any failure leaves the cart untouched.
func (s *orderService) PlaceOrder(ctx context.Context, customerID uint) (*models.Order, error) {
	var order *models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := repository.NewCartRepository(tx)
		cart, err := carts.GetByCustomerForUpdate(customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if cart.IsEmpty() {
			return ErrEmptyCart
		}

		order = models.NewOrderFromCart(cart)
		items := order.Items

		if err := repository.NewOrderRepository(tx).Create(order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repository.NewOrderItemRepository(tx).CreateBatch(items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.Items = items

		if err := carts.Delete(cart.ID); err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	requestID := logger.RequestID(ctx)
	s.log.Info("order_placed", requestID, "order placed",
		slog.Uint64("order_id", uint64(order.ID)),
		slog.Uint64("customer_id", uint64(customerID)),
		slog.String("total_amount", order.TotalAmount.StringFixed(2)),
		slog.Int("items", len(order.Items)),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			s.log.Error("order_event_publish_failed", requestID, "failed to publish order event", err,
				slog.Uint64("order_id", uint64(order.ID)),
			)
		}
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders, err := repository.NewOrderRepository(s.db.WithContext(ctx)).GetByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	order, err := repository.NewOrderRepository(s.db.WithContext(ctx)).GetForCustomer(orderID, customerID)
	if err != nil {
		return nil, lookupError(err, "order")
	}
	return order, nil
}
