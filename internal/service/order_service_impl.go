package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/internal/dto"
	"github.com/alimikegami/bulknest-server/internal/infrastructure/metrics"
	"github.com/alimikegami/bulknest-server/internal/repository"
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/rs/zerolog/log"
)

// repairTimeout bounds the writes that undo or complete a half-done order
// change after the request context is gone.
const repairTimeout = 10 * time.Second

type OrderServiceImpl struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	publisher   EventPublisher
}

func CreateOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, publisher EventPublisher) OrderService {
	return &OrderServiceImpl{orderRepo: orderRepo, productRepo: productRepo, publisher: publisher}
}

func (s *OrderServiceImpl) GetOrdersByEmail(ctx context.Context, principal, email string) (data []dto.OrderResponse, err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	orders, err := s.orderRepo.GetOrders(ctx, domain.OrderFilter{OrderedFrom: email})
	if err != nil {
		return
	}

	return s.enrich(ctx, orders)
}

func (s *OrderServiceImpl) GetSellerOrders(ctx context.Context, principal, email string) (data []dto.OrderResponse, err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	orders, err := s.orderRepo.GetOrders(ctx, domain.OrderFilter{SellerEmail: email})
	if err != nil {
		return
	}

	return s.enrich(ctx, orders)
}

// enrich joins each order with its product's display fields and total price.
// Orders whose product is gone are returned as stored.
func (s *OrderServiceImpl) enrich(ctx context.Context, orders []domain.Order) (data []dto.OrderResponse, err error) {
	products := map[string]*domain.Product{}

	data = make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp := dto.OrderResponse{Order: order}

		product, seen := products[order.ProductID]
		if !seen {
			p, err := s.productRepo.GetProductByID(ctx, order.ProductID)
			switch {
			case err == nil:
				product = &p
			case errors.Is(err, errs.ErrProductNotFound), errors.Is(err, errs.ErrInvalidID):
			default:
				return nil, err
			}
			products[order.ProductID] = product
		}

		if product != nil {
			total := float64(order.Quantity) * product.Price
			resp.ProductName = product.Name
			resp.ProductBrand = product.Brand
			resp.ProductImage = product.Image
			resp.TotalPrice = &total
		}

		data = append(data, resp)
	}

	return data, nil
}

// PlaceOrder records the order and then takes the stock with a conditional
// decrement. When the decrement finds too little stock left the order is
// removed again and the caller gets ErrStockConflict.
func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, principal, email string, req dto.OrderRequest) (data dto.PlaceOrderResponse, err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	if req.Quantity <= 0 {
		return data, errs.ErrClient
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidID) {
			return data, errs.ErrProductNotFound
		}
		return
	}

	if req.Quantity < product.MinSellQuantity {
		metrics.OrderPlacements.WithLabelValues(metrics.OutcomeBelowMinimum).Inc()
		return data, fmt.Errorf("%w. You need to buy at least %d items.", errs.ErrBelowMinimum, product.MinSellQuantity)
	}

	if req.Quantity > product.MainQuantity {
		metrics.OrderPlacements.WithLabelValues(metrics.OutcomeOutOfStock).Inc()
		return data, errs.ErrOutOfStock
	}

	order := req.ToDomain(email)
	order.Date = time.Now().UTC()
	order.SellerEmail = product.UserEmail

	orderID, err := s.orderRepo.AddOrder(ctx, order)
	if err != nil {
		metrics.OrderPlacements.WithLabelValues(metrics.OutcomeFailed).Inc()
		return data, fmt.Errorf("%w: %v", errs.ErrPlacementFailed, err)
	}

	ok, err := s.productRepo.DecrementStock(ctx, req.ProductID, req.Quantity)
	if err != nil || !ok {
		s.removeOrder(ctx, orderID.Hex())

		if err != nil {
			metrics.OrderPlacements.WithLabelValues(metrics.OutcomeFailed).Inc()
			return data, fmt.Errorf("%w: %v", errs.ErrPlacementFailed, err)
		}

		metrics.OrderPlacements.WithLabelValues(metrics.OutcomeStockConflict).Inc()
		return data, errs.ErrStockConflict
	}

	metrics.OrderPlacements.WithLabelValues(metrics.OutcomePlaced).Inc()

	publish(ctx, s.publisher, dto.EventOrderPlaced, orderID.Hex(), dto.OrderEvent{
		OrderID:     orderID.Hex(),
		ProductID:   order.ProductID,
		OrderedFrom: order.OrderedFrom,
		SellerEmail: order.SellerEmail,
		Quantity:    order.Quantity,
	})

	return dto.PlaceOrderResponse{OrderID: orderID.Hex()}, nil
}

// detach keeps the request values (logger, trace) but not its cancellation.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), repairTimeout)
}

func (s *OrderServiceImpl) removeOrder(ctx context.Context, id string) {
	ctx, cancel := detach(ctx)
	defer cancel()

	if _, err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PlaceOrder").Str("order_id", id).Msg("Failed to remove order after stock update failed")
	}
}

// DeleteOrder removes the order. With deleteType cancel the ordered quantity
// goes back to the product, if the product still exists. Ownership of the
// order itself is not checked beyond the email gate.
func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, principal, email, id, deleteType string) (data dto.DeleteOrderResponse, err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	deletedCount, err := s.orderRepo.DeleteOrder(ctx, id)
	if err != nil {
		return
	}

	data = dto.DeleteOrderResponse{DeletedCount: deletedCount}
	if deletedCount == 0 {
		return data, nil
	}

	event := dto.OrderEvent{
		OrderID:     id,
		ProductID:   order.ProductID,
		OrderedFrom: order.OrderedFrom,
		SellerEmail: order.SellerEmail,
		Quantity:    order.Quantity,
	}

	if deleteType != domain.DeleteTypeCancel {
		metrics.OrderDeletions.WithLabelValues(domain.DeleteTypePlain).Inc()
		publish(ctx, s.publisher, dto.EventOrderDeleted, id, event)
		return data, nil
	}

	// The order is gone at this point, so the restock must run to completion.
	restockCtx, cancel := detach(ctx)
	defer cancel()

	restocked, err := s.productRepo.IncrementStock(restockCtx, order.ProductID, order.Quantity)
	if err != nil && !errors.Is(err, errs.ErrInvalidID) {
		return data, fmt.Errorf("restoring stock for order %s: %w", id, err)
	}

	if restocked {
		metrics.UnitsRestocked.Add(float64(order.Quantity))
	} else {
		log.Ctx(ctx).Info().Str("order_id", id).Str("product_id", order.ProductID).Msg("Product no longer exists, stock not restored")
	}

	metrics.OrderDeletions.WithLabelValues(domain.DeleteTypeCancel).Inc()
	publish(ctx, s.publisher, dto.EventOrderCancelled, id, event)

	return data, nil
}
