package usecase

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawmarket/internal/domain/entity"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

func newCheckoutApp(t *testing.T) *testApp {
	t.Helper()
	app := newTestApp()
	app.seedShop("shop-a", "seller-a", entity.ShopActive)
	app.seedShop("shop-b", "seller-b", entity.ShopApproved)
	app.seedProduct("leash", "shop-a", 10, 10)
	app.seedProduct("bowl", "shop-b", 5, 10)

	ctx := context.Background()
	_, err := app.cart.AddToCart(ctx, "buyer", "leash", 2)
	require.NoError(t, err)
	_, err = app.cart.AddToCart(ctx, "buyer", "bowl", 3)
	require.NoError(t, err)
	return app
}

func TestCheckoutCreatesOrderPerShop(t *testing.T) {
	app := newCheckoutApp(t)
	ctx := context.Background()

	res, err := app.checkout.Checkout(ctx, "buyer")
	require.NoError(t, err)

	assert.Equal(t, 35.0, res.TotalAmount)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, "shop-a", res.Orders[0].Order.ShopID)
	assert.Equal(t, 20.0, res.Orders[0].Order.TotalAmount)
	assert.Equal(t, "shop-b", res.Orders[1].Order.ShopID)
	assert.Equal(t, 15.0, res.Orders[1].Order.TotalAmount)
	for _, o := range res.Orders {
		assert.Equal(t, entity.OrderCompleted, o.Order.Status)
		assert.Equal(t, res.CheckoutID, o.Order.CheckoutID)
		require.Len(t, o.Items, 1)
	}

	assert.Empty(t, app.store.cart)
	assert.Len(t, app.store.orders, 2)
	assert.Len(t, app.store.orderItems, 2)
	assert.Equal(t, entity.CheckoutCompleted, app.store.checkouts[res.CheckoutID].Status)
	assert.Equal(t, 1, app.recorder.checkouts[CheckoutOutcomeCompleted])

	orders, total, err := app.checkout.ListOrders(ctx, "buyer", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, orders, 2)
}

func TestCheckoutLogsSagaContext(t *testing.T) {
	var buf bytes.Buffer
	logger.Configure(&buf, "production")
	t.Cleanup(func() { logger.Configure(io.Discard, "production") })

	app := newCheckoutApp(t)
	res, err := app.checkout.Checkout(context.Background(), "buyer")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"checkout_id":"`+res.CheckoutID+`"`)
	assert.Contains(t, out, `"user_id":"buyer"`)
	assert.Contains(t, out, `"message":"checkout completed"`)
}

func TestCheckoutEmptyCart(t *testing.T) {
	app := newTestApp()

	_, err := app.checkout.Checkout(context.Background(), "buyer")
	assert.True(t, errors.Is(err, errors.CodeEmptyCart))
	assert.Empty(t, app.store.orders)
	assert.Equal(t, 1, app.recorder.checkouts[CheckoutOutcomeRejected])
}

func TestCheckoutResumesAfterFailedStep(t *testing.T) {
	app := newCheckoutApp(t)
	ctx := context.Background()
	app.store.failOnce("cart.delete_many", errors.Transient(nil))

	_, err := app.checkout.Checkout(ctx, "buyer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeTransient))
	assert.Contains(t, err.Error(), "clear_cart")
	assert.Len(t, app.store.orders, 2)
	assert.Len(t, app.store.cart, 2)
	assert.Equal(t, 1, app.recorder.checkouts[CheckoutOutcomeFailed])

	res, err := app.checkout.Checkout(ctx, "buyer")
	require.NoError(t, err)

	assert.Len(t, app.store.orders, 2)
	assert.Len(t, app.store.orderItems, 2)
	assert.Len(t, app.store.checkouts, 1)
	assert.Empty(t, app.store.cart)
	assert.Equal(t, 35.0, res.TotalAmount)
}

func TestCheckoutRevalidatesStock(t *testing.T) {
	app := newCheckoutApp(t)

	p := app.store.products["bowl"]
	p.Stock = 1
	app.store.products["bowl"] = p

	_, err := app.checkout.Checkout(context.Background(), "buyer")
	assert.True(t, errors.Is(err, errors.CodeOutOfStock))
	assert.Empty(t, app.store.orders)
	assert.Len(t, app.store.cart, 2)
}

func TestCheckoutRejectsMissingProduct(t *testing.T) {
	app := newCheckoutApp(t)
	delete(app.store.products, "bowl")

	_, err := app.checkout.Checkout(context.Background(), "buyer")
	assert.True(t, errors.Is(err, errors.CodeInvalidState))
	assert.Empty(t, app.store.orders)
}

func TestCheckoutLockHeld(t *testing.T) {
	app := newCheckoutApp(t)
	ctx := context.Background()

	release, err := app.checkout.locker.Acquire(ctx, "checkout:buyer", time.Minute)
	require.NoError(t, err)

	_, err = app.checkout.Checkout(ctx, "buyer")
	assert.True(t, errors.Is(err, errors.CodeConflict))
	assert.Empty(t, app.store.orders)

	require.NoError(t, release(ctx))
	_, err = app.checkout.Checkout(ctx, "buyer")
	require.NoError(t, err)
}

func TestRepeatPurchaseGetsNewOrders(t *testing.T) {
	app := newCheckoutApp(t)
	ctx := context.Background()

	first, err := app.checkout.Checkout(ctx, "buyer")
	require.NoError(t, err)

	_, err = app.cart.AddToCart(ctx, "buyer", "leash", 2)
	require.NoError(t, err)
	second, err := app.checkout.Checkout(ctx, "buyer")
	require.NoError(t, err)

	assert.NotEqual(t, first.CheckoutID, second.CheckoutID)
	assert.Len(t, app.store.orders, 3)
}

func TestGetOrderVisibility(t *testing.T) {
	app := newCheckoutApp(t)
	ctx := context.Background()

	res, err := app.checkout.Checkout(ctx, "buyer")
	require.NoError(t, err)
	orderID := res.Orders[0].Order.ID

	got, err := app.checkout.GetOrder(ctx, "buyer", orderID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = app.checkout.GetOrder(ctx, "seller-a", orderID)
	require.NoError(t, err)

	_, err = app.checkout.GetOrder(ctx, "seller-b", orderID)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}
