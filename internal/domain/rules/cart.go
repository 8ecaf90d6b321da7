package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"pawmarket/internal/domain/entity"
	"pawmarket/pkg/errors"
)

// ValidateQuantity enforces 1 <= qty <= stock.
func ValidateQuantity(product *entity.Product, qty int) error {
	if qty < 1 {
		return errors.InvalidArgument("quantity must be at least 1", nil)
	}
	if qty > product.Stock {
		return errors.OutOfStock(product.Name, qty, product.Stock)
	}
	return nil
}

// NextCartQuantity returns the quantity after adding add units to a row holding current.
func NextCartQuantity(product *entity.Product, current, add int) (int, error) {
	if add < 1 {
		return current, errors.InvalidArgument("quantity must be at least 1", nil)
	}
	next := current + add
	if err := ValidateQuantity(product, next); err != nil {
		return current, err
	}
	return next, nil
}

// CheckPurchasable rejects products that are not on sale.
func CheckPurchasable(product *entity.Product, shop *entity.Shop) error {
	if product.Status != entity.ProductActive {
		return errors.InvalidState(fmt.Sprintf("product %q is not on sale", product.Name))
	}
	if shop == nil || !shop.Status.Operational() {
		return errors.InvalidState(fmt.Sprintf("shop of product %q is not open", product.Name))
	}
	return nil
}

func LineTotal(price float64, qty int) float64 {
	return price * float64(qty)
}

// BuildCartView joins lines and computes totals. Lines keep their input order.
func BuildCartView(lines []entity.CartLine) *entity.CartView {
	view := &entity.CartView{Lines: make([]entity.CartLine, 0, len(lines))}
	for _, l := range lines {
		l.Total = LineTotal(l.Product.Price, l.Item.Quantity)
		view.Total += l.Total
		view.Count += l.Item.Quantity
		view.Lines = append(view.Lines, l)
	}
	return view
}

// ShopGroup is the part of a cart that becomes one order.
type ShopGroup struct {
	ShopID string
	Lines  []entity.CartLine
	Total  float64
}

// GroupByShop splits cart lines into one group per shop, ordered by shop id.
func GroupByShop(lines []entity.CartLine) []ShopGroup {
	byShop := make(map[string]*ShopGroup)
	for _, l := range lines {
		g, ok := byShop[l.Product.ShopID]
		if !ok {
			g = &ShopGroup{ShopID: l.Product.ShopID}
			byShop[l.Product.ShopID] = g
		}
		g.Lines = append(g.Lines, l)
		g.Total += LineTotal(l.Product.Price, l.Item.Quantity)
	}

	groups := make([]ShopGroup, 0, len(byShop))
	for _, g := range byShop {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ShopID < groups[j].ShopID })
	return groups
}

// CheckoutKey fingerprints a cart. The same rows with the same quantities always
// produce the same key, so re-running a half-finished checkout converges. Row
// creation time is part of the key: rows are deleted on checkout, so buying the
// same basket again later yields a fresh key.
func CheckoutKey(userID string, items []*entity.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s:%d:%d", it.ID, it.Quantity, it.CreatedAt.UnixNano()))
	}
	sort.Strings(parts)

	h := sha256.New()
	h.Write([]byte(userID))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}

func OrderID(checkoutID, shopID string) string {
	return checkoutID + "-" + shopID
}

func OrderItemID(orderID, cartItemID string) string {
	return orderID + "-" + cartItemID
}
