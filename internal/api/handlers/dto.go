package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
	"github.com/Cheertaboi/cart-pricing-service/internal/models"
	"github.com/Cheertaboi/cart-pricing-service/internal/service"
)

// --- Request / Response DTOs ---

type CreateSessionRequest struct {
	UserID string `json:"user_id"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type ApplyCouponRequest struct {
	Code string `json:"code"`
}

type ApplyPointsRequest struct {
	Points *int64 `json:"points"`
}

type ProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

type CouponResponse struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

type CartLineResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Amount   string          `json:"amount"`
}

type SlotsResponse struct {
	Primary       *CouponResponse `json:"primary"`
	CategoryOnTop *CouponResponse `json:"category_on_top"`
}

type PointsResponse struct {
	Available int64 `json:"available"`
	Used      int64 `json:"used"`
}

type QuoteResponse struct {
	Subtotal         string `json:"subtotal"`
	PrimaryDiscount  string `json:"primary_discount"`
	OnTopDiscount    string `json:"on_top_discount"`
	PointsDiscount   string `json:"points_discount"`
	CampaignDiscount string `json:"campaign_discount"`
	Total            string `json:"total"`
}

type SessionResponse struct {
	ID                    string             `json:"id"`
	Cart                  []CartLineResponse `json:"cart"`
	Coupons               SlotsResponse      `json:"coupons"`
	Points                PointsResponse     `json:"points"`
	Quote                 QuoteResponse      `json:"quote"`
	AvailableOnTopCoupons []CouponResponse   `json:"available_on_top_coupons"`
	CanUseCategoryCoupon  bool               `json:"can_use_category_coupon"`
	CanUsePoints          bool               `json:"can_use_points"`
}

type ApplyCouponResponse struct {
	Applied     bool            `json:"applied"`
	Slot        string          `json:"slot,omitempty"`
	PointsReset bool            `json:"points_reset"`
	Reason      string          `json:"reason,omitempty"`
	Session     SessionResponse `json:"session"`
}

type ApplyPointsResponse struct {
	Applied bool            `json:"applied"`
	Reason  string          `json:"reason,omitempty"`
	Session SessionResponse `json:"session"`
}

// --- Mapping ---

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func productResponse(p models.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: money(p.Price), Category: string(p.Category)}
}

func couponResponse(c models.Coupon) CouponResponse {
	rec := catalog.RecordFromCoupon(c)
	resp := CouponResponse{Code: c.Code, Type: rec.Type, Category: rec.Category, Description: c.Description}
	switch d := c.Discount.(type) {
	case models.Percentage:
		resp.Amount = d.Value.String()
	case models.Fixed:
		resp.Amount = money(d.Value)
	case models.CategoryOnTop:
		resp.Amount = d.Value.String()
	}
	return resp
}

func couponResponses(coupons []models.Coupon) []CouponResponse {
	out := make([]CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, couponResponse(c))
	}
	return out
}

func optionalCoupon(c *models.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}
	resp := couponResponse(*c)
	return &resp
}

func sessionResponse(v service.View) SessionResponse {
	lines := make([]CartLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, CartLineResponse{
			Product:  productResponse(l.Product),
			Quantity: l.Quantity,
			Amount:   money(l.Amount()),
		})
	}
	return SessionResponse{
		ID:   v.ID,
		Cart: lines,
		Coupons: SlotsResponse{
			Primary:       optionalCoupon(v.Slots.Primary),
			CategoryOnTop: optionalCoupon(v.Slots.CategoryOnTop),
		},
		Points: PointsResponse{Available: v.Points.Available, Used: v.Points.Used},
		Quote: QuoteResponse{
			Subtotal:         money(v.Quote.Subtotal),
			PrimaryDiscount:  money(v.Quote.PrimaryDiscount),
			OnTopDiscount:    money(v.Quote.OnTopDiscount),
			PointsDiscount:   money(v.Quote.PointsDiscount),
			CampaignDiscount: money(v.Quote.CampaignDiscount),
			Total:            money(v.Quote.Total),
		},
		AvailableOnTopCoupons: couponResponses(v.AvailableOnTopCoupons),
		CanUseCategoryCoupon:  v.CanUseCategoryCoupon,
		CanUsePoints:          v.CanUsePoints,
	}
}
