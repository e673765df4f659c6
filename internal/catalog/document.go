package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/cart-pricing-service/internal/models"
)

// Coupon kinds as they appear in catalog files, database rows and cache snapshots.
const (
	KindPercentage = "percentage"
	KindFixed      = "fixed"
	KindOnTop      = "onTop"
)

// Document is the flat, serializable form of a catalog.
type Document struct {
	Products []ProductRecord `yaml:"products" json:"products"`
	Coupons  []CouponRecord  `yaml:"coupons" json:"coupons"`
	Campaign *CampaignRecord `yaml:"campaign,omitempty" json:"campaign,omitempty"`
}

// Money fields decode straight into decimal.Decimal from YAML scalars, JSON
// and NUMERIC columns.
type ProductRecord struct {
	ID       int64           `yaml:"id" json:"id"`
	Name     string          `yaml:"name" json:"name"`
	Price    decimal.Decimal `yaml:"price" json:"price"`
	Category string          `yaml:"category" json:"category"`
}

type CouponRecord struct {
	Code        string          `yaml:"code" json:"code"`
	Type        string          `yaml:"type" json:"type"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Category    string          `yaml:"category,omitempty" json:"category,omitempty"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

type CampaignRecord struct {
	Active   bool            `yaml:"active" json:"active"`
	Every    decimal.Decimal `yaml:"every" json:"every"`
	Discount decimal.Decimal `yaml:"discount" json:"discount"`
}

var hundred = decimal.NewFromInt(100)

// Coupon converts the record into its tagged discount form.
func (r CouponRecord) Coupon() (models.Coupon, error) {
	code := models.NormalizeCode(r.Code)
	if code == "" {
		return models.Coupon{}, fmt.Errorf("%w: coupon code is required", ErrInvalidCatalog)
	}
	if r.Amount.IsNegative() {
		return models.Coupon{}, fmt.Errorf("%w: coupon %s has negative amount", ErrInvalidCatalog, code)
	}
	value := r.Amount

	var discount models.Discount
	switch strings.TrimSpace(r.Type) {
	case KindPercentage:
		if r.Amount.GreaterThan(hundred) {
			return models.Coupon{}, fmt.Errorf("%w: coupon %s percentage above 100", ErrInvalidCatalog, code)
		}
		discount = models.Percentage{Value: value}
	case KindFixed:
		discount = models.Fixed{Value: value}
	case KindOnTop:
		if r.Amount.GreaterThan(hundred) {
			return models.Coupon{}, fmt.Errorf("%w: coupon %s percentage above 100", ErrInvalidCatalog, code)
		}
		category, err := models.ParseCategory(r.Category)
		if err != nil {
			return models.Coupon{}, fmt.Errorf("%w: coupon %s: %v", ErrInvalidCatalog, code, err)
		}
		discount = models.CategoryOnTop{Value: value, Category: category}
	default:
		return models.Coupon{}, fmt.Errorf("%w: coupon %s has unknown type %q", ErrInvalidCatalog, code, r.Type)
	}

	return models.Coupon{Code: code, Description: r.Description, Discount: discount}, nil
}

// RecordFromCoupon is the inverse of CouponRecord.Coupon.
func RecordFromCoupon(c models.Coupon) CouponRecord {
	rec := CouponRecord{Code: c.Code, Description: c.Description}
	switch d := c.Discount.(type) {
	case models.Percentage:
		rec.Type = KindPercentage
		rec.Amount = d.Value
	case models.Fixed:
		rec.Type = KindFixed
		rec.Amount = d.Value
	case models.CategoryOnTop:
		rec.Type = KindOnTop
		rec.Amount = d.Value
		rec.Category = string(d.Category)
	}
	return rec
}

func (r ProductRecord) Product() (models.Product, error) {
	if r.Price.IsNegative() {
		return models.Product{}, fmt.Errorf("%w: product %d has negative price", ErrInvalidCatalog, r.ID)
	}
	category, err := models.ParseCategory(r.Category)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: product %d: %v", ErrInvalidCatalog, r.ID, err)
	}
	return models.Product{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Category: category,
	}, nil
}

func RecordFromProduct(p models.Product) ProductRecord {
	return ProductRecord{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: string(p.Category),
	}
}

func (r CampaignRecord) Config() (models.CampaignConfig, error) {
	campaign := models.CampaignConfig{
		Active:   r.Active,
		Every:    r.Every,
		Discount: r.Discount,
	}
	if err := ValidateCampaign(campaign); err != nil {
		return models.CampaignConfig{}, err
	}
	return campaign, nil
}

// ValidateCampaign checks a campaign rule, including one assembled outside a
// catalog document. An active rule needs a positive threshold.
func ValidateCampaign(c models.CampaignConfig) error {
	if c.Active && !c.Every.IsPositive() {
		return fmt.Errorf("%w: campaign threshold must be positive", ErrInvalidCatalog)
	}
	if c.Discount.IsNegative() {
		return fmt.Errorf("%w: campaign discount must not be negative", ErrInvalidCatalog)
	}
	return nil
}
