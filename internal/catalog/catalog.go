package catalog

import (
	"errors"
	"fmt"

	"github.com/Cheertaboi/cart-pricing-service/internal/models"
)

// ErrInvalidCatalog wraps every validation failure raised while building a catalog.
var ErrInvalidCatalog = errors.New("catalog: invalid definition")

// Catalog is the read-only table of coupons, products and the campaign rule
// for a running service. It is never mutated after Build returns.
type Catalog struct {
	coupons     []models.Coupon
	couponIndex map[string]int
	products    []models.Product
	productByID map[int64]int
	campaign    models.CampaignConfig
}

// Build validates the document and returns the immutable catalog.
func (d Document) Build() (*Catalog, error) {
	c := &Catalog{
		coupons:     make([]models.Coupon, 0, len(d.Coupons)),
		couponIndex: make(map[string]int, len(d.Coupons)),
		products:    make([]models.Product, 0, len(d.Products)),
		productByID: make(map[int64]int, len(d.Products)),
	}

	for _, rec := range d.Coupons {
		coupon, err := rec.Coupon()
		if err != nil {
			return nil, err
		}
		if _, dup := c.couponIndex[coupon.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate coupon code %s", ErrInvalidCatalog, coupon.Code)
		}
		c.couponIndex[coupon.Code] = len(c.coupons)
		c.coupons = append(c.coupons, coupon)
	}

	for _, rec := range d.Products {
		product, err := rec.Product()
		if err != nil {
			return nil, err
		}
		if _, dup := c.productByID[product.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", ErrInvalidCatalog, product.ID)
		}
		c.productByID[product.ID] = len(c.products)
		c.products = append(c.products, product)
	}

	if d.Campaign != nil {
		campaign, err := d.Campaign.Config()
		if err != nil {
			return nil, err
		}
		c.campaign = campaign
	}

	return c, nil
}

// Coupon looks up a coupon by code, ignoring case and surrounding spaces.
func (c *Catalog) Coupon(code string) (models.Coupon, bool) {
	i, ok := c.couponIndex[models.NormalizeCode(code)]
	if !ok {
		return models.Coupon{}, false
	}
	return c.coupons[i], true
}

// Coupons returns a copy of all coupons in catalog order.
func (c *Catalog) Coupons() []models.Coupon {
	out := make([]models.Coupon, len(c.coupons))
	copy(out, c.coupons)
	return out
}

// OnTopCoupons returns the CategoryOnTop coupons in catalog order.
func (c *Catalog) OnTopCoupons() []models.Coupon {
	var out []models.Coupon
	for _, coupon := range c.coupons {
		if _, ok := coupon.Discount.(models.CategoryOnTop); ok {
			out = append(out, coupon)
		}
	}
	return out
}

func (c *Catalog) Product(id int64) (models.Product, bool) {
	i, ok := c.productByID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Campaign() models.CampaignConfig {
	return c.campaign
}

// WithCampaign returns a copy of the catalog using the given campaign rule.
func (c *Catalog) WithCampaign(campaign models.CampaignConfig) *Catalog {
	clone := *c
	clone.campaign = campaign
	return &clone
}

// Document converts the catalog back into its serializable form.
func (c *Catalog) Document() Document {
	doc := Document{
		Products: make([]ProductRecord, 0, len(c.products)),
		Coupons:  make([]CouponRecord, 0, len(c.coupons)),
		Campaign: &CampaignRecord{
			Active:   c.campaign.Active,
			Every:    c.campaign.Every,
			Discount: c.campaign.Discount,
		},
	}
	for _, p := range c.products {
		doc.Products = append(doc.Products, RecordFromProduct(p))
	}
	for _, coupon := range c.coupons {
		doc.Coupons = append(doc.Coupons, RecordFromCoupon(coupon))
	}
	return doc
}
