// Package seed populates an empty catalog with demo products.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/repository"
)

type seedProduct struct {
	name        string
	description string
	priceCents  int64
	category    string
	featured    bool
}

var catalog = []seedProduct{
	{"Radiance Vitamin C Serum", "Brightening serum with 15% vitamin C and hyaluronic acid.", 10305, "skincare", true},
	{"Hydra Dew Moisturizer", "Lightweight gel cream for all-day hydration.", 4250, "skincare", true},
	{"Gentle Foam Cleanser", "Sulfate-free daily cleanser for sensitive skin.", 2800, "skincare", false},
	{"Overnight Repair Mask", "Rich sleeping mask with ceramides and peptides.", 6900, "skincare", false},
	{"Velvet Matte Lipstick", "Long-wear matte lipstick in classic red.", 5000, "makeup", true},
	{"Silk Finish Foundation", "Buildable medium coverage with a natural finish.", 7600, "makeup", true},
	{"Precision Liquid Eyeliner", "Smudge-proof felt-tip liner in deep black.", 3200, "makeup", false},
	{"Blush Duo Palette", "Two complementary shades with a satin finish.", 4400, "makeup", false},
	{"Argan Repair Hair Oil", "Nourishing oil for dry ends and frizz control.", 5500, "haircare", true},
	{"Volume Lift Shampoo", "Weightless cleansing for fine hair.", 2400, "haircare", false},
	{"Midnight Bloom Eau de Parfum", "Jasmine and sandalwood with a warm amber base.", 15800, "fragrance", true},
	{"Citrus Grove Body Mist", "Light everyday mist with bergamot and neroli.", 3600, "fragrance", false},
}

// Run inserts the demo catalog when the products collection is empty. It is
// a no-op on any subsequent start.
func Run(ctx context.Context, products repository.ProductRepository, logger *slog.Logger) error {
	count, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, p := range catalog {
		product := &domain.Product{
			ID:          uuid.New().String(),
			Name:        p.name,
			Description: p.description,
			PriceCents:  p.priceCents,
			Category:    p.category,
			Featured:    p.featured,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := products.Create(ctx, product); err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
	}

	logger.InfoContext(ctx, "catalog seeded",
		slog.Int("products", len(catalog)),
	)

	return nil
}
