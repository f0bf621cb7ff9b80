// Package projection turns joined catalog rows into storefront products.
package projection

import (
	"sort"
	"time"

	"github.com/Alturino/nayarn/internal/repository"
	"github.com/Alturino/nayarn/product/pkg/response"
)

const (
	Uncategorized = "uncategorized"
	NewWindow     = 30 * 24 * time.Hour
)

// ProjectProduct derives images, primary image, category and the new flag.
// raw is left untouched.
func ProjectProduct(raw repository.Product, now time.Time) response.DisplayProduct {
	images := make([]repository.ProductImage, len(raw.Images))
	copy(images, raw.Images)
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].DisplayOrder < images[j].DisplayOrder
	})

	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.ImageURL)
	}

	primary := ""
	if len(images) > 0 {
		primary = images[0].ImageURL
	}
	for _, img := range images {
		if img.IsPrimary {
			primary = img.ImageURL
			break
		}
	}

	category := Uncategorized
	if raw.Collection != nil && raw.Collection.Slug != "" {
		category = raw.Collection.Slug
	}

	sizes := make([]string, len(raw.Sizes))
	copy(sizes, raw.Sizes)

	return response.DisplayProduct{
		ID:           raw.ID,
		Name:         raw.Name,
		Description:  raw.Description,
		Price:        raw.Price,
		Images:       urls,
		PrimaryImage: primary,
		Category:     category,
		IsNew:        raw.CreatedAt.After(now.Add(-NewWindow)),
		Sizes:        sizes,
		IsFeatured:   raw.IsFeatured,
		CreatedAt:    raw.CreatedAt,
	}
}

func ProjectList(raws []repository.Product, now time.Time) []response.DisplayProduct {
	products := make([]response.DisplayProduct, 0, len(raws))
	for _, raw := range raws {
		products = append(products, ProjectProduct(raw, now))
	}
	return products
}
