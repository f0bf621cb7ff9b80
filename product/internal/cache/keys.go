package cache

import "fmt"

const (
	KeyPrefix      = "catalog:"
	KeyProducts    = KeyPrefix + "products"
	KeyCollections = KeyPrefix + "collections"
)

func KeyProductsByCollection(slug string) string {
	return fmt.Sprintf("%s:collection:%s", KeyProducts, slug)
}

func KeyFeaturedProducts(limit int32) string {
	return fmt.Sprintf("%s:featured:%d", KeyProducts, limit)
}

func KeyProduct(id string) string {
	return KeyPrefix + "product:" + id
}

func KeyCollection(slug string) string {
	return KeyPrefix + "collection:" + slug
}
