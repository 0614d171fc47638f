package catalog

import "configurator/internal/models"

// Bucket is the coarse availability shown on list and detail pages.
type Bucket string

const (
	BucketStore         Bucket = "store"
	BucketStock         Bucket = "stock"
	BucketOrder         Bucket = "order"
	BucketInStockStores Bucket = "instock_stores"
)

var bucketOrder = []Bucket{BucketStore, BucketStock, BucketOrder, BucketInStockStores}

var stateBuckets = map[models.AvailabilityState]Bucket{
	models.AvailabilityShowroom:      BucketStore,
	models.AvailabilityInStock:       BucketStock,
	models.AvailabilityOnOrder:       BucketOrder,
	models.AvailabilityInStockStores: BucketInStockStores,
}

// ParseBucket accepts a bucket name and reports whether it is known.
func ParseBucket(value string) (Bucket, bool) {
	for _, b := range bucketOrder {
		if string(b) == value {
			return b, true
		}
	}
	return "", false
}

// AvailabilityBuckets maps every availability row of v to its bucket. Each
// bucket appears at most once, in store, stock, order, instock_stores order.
func AvailabilityBuckets(v models.Variant) []Bucket {
	seen := make(map[Bucket]bool, len(bucketOrder))
	for _, a := range v.Availability {
		if b, ok := stateBuckets[a.State]; ok {
			seen[b] = true
		}
	}

	buckets := make([]Bucket, 0, len(seen))
	for _, b := range bucketOrder {
		if seen[b] {
			buckets = append(buckets, b)
		}
	}
	return buckets
}
