package log

const (
	KeyAppName        = "app"
	KeyRequestID      = "requestId"
	KeyProcess        = "process"
	KeyTag            = "tag"
	KeyTraceID        = "traceId"
	KeySpanID         = "spanId"
	KeyRequest        = "request"
	KeyRequestBody    = "requestBody"
	KeyRequestHeader  = "requestHeader"
	KeyRequestHost    = "host"
	KeyRequestIp      = "requesterIP"
	KeyRequestMethod  = "requestMethod"
	KeyRequestURI     = "requestURI"
	KeyRequestURL     = "requestURL"
	KeyConfig         = "config"
	KeyDbURL          = "dbURL"
	KeyCacheKey       = "cacheKey"
	KeySessionID      = "sessionId"
	KeyProductID      = "productId"
	KeyProduct        = "product"
	KeyProducts       = "products"
	KeyCollectionID   = "collectionId"
	KeyCollectionSlug = "collectionSlug"
	KeyCollections    = "collections"
	KeyImageID        = "imageId"
	KeySize           = "size"
	KeyQuantity       = "quantity"
	KeyCartLines      = "cartLines"
	KeyOrderID        = "orderId"
	KeyOrder          = "order"
	KeyOrders         = "orders"
	KeyOrderItems     = "orderItems"
	KeyOrderStatus    = "orderStatus"
	KeySubtotal       = "subtotal"
	KeyShippingCost   = "shippingCost"
	KeyTotal          = "total"
	KeyEmail          = "email"
	KeyNotification   = "notification"
	KeyMailDriver     = "mailDriver"
)
