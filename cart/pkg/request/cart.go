package request

type AddCartItem struct {
	ProductID          string            `json:"productId"          validate:"required,max=64"`
	Size               string            `json:"size"               validate:"max=50"`
	Quantity           int               `json:"quantity"           validate:"gte=0,lte=99"`
	CustomMeasurements map[string]string `json:"customMeasurements" validate:"omitempty,max=10,dive,keys,required,max=30,endkeys,max=30"`
}

type UpdateCartItem struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Size      string `json:"size"      validate:"max=50"`
	Quantity  int    `json:"quantity"  validate:"lte=99"`
}

type RemoveCartItem struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Size      string `json:"size"      validate:"max=50"`
}

var ValidationMessages = map[string]string{
	"productId.required": "productId is required",
	"quantity.lte":       "quantity must be at most 99",
	"quantity.gte":       "quantity must not be negative",
	"customMeasurements": "customMeasurements must be at most 10 short name/value pairs",
}
