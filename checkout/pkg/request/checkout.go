package request

// Countries lists the shipping destinations offered at checkout.
var Countries = []string{"US", "CA", "UK", "AU", "DE", "FR", "IT", "ES", "NL", "JP"}

type CheckoutForm struct {
	CustomerName    string `json:"customerName"    validate:"required,min=2,max=100"`
	CustomerEmail   string `json:"customerEmail"   validate:"required,email,max=255"`
	CustomerPhone   string `json:"customerPhone"   validate:"max=50"`
	ShippingAddress string `json:"shippingAddress" validate:"required,min=5,max=500"`
	ShippingCity    string `json:"shippingCity"    validate:"required,min=2,max=100"`
	ShippingState   string `json:"shippingState"   validate:"required,min=2,max=100"`
	ShippingZip     string `json:"shippingZip"     validate:"required,min=3,max=20"`
	ShippingCountry string `json:"shippingCountry" validate:"required,oneof=US CA UK AU DE FR IT ES NL JP"`
	Notes           string `json:"notes"           validate:"max=2000"`
}

var ValidationMessages = map[string]string{
	"customerName":    "Name must be at least 2 characters",
	"customerEmail":   "Invalid email address",
	"customerPhone":   "Phone must be at most 50 characters",
	"shippingAddress": "Please enter a valid address",
	"shippingCity":    "Please enter a city",
	"shippingState":   "Please enter a state/province",
	"shippingZip":     "Please enter a valid postal code",
	"shippingCountry": "Please select a country",
	"notes":           "Notes must be at most 2000 characters",
}
