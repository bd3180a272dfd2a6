package checkout

// Session is the shopper's checkout state. The HTTP layer loads it from the
// cookie session before each call and writes it back afterwards.
type Session struct {
	CourierID   int64
	AddressID   int64
	PaymentName string
	CartID      string
}

// Defaults are used for session values the shopper has not chosen yet
type Defaults struct {
	CourierID int64
	AddressID int64
	Payment   string
}

// DefaultSelection is courier 1, address 1 and PayPal
var DefaultSelection = Defaults{CourierID: 1, AddressID: 1, Payment: "paypal"}

func (s Session) withDefaults(d Defaults) Session {
	if s.CourierID <= 0 {
		s.CourierID = d.CourierID
	}
	if s.AddressID <= 0 {
		s.AddressID = d.AddressID
	}
	if s.PaymentName == "" {
		s.PaymentName = d.Payment
	}
	return s
}
