package enums

// PaymentMode describes how a buyer settles an order. Payment happens
// off-system; the mode only records the expected channel.
type PaymentMode string

const (
	PaymentModeUPI PaymentMode = "upi"
)

// String implements fmt.Stringer.
func (p PaymentMode) String() string {
	return string(p)
}
