package tripbook

import "fmt"

// ItemCategory tags an itinerary item with the kind of activity it schedules.
type ItemCategory string

const (
	ItemFlight        ItemCategory = "flight"
	ItemAttraction    ItemCategory = "attraction"
	ItemFood          ItemCategory = "food"
	ItemTransport     ItemCategory = "transport"
	ItemAccommodation ItemCategory = "accommodation"
	ItemOther         ItemCategory = "other"
)

// ParseItemCategory parses a string into an ItemCategory. The empty string
// maps to ItemOther.
func ParseItemCategory(s string) (ItemCategory, error) {
	switch ItemCategory(s) {
	case ItemFlight, ItemAttraction, ItemFood, ItemTransport, ItemAccommodation, ItemOther:
		return ItemCategory(s), nil
	case "":
		return ItemOther, nil
	default:
		return "", fmt.Errorf("unknown item category: %q", s)
	}
}

// ExpenseCategory buckets an expense for budgeting and charting.
type ExpenseCategory string

const (
	ExpenseFlight        ExpenseCategory = "flight"
	ExpenseTicket        ExpenseCategory = "ticket"
	ExpenseFood          ExpenseCategory = "food"
	ExpenseTransport     ExpenseCategory = "transport"
	ExpenseAccommodation ExpenseCategory = "accommodation"
	ExpenseShopping      ExpenseCategory = "shopping"
	ExpenseOther         ExpenseCategory = "other"
)

// ExpenseCategories lists all categories in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseFlight,
	ExpenseTicket,
	ExpenseFood,
	ExpenseTransport,
	ExpenseAccommodation,
	ExpenseShopping,
	ExpenseOther,
}

// ParseExpenseCategory parses a string into an ExpenseCategory. The empty
// string maps to ExpenseOther.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	switch ExpenseCategory(s) {
	case ExpenseFlight, ExpenseTicket, ExpenseFood, ExpenseTransport,
		ExpenseAccommodation, ExpenseShopping, ExpenseOther:
		return ExpenseCategory(s), nil
	case "":
		return ExpenseOther, nil
	default:
		return "", fmt.Errorf("unknown expense category: %q", s)
	}
}

// ExpenseCategoryOf maps an itinerary item category to the expense category
// used when an expense is derived from the item's cost.
func ExpenseCategoryOf(c ItemCategory) ExpenseCategory {
	switch c {
	case ItemFlight:
		return ExpenseFlight
	case ItemAttraction:
		return ExpenseTicket
	case ItemFood:
		return ExpenseFood
	case ItemTransport:
		return ExpenseTransport
	case ItemAccommodation:
		return ExpenseAccommodation
	default:
		return ExpenseOther
	}
}

// CategoryColor returns the fixed display color for an expense category.
// Colors are a presentation enumeration the charting layer indexes into,
// they carry no meaning for the ledger itself.
func CategoryColor(c ExpenseCategory) string {
	switch c {
	case ExpenseFlight:
		return "#60a5fa"
	case ExpenseTicket:
		return "#f59e0b"
	case ExpenseFood:
		return "#f87171"
	case ExpenseTransport:
		return "#34d399"
	case ExpenseAccommodation:
		return "#a78bfa"
	case ExpenseShopping:
		return "#f472b6"
	default:
		return "#9ca3af"
	}
}

// PaymentMethod records how an expense was paid. Any non-cash method incurs
// the card conversion surcharge.
type PaymentMethod string

const (
	PayCash       PaymentMethod = "cash"
	PayCreditCard PaymentMethod = "credit_card"
	PayMobile     PaymentMethod = "mobile"
)

// ParsePaymentMethod parses a string into a PaymentMethod. The empty string
// maps to PayCash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayCash, PayCreditCard, PayMobile:
		return PaymentMethod(s), nil
	case "":
		return PayCash, nil
	default:
		return "", fmt.Errorf("unknown payment method: %q", s)
	}
}

// Split attributes an expense to a payer bucket.
type Split string

const (
	SplitMe      Split = "me"
	SplitParents Split = "parents"
	SplitShared  Split = "shared"
)

// Splits lists all payer buckets in display order.
var Splits = []Split{SplitMe, SplitParents, SplitShared}

// ParseSplit parses a string into a Split. The empty string maps to SplitMe.
func ParseSplit(s string) (Split, error) {
	switch Split(s) {
	case SplitMe, SplitParents, SplitShared:
		return Split(s), nil
	case "":
		return SplitMe, nil
	default:
		return "", fmt.Errorf("unknown split: %q", s)
	}
}
