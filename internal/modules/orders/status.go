package orders

type Status string

const (
	StatusCreated    Status = "created"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Forward-only lifecycle; there is no edge back to an earlier status.
var validNext = map[Status]map[Status]bool{
	StatusCreated:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusPaid: true, StatusCancelled: true},
	StatusPaid:       {StatusShipped: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
