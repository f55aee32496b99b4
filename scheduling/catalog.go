package scheduling

import (
	"fmt"
	"sort"
	"strings"
)

// BookedService is the snapshot of one service line on a booking. The
// name, duration and price are copied at booking time and do not follow
// later edits to the service catalog.
type BookedService struct {
	ServiceID       string `json:"serviceId"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Price           int64  `json:"price"`
}

// Booking is the plain view of a reservation the scheduling core works
// with. Customer and staff names are snapshots, same as the service lines.
type Booking struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Start         string          `json:"startTime"`
	End           string          `json:"endTime"`
	Services      []BookedService `json:"services"`
	StaffID       string          `json:"staffId"`
	StaffName     string          `json:"staffName"`
	Status        Status          `json:"status"`
	Memo          string          `json:"memo,omitempty"`
	Amount        *int64          `json:"amount,omitempty"` // overrides the service total when set
}

// TotalDuration sums the service durations in minutes.
func (b Booking) TotalDuration() int {
	total := 0
	for _, s := range b.Services {
		total += s.DurationMinutes
	}
	return total
}

// TotalAmount returns the explicit amount override when present,
// otherwise the sum of the snapshot prices.
func (b Booking) TotalAmount() int64 {
	if b.Amount != nil {
		return *b.Amount
	}
	var total int64
	for _, s := range b.Services {
		total += s.Price
	}
	return total
}

// Filter is a conjunctive predicate set for Catalog queries. Zero values
// match everything.
type Filter struct {
	StaffID   string
	ServiceID string
	Status    Status
	FreeText  string
}

// SortField selects the Catalog sort key.
type SortField string

const (
	SortByDateTime     SortField = "dateTime" // composite date + start time
	SortByCustomerName SortField = "customerName"
	SortByStaffName    SortField = "staffName"
	SortByStatus       SortField = "status"
)

// ParseSortField validates a caller-supplied sort field name.
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case SortByDateTime, SortByCustomerName, SortByStaffName, SortByStatus:
		return SortField(s), nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Catalog is the in-memory query surface over a set of bookings. It is
// the single in-process source of truth for conflict checks; mutation
// happens through the Lifecycle and the catalog is reloaded afterwards.
type Catalog struct {
	bookings []Booking
}

// NewCatalog wraps a booking set. The slice is not copied; callers hand
// ownership over and reload through Replace after mutations.
func NewCatalog(bookings []Booking) *Catalog {
	return &Catalog{bookings: bookings}
}

// Replace swaps the backing set, typically after a store round-trip.
func (c *Catalog) Replace(bookings []Booking) {
	c.bookings = bookings
}

// All returns a copy of every booking in the catalog.
func (c *Catalog) All() []Booking {
	out := make([]Booking, len(c.bookings))
	copy(out, c.bookings)
	return out
}

// Get returns the booking with the given id.
func (c *Catalog) Get(id string) (Booking, bool) {
	for _, b := range c.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return Booking{}, false
}

// List returns bookings whose date falls in [dateStart, dateEnd], both
// inclusive. Dates compare lexicographically in YYYY-MM-DD form.
func (c *Catalog) List(dateStart, dateEnd string) []Booking {
	var out []Booking
	for _, b := range c.bookings {
		if b.Date >= dateStart && b.Date <= dateEnd {
			out = append(out, b)
		}
	}
	return out
}

// Select applies a conjunctive filter. Free text matches case-insensitively
// against the customer name, customer phone, staff name and every booked
// service name.
func (c *Catalog) Select(f Filter) []Booking {
	var out []Booking
	for _, b := range c.bookings {
		if matches(b, f) {
			out = append(out, b)
		}
	}
	return out
}

func matches(b Booking, f Filter) bool {
	if f.StaffID != "" && b.StaffID != f.StaffID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.ServiceID != "" {
		found := false
		for _, s := range b.Services {
			if s.ServiceID == f.ServiceID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.FreeText != "" {
		needle := strings.ToLower(f.FreeText)
		if !containsFold(b.CustomerName, needle) &&
			!containsFold(b.CustomerPhone, needle) &&
			!containsFold(b.StaffName, needle) &&
			!anyServiceFold(b.Services, needle) {
			return false
		}
	}
	return true
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func anyServiceFold(services []BookedService, lowerNeedle string) bool {
	for _, s := range services {
		if containsFold(s.Name, lowerNeedle) {
			return true
		}
	}
	return false
}

// Sort orders bookings by the given field, stably, in place. String
// comparison is ordinal; locale-aware collation is a known limitation.
func Sort(bookings []Booking, field SortField, ascending bool) {
	key := func(b Booking) string {
		switch field {
		case SortByCustomerName:
			return b.CustomerName
		case SortByStaffName:
			return b.StaffName
		case SortByStatus:
			return string(b.Status)
		default:
			return b.Date + " " + b.Start
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		if ascending {
			return key(bookings[i]) < key(bookings[j])
		}
		return key(bookings[i]) > key(bookings[j])
	})
}

// ConflictsFor returns every non-cancelled booking for a staff member on
// a date, ordered by start time. Cancelled bookings release their slots.
func (c *Catalog) ConflictsFor(staffID, date string) []Booking {
	var out []Booking
	for _, b := range c.bookings {
		if b.StaffID != staffID || b.Date != date {
			continue
		}
		if b.Status == StatusCancelled {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
