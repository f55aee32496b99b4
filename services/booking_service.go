package services

import (
	"errors"
	"time"

	"salonflow-backend/models"
	"salonflow-backend/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookingService wires the scheduling core to the database: it loads
// working-hours policies and existing reservations into the core's types,
// and persists availability-checked bookings inside a transaction so the
// conflict check and the insert see the same data.
type BookingService struct {
	db   *gorm.DB
	grid scheduling.Grid
	log  *zap.Logger
}

func NewBookingService(db *gorm.DB, log *zap.Logger) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{db: db, grid: scheduling.DefaultGrid(), log: log}
}

// Grid exposes the salon's slot grid.
func (s *BookingService) Grid() scheduling.Grid {
	return s.grid
}

// PolicyBook loads every staff member's weekly hours for a salon. Staff
// with no stored rows fall back to the default week; stored rows replace
// the week wholesale for that staff member.
func (s *BookingService) PolicyBook(salonID uuid.UUID) (*scheduling.PolicyBook, error) {
	return s.policyBook(s.db, salonID)
}

func (s *BookingService) policyBook(tx *gorm.DB, salonID uuid.UUID) (*scheduling.PolicyBook, error) {
	var rows []models.StaffWorkingHours
	err := tx.
		Joins("JOIN staff ON staff.id = staff_working_hours.staff_id").
		Where("staff.salon_id = ?", salonID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	book := scheduling.NewPolicyBook(scheduling.DefaultWeek())
	weeks := make(map[uuid.UUID]scheduling.WeekPolicy)
	for _, row := range rows {
		week, ok := weeks[row.StaffID]
		if !ok {
			week = make(scheduling.WeekPolicy)
			weeks[row.StaffID] = week
		}
		week[time.Weekday(row.Weekday)] = row.DayHours()
	}
	for staffID, week := range weeks {
		book.SetStaffWeek(staffID.String(), week)
	}
	return book, nil
}

func (s *BookingService) resolver(tx *gorm.DB, salonID, staffID uuid.UUID, date string) (*scheduling.Resolver, error) {
	book, err := s.policyBook(tx, salonID)
	if err != nil {
		return nil, err
	}
	var reservations []models.Reservation
	err = tx.Preload("Items").
		Where("salon_id = ? AND staff_id = ? AND date = ?", salonID, staffID, date).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	catalog := scheduling.NewCatalog(models.ToBookings(reservations))
	return scheduling.NewResolver(s.grid, book, catalog), nil
}

// BookableStarts returns the pickable start slots for a staff member on a
// date. excludeID keeps an existing reservation's own occupancy out of
// the conflict set while it is being rescheduled.
func (s *BookingService) BookableStarts(salonID, staffID uuid.UUID, date string, durationMinutes int, excludeID string) ([]string, error) {
	resolver, err := s.resolver(s.db, salonID, staffID, date)
	if err != nil {
		return nil, err
	}
	return resolver.BookableStarts(staffID.String(), date, durationMinutes, excludeID), nil
}

// CreateReservation checks availability and inserts the reservation in
// one transaction. The reservation must arrive fully snapshotted.
func (s *BookingService) CreateReservation(r *models.Reservation) error {
	duration := reservationDuration(r)
	return s.db.Transaction(func(tx *gorm.DB) error {
		resolver, err := s.resolver(tx, r.SalonID, r.StaffID, r.Date)
		if err != nil {
			return err
		}
		if err := resolver.Check(r.StaffID.String(), r.Date, r.StartTime, duration, ""); err != nil {
			return err
		}
		return tx.Create(r).Error
	})
}

// UpdateReservation re-validates and persists an edited reservation. The
// reservation's own prior occupancy is excluded from the conflict check,
// so keeping the same slot always succeeds. Service lines are replaced.
func (s *BookingService) UpdateReservation(r *models.Reservation) error {
	duration := reservationDuration(r)
	return s.db.Transaction(func(tx *gorm.DB) error {
		resolver, err := s.resolver(tx, r.SalonID, r.StaffID, r.Date)
		if err != nil {
			return err
		}
		if err := resolver.Check(r.StaffID.String(), r.Date, r.StartTime, duration, r.ID.String()); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"customer_id":    r.CustomerID,
			"customer_name":  r.CustomerName,
			"customer_phone": r.CustomerPhone,
			"date":           r.Date,
			"start_time":     r.StartTime,
			"end_time":       r.EndTime,
			"staff_id":       r.StaffID,
			"staff_name":     r.StaffName,
			"memo":           r.Memo,
			"amount":         r.Amount,
		}
		result := tx.Model(&models.Reservation{}).
			Where("id = ? AND salon_id = ?", r.ID, r.SalonID).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return scheduling.ErrNotFound
		}

		if err := tx.Where("reservation_id = ?", r.ID).Delete(&models.ReservationItem{}).Error; err != nil {
			return err
		}
		for i := range r.Items {
			r.Items[i].ID = uuid.Nil
			r.Items[i].ReservationID = r.ID
		}
		return tx.Create(&r.Items).Error
	})
}

// Lifecycle returns the status/delete operations scoped to one salon.
func (s *BookingService) Lifecycle(salonID uuid.UUID) *scheduling.Lifecycle {
	return scheduling.NewLifecycle(&reservationStore{db: s.db, salonID: salonID}, s.log)
}

func reservationDuration(r *models.Reservation) int {
	total := 0
	for _, item := range r.Items {
		total += item.Duration
	}
	return total
}

// reservationStore adapts gorm to the scheduling core's BookingStore.
// All queries are salon-scoped; a miss in another salon is a not-found,
// never a cross-tenant touch.
type reservationStore struct {
	db      *gorm.DB
	salonID uuid.UUID
}

func (s *reservationStore) GetStatus(id string) (scheduling.Status, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return "", scheduling.ErrNotFound
	}
	var r models.Reservation
	err = s.db.Select("id", "status").
		Where("id = ? AND salon_id = ?", rid, s.salonID).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", scheduling.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return scheduling.Status(r.Status), nil
}

// SetStatus changes the status and keeps the customer's visit counters
// in step. The prior status is read inside the same transaction so that
// re-applying completed, or correcting a completed reservation back and
// forth, moves the counters exactly once per real visit.
func (s *reservationStore) SetStatus(id string, status scheduling.Status) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return scheduling.ErrNotFound
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		err := tx.Preload("Items").
			Where("id = ? AND salon_id = ?", rid, s.salonID).
			First(&r).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return scheduling.ErrNotFound
		}
		if err != nil {
			return err
		}
		prior := scheduling.Status(r.Status)

		if err := tx.Model(&models.Reservation{}).
			Where("id = ? AND salon_id = ?", rid, s.salonID).
			Update("status", string(status)).Error; err != nil {
			return err
		}
		return s.adjustVisitStats(tx, &r, visitDelta(prior, status))
	})
}

// visitDelta is the customer stat adjustment for a status change: +1 on
// a genuine transition into completed, -1 when a completed reservation
// is corrected away, 0 otherwise. Setting the current status again is
// always a no-op.
func visitDelta(prior, next scheduling.Status) int {
	if prior == next {
		return 0
	}
	if next == scheduling.StatusCompleted {
		return 1
	}
	if prior == scheduling.StatusCompleted {
		return -1
	}
	return 0
}

// adjustVisitStats moves the customer's visit counters by delta visits.
// The last-visit timestamp only advances on completion; corrections keep
// the previous value rather than guessing an older one.
func (s *reservationStore) adjustVisitStats(tx *gorm.DB, r *models.Reservation, delta int) error {
	if delta == 0 {
		return nil
	}
	amount := r.ToBooking().TotalAmount()
	updates := map[string]interface{}{
		"total_visits": gorm.Expr("total_visits + ?", delta),
		"total_spent":  gorm.Expr("total_spent + ?", int64(delta)*amount),
	}
	if delta > 0 {
		now := time.Now()
		updates["last_visit"] = &now
	}
	return tx.Model(&models.Customer{}).
		Where("id = ?", r.CustomerID).
		Updates(updates).Error
}

func (s *reservationStore) Delete(id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return scheduling.ErrNotFound
	}
	result := s.db.Where("id = ? AND salon_id = ?", rid, s.salonID).
		Delete(&models.Reservation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return scheduling.ErrNotFound
	}
	return nil
}
