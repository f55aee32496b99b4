package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/scheduling"
	"salonflow-backend/services"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationController handles the booking flow: availability-checked
// creates and edits, list queries, status changes and deletions.
type ReservationController struct {
	svc *services.BookingService
}

func NewReservationController(svc *services.BookingService) *ReservationController {
	return &ReservationController{svc: svc}
}

// CreateReservationInput defines the expected JSON structure for booking
type CreateReservationInput struct {
	CustomerID string   `json:"customerId" binding:"required"`
	StaffID    string   `json:"staffId" binding:"required"`
	Date       string   `json:"date" binding:"required"`      // YYYY-MM-DD
	StartTime  string   `json:"startTime" binding:"required"` // HH:MM, grid-aligned
	ServiceIDs []string `json:"serviceIds" binding:"required,min=1"`
	Memo       string   `json:"memo"`
	Amount     *int64   `json:"amount"`
}

// UpdateReservationInput defines the expected JSON structure for editing
type UpdateReservationInput struct {
	CustomerID *string   `json:"customerId"`
	StaffID    *string   `json:"staffId"`
	Date       *string   `json:"date"`
	StartTime  *string   `json:"startTime"`
	ServiceIDs *[]string `json:"serviceIds"`
	Memo       *string   `json:"memo"`
	Amount     *int64    `json:"amount"`
}

// StatusInput carries a status change request.
type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

// BulkStatusInput carries a bulk status change request.
type BulkStatusInput struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Status string   `json:"status" binding:"required"`
}

// BulkDeleteInput carries a bulk delete request.
type BulkDeleteInput struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// Create books a new reservation after the availability check passes.
func (rc *ReservationController) Create(c *gin.Context) {
	salonUUID, userUUID, ok := salonAndUser(c)
	if !ok {
		return
	}

	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !rc.svc.Grid().IsSlot(input.StartTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Start time is not a valid booking slot")
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	staffUUID, err := uuid.Parse(input.StaffID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, customerUUID).
		First(&customer).Error; err != nil {
		respondEntityLookup(c, err, "Customer")
		return
	}

	var staff models.Staff
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, staffUUID).
		First(&staff).Error; err != nil {
		respondEntityLookup(c, err, "Staff member")
		return
	}
	if !staff.Bookable() {
		utils.RespondWithError(c, http.StatusConflict, "Staff member is not available for booking")
		return
	}

	items, err := rc.snapshotServices(salonUUID, input.ServiceIDs)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservation := models.Reservation{
		SalonID:         salonUUID,
		CreatedByUserID: userUUID,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		Date:            input.Date,
		StartTime:       input.StartTime,
		StaffID:         staff.ID,
		StaffName:       staff.Name,
		Status:          string(scheduling.StatusScheduled),
		Memo:            input.Memo,
		Amount:          input.Amount,
		Items:           items,
	}
	if err := rc.deriveEndTime(&reservation); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := rc.svc.CreateReservation(&reservation); err != nil {
		utils.RespondWithSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation.ToBooking())
}

// Update edits a reservation, re-validating availability whenever the
// staff, date, time or services change. The reservation's own occupancy
// never counts against it.
func (rc *ReservationController) Update(c *gin.Context) {
	salonUUID, _, ok := salonAndUser(c)
	if !ok {
		return
	}

	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var input UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reservation models.Reservation
	err = config.DB.Preload("Items").
		Where("salon_id = ? AND id = ?", salonUUID, reservationUUID).
		First(&reservation).Error
	if err != nil {
		respondEntityLookup(c, err, "Reservation")
		return
	}

	if input.CustomerID != nil {
		customerUUID, err := uuid.Parse(*input.CustomerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		var customer models.Customer
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, customerUUID).
			First(&customer).Error; err != nil {
			respondEntityLookup(c, err, "Customer")
			return
		}
		reservation.CustomerID = customer.ID
		reservation.CustomerName = customer.Name
		reservation.CustomerPhone = customer.Phone
	}
	if input.StaffID != nil {
		staffUUID, err := uuid.Parse(*input.StaffID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
			return
		}
		var staff models.Staff
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, staffUUID).
			First(&staff).Error; err != nil {
			respondEntityLookup(c, err, "Staff member")
			return
		}
		if !staff.Bookable() {
			utils.RespondWithError(c, http.StatusConflict, "Staff member is not available for booking")
			return
		}
		reservation.StaffID = staff.ID
		reservation.StaffName = staff.Name
	}
	if input.Date != nil {
		reservation.Date = *input.Date
	}
	if input.StartTime != nil {
		if !rc.svc.Grid().IsSlot(*input.StartTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Start time is not a valid booking slot")
			return
		}
		reservation.StartTime = *input.StartTime
	}
	if input.ServiceIDs != nil {
		items, err := rc.snapshotServices(salonUUID, *input.ServiceIDs)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		reservation.Items = items
	}
	if input.Memo != nil {
		reservation.Memo = *input.Memo
	}
	if input.Amount != nil {
		reservation.Amount = input.Amount
	}

	if err := rc.deriveEndTime(&reservation); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := rc.svc.UpdateReservation(&reservation); err != nil {
		utils.RespondWithSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation.ToBooking())
}

// List returns reservations in a date range with optional filters and
// sorting, as plain booking data.
func (rc *ReservationController) List(c *gin.Context) {
	salonUUID, _, ok := salonAndUser(c)
	if !ok {
		return
	}

	dateStart := c.Query("start")
	dateEnd := c.Query("end")
	if dateStart == "" || dateEnd == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "start and end dates are required")
		return
	}
	if _, err := scheduling.ParseDate(dateStart); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := scheduling.ParseDate(dateEnd); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var reservations []models.Reservation
	err := config.DB.Preload("Items").
		Where("salon_id = ? AND date >= ? AND date <= ?", salonUUID, dateStart, dateEnd).
		Find(&reservations).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	catalog := scheduling.NewCatalog(models.ToBookings(reservations))
	filter := scheduling.Filter{
		StaffID:   c.Query("staffId"),
		ServiceID: c.Query("serviceId"),
		FreeText:  c.Query("search"),
	}
	if status := c.Query("status"); status != "" {
		parsed, err := scheduling.ParseStatus(status)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.Status = parsed
	}
	bookings := catalog.Select(filter)

	sortField, err := scheduling.ParseSortField(c.DefaultQuery("sortBy", string(scheduling.SortByDateTime)))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	ascending := c.DefaultQuery("sortDir", "asc") != "desc"
	scheduling.Sort(bookings, sortField, ascending)

	c.JSON(http.StatusOK, gin.H{"reservations": bookings, "total": len(bookings)})
}

// Get returns one reservation.
func (rc *ReservationController) Get(c *gin.Context) {
	salonUUID, _, ok := salonAndUser(c)
	if !ok {
		return
	}

	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var reservation models.Reservation
	err = config.DB.Preload("Items").
		Where("salon_id = ? AND id = ?", salonUUID, reservationUUID).
		First(&reservation).Error
	if err != nil {
		respondEntityLookup(c, err, "Reservation")
		return
	}

	c.JSON(http.StatusOK, reservation.ToBooking())
}

// Availability returns the bookable start slots for a staff member on a
// date. Duration comes either from explicit minutes or from summing the
// given services; excludeId frees an existing reservation's own slot
// while it is being rescheduled.
func (rc *ReservationController) Availability(c *gin.Context) {
	salonUUID, _, ok := salonAndUser(c)
	if !ok {
		return
	}

	staffUUID, err := uuid.Parse(c.Query("staffId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing staffId")
		return
	}
	date := c.Query("date")
	if _, err := scheduling.ParseDate(date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "duration must be a positive number of minutes")
			return
		}
	} else if ids, exists := c.GetQueryArray("serviceIds"); exists && len(ids) > 0 {
		items, err := rc.snapshotServices(salonUUID, ids)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		for _, item := range items {
			duration += item.Duration
		}
	} else {
		duration = rc.svc.Grid().SlotMinutes
	}

	starts, err := rc.svc.BookableStarts(salonUUID, staffUUID, date, duration, c.Query("excludeId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staffId":  staffUUID,
		"date":     date,
		"duration": duration,
		"slots":    starts,
	})
}

// SetStatus changes one reservation's status. Transitions are unguarded
// by default; pass strict=true to enforce the transition table.
func (rc *ReservationController) SetStatus(c *gin.Context) {
	salonUUID, _, ok := salonAndUser(c)
	if !ok {
		return
	}

	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	status, err := scheduling.ParseStatus(input.Status)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	lifecycle := rc.svc.Lifecycle(salonUUID)
	lifecycle.Strict = c.Query("strict") == "true"

	if err := lifecycle.SetStatus(c.Param("id"), status); err != nil {
		utils.RespondWithSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": status})
}

// BulkSetStatus applies a status to every id, continuing past failures.
func (rc *ReservationController) BulkSetStatus(c *gin.Context) {
	salonUUID, _, ok := salonAndUser(c)
	if !ok {
		return
	}

	var input BulkStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	status, err := scheduling.ParseStatus(input.Status)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	result := rc.svc.Lifecycle(salonUUID).BulkSetStatus(input.IDs, status)
	c.JSON(http.StatusOK, result)
}

// Delete removes a reservation; an optional reason is logged only.
func (rc *ReservationController) Delete(c *gin.Context) {
	salonUUID, _, ok := salonAndUser(c)
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	// The body is optional on delete.
	_ = c.ShouldBindJSON(&input)
	if input.Reason == "" {
		input.Reason = c.Query("reason")
	}

	if err := rc.svc.Lifecycle(salonUUID).Delete(c.Param("id"), input.Reason); err != nil {
		utils.RespondWithSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}

// BulkDelete removes every id, continuing past failures.
func (rc *ReservationController) BulkDelete(c *gin.Context) {
	salonUUID, _, ok := salonAndUser(c)
	if !ok {
		return
	}

	var input BulkDeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := rc.svc.Lifecycle(salonUUID).BulkDelete(input.IDs)
	c.JSON(http.StatusOK, result)
}

// snapshotServices loads the requested services and freezes their name,
// duration and price into reservation line items, keeping request order.
func (rc *ReservationController) snapshotServices(salonID uuid.UUID, serviceIDs []string) ([]models.ReservationItem, error) {
	if len(serviceIDs) == 0 {
		return nil, errors.New("at least one service is required")
	}

	parsed := make([]uuid.UUID, 0, len(serviceIDs))
	for _, raw := range serviceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("invalid service ID format")
		}
		parsed = append(parsed, id)
	}

	var dbServices []models.Service
	err := config.DB.Where("salon_id = ? AND id IN ? AND is_active = true", salonID, parsed).
		Find(&dbServices).Error
	if err != nil {
		return nil, errors.New("failed to load services")
	}
	byID := make(map[uuid.UUID]models.Service, len(dbServices))
	for _, s := range dbServices {
		byID[s.ID] = s
	}

	items := make([]models.ReservationItem, 0, len(parsed))
	for i, id := range parsed {
		service, ok := byID[id]
		if !ok {
			return nil, errors.New("service not found: " + id.String())
		}
		items = append(items, models.ReservationItem{
			ServiceID:   service.ID,
			ServiceName: service.Name,
			Duration:    service.Duration,
			Price:       service.BasePrice,
			Position:    i,
		})
	}
	return items, nil
}

// deriveEndTime recomputes EndTime from the start and the summed service
// durations. A reservation with no services cannot be scheduled.
func (rc *ReservationController) deriveEndTime(r *models.Reservation) error {
	if len(r.Items) == 0 {
		return errors.New("at least one service is required")
	}
	total := 0
	for _, item := range r.Items {
		total += item.Duration
	}
	end, err := scheduling.AddMinutes(r.StartTime, total)
	if err != nil {
		return err
	}
	r.EndTime = end
	return nil
}

// salonFromContext pulls the authenticated salon id from the gin
// context. It writes the error response itself; callers just bail on
// false.
func salonFromContext(c *gin.Context) (uuid.UUID, bool) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return uuid.Nil, false
	}
	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return uuid.Nil, false
	}
	return salonUUID, true
}

// salonAndUser pulls the authenticated salon and user ids from context.
func salonAndUser(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return salonUUID, userUUID, true
}

// respondEntityLookup maps a gorm lookup failure to 404 or 500.
func respondEntityLookup(c *gin.Context, err error, entity string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, entity+" not found")
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
}
