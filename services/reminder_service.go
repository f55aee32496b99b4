package services

import (
	"os"
	"strings"
	"time"

	"salonflow-backend/models"
	"salonflow-backend/scheduling"
	"salonflow-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderService sends appointment and birthday reminders over Twilio.
// Appointment reminders go out the day before the visit; each reservation
// is reminded at most once.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	log    *zap.Logger
}

func NewReminderService(db *gorm.DB, log *zap.Logger) *ReminderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: os.Getenv("TWILIO_ACCOUNT_SID"),
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		}),
		log: log,
	}
}

// StartScheduler runs the daily reminder pass at 09:00 server time.
func (s *ReminderService) StartScheduler() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		return nil, err
	}
	c.Start()
	s.log.Info("reminder scheduler started")
	return c, nil
}

// SendDailyReminders processes every salon in turn.
func (s *ReminderService) SendDailyReminders() {
	s.log.Info("daily reminder processing started")

	var salons []models.Salon
	if err := s.db.Find(&salons).Error; err != nil {
		s.log.Error("failed to fetch salons", zap.Error(err))
		return
	}

	for _, salon := range salons {
		s.ProcessSalonReminders(salon)
	}

	s.log.Info("daily reminder processing completed")
}

// ProcessSalonReminders sends the salon's enabled reminder kinds.
func (s *ReminderService) ProcessSalonReminders(salon models.Salon) {
	if salon.AppointmentReminders {
		s.sendAppointmentReminders(salon)
	}
	if salon.BirthdayReminders {
		s.sendBirthdayReminders(salon)
	}
}

// sendAppointmentReminders messages customers with a scheduled visit
// tomorrow. Reservations that already have a sent log entry are skipped.
func (s *ReminderService) sendAppointmentReminders(salon models.Salon) {
	template, ok := s.activeTemplate(salon.ID, models.ReminderAppointment)
	if !ok {
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var reservations []models.Reservation
	err := s.db.
		Where("salon_id = ? AND date = ? AND status = ?",
			salon.ID, tomorrow, string(scheduling.StatusScheduled)).
		Where("id NOT IN (?)", s.db.Model(&models.ReminderLog{}).
			Select("reservation_id").
			Where("salon_id = ? AND type = ? AND status = 'sent' AND reservation_id IS NOT NULL",
				salon.ID, models.ReminderAppointment)).
		Find(&reservations).Error
	if err != nil {
		s.log.Error("failed to fetch next-day reservations",
			zap.String("salonId", salon.ID.String()), zap.Error(err))
		return
	}

	for _, r := range reservations {
		message := strings.NewReplacer(
			"[CustomerName]", r.CustomerName,
			"[Time]", r.StartTime,
			"[StaffName]", r.StaffName,
		).Replace(template.Message)

		reservationID := r.ID
		s.deliver(salon, models.ReminderLog{
			SalonID:       salon.ID,
			CustomerID:    r.CustomerID,
			ReservationID: &reservationID,
			TemplateID:    template.ID,
			Type:          models.ReminderAppointment,
			Message:       message,
		}, r.CustomerPhone)
	}
}

// sendBirthdayReminders messages customers whose birthday is today,
// year part ignored. One message per customer per day.
func (s *ReminderService) sendBirthdayReminders(salon models.Salon) {
	template, ok := s.activeTemplate(salon.ID, models.ReminderBirthday)
	if !ok {
		return
	}

	now := time.Now()
	var customers []models.Customer
	err := s.db.Raw(`
        SELECT * FROM customers
        WHERE salon_id = ? AND is_active = true AND deleted_at IS NULL
        AND birthday IS NOT NULL
        AND EXTRACT(MONTH FROM birthday) = ?
        AND EXTRACT(DAY FROM birthday) = ?
    `, salon.ID, int(now.Month()), now.Day()).Scan(&customers).Error
	if err != nil {
		s.log.Error("failed to fetch birthday customers",
			zap.String("salonId", salon.ID.String()), zap.Error(err))
		return
	}

	today := utils.BeginningOfDay(now)
	for _, customer := range customers {
		var sentToday int64
		s.db.Model(&models.ReminderLog{}).
			Where("salon_id = ? AND customer_id = ? AND type = ? AND status = 'sent' AND sent_at >= ?",
				salon.ID, customer.ID, models.ReminderBirthday, today).
			Count(&sentToday)
		if sentToday > 0 {
			continue
		}

		message := strings.ReplaceAll(template.Message, "[CustomerName]", customer.Name)
		s.deliver(salon, models.ReminderLog{
			SalonID:    salon.ID,
			CustomerID: customer.ID,
			TemplateID: template.ID,
			Type:       models.ReminderBirthday,
			Message:    message,
		}, customer.Phone)
	}
}

func (s *ReminderService) activeTemplate(salonID uuid.UUID, kind string) (models.ReminderTemplate, bool) {
	var template models.ReminderTemplate
	err := s.db.Where("salon_id = ? AND type = ? AND is_active = true", salonID, kind).
		First(&template).Error
	if err != nil {
		s.log.Debug("no active reminder template",
			zap.String("salonId", salonID.String()), zap.String("type", kind))
		return template, false
	}
	return template, true
}

// deliver sends one message and records the outcome. WhatsApp is used
// for E.164 numbers when the salon has it enabled, SMS otherwise.
func (s *ReminderService) deliver(salon models.Salon, entry models.ReminderLog, phone string) {
	entry.Channel = "sms"
	to := phone
	if salon.WhatsAppNotifications && strings.HasPrefix(phone, "+") {
		entry.Channel = "whatsapp"
		to = "whatsapp:" + phone
	} else if !salon.SMSNotifications {
		// Neither channel enabled for this number.
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(entry.Message)
	if entry.Channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	entry.Status = "sent"
	if err != nil {
		s.log.Warn("failed to send reminder",
			zap.String("to", phone), zap.Error(err))
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else if resp.Sid != nil {
		s.log.Info("reminder sent",
			zap.String("to", phone), zap.String("sid", *resp.Sid))
	}
	entry.SentAt = time.Now()

	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Error("failed to log reminder",
			zap.String("customerId", entry.CustomerID.String()), zap.Error(err))
	}
}
