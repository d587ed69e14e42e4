// services/overdue_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"rentacar-backend/models"
	"rentacar-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// OverdueService sends SMS reminders for rentals past their end date
// that still carry a balance. It only reads the persisted Balance; the
// reconciler is the only writer.
type OverdueService struct {
	db     *gorm.DB
	client *twilio.RestClient
	cron   *cron.Cron
}

func NewOverdueService(db *gorm.DB) *OverdueService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &OverdueService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		cron: cron.New(),
	}
}

func (s *OverdueService) StartScheduler() {
	// Run every day at 9 AM
	s.cron.AddFunc("0 9 * * *", s.SendOverdueReminders)

	s.cron.Start()
	log.Println("Overdue reminder scheduler started")
}

func (s *OverdueService) Stop() {
	s.cron.Stop()
}

func (s *OverdueService) SendOverdueReminders() {
	log.Println("Starting overdue reminder processing...")

	rentals, err := s.getOverdueRentals()
	if err != nil {
		log.Printf("Failed to fetch overdue rentals: %v", err)
		return
	}

	for _, rental := range rentals {
		s.sendReminder(rental)
	}

	log.Println("Overdue reminder processing completed")
}

// getOverdueRentals returns non-deleted rentals past their end date with
// an outstanding balance. Soft-deleted rentals are excluded by gorm's
// default scope.
func (s *OverdueService) getOverdueRentals() ([]models.Rental, error) {
	today := utils.BeginningOfDay(time.Now())

	var rentals []models.Rental
	err := s.db.
		Where("balance > 0 AND end_date < ? AND status IN ?", today,
			[]models.RentalStatus{models.RentalActive, models.RentalReturned, models.RentalCompleted}).
		Find(&rentals).Error
	return rentals, err
}

func (s *OverdueService) sendReminder(rental models.Rental) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", rental.CustomerID).Error; err != nil {
		log.Printf("Rental %s: customer lookup failed: %v", rental.ID, err)
		return
	}
	if !customer.IsActive || customer.Phone == "" {
		return
	}

	// One reminder per rental per day
	var alreadySent int64
	s.db.Model(&models.NotificationLog{}).
		Where("rental_id = ? AND type = ? AND sent_at >= ?", rental.ID, "overdue", utils.BeginningOfDay(time.Now())).
		Count(&alreadySent)
	if alreadySent > 0 {
		return
	}

	message := fmt.Sprintf("Sayın %s, aracınızın kira bakiyesi %s olarak görünmektedir. Ödemenizi rica ederiz.",
		customer.Name, utils.FormatDisplay(rental.Balance))

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
	}

	notificationLog := models.NotificationLog{
		RentalID:     rental.ID,
		CustomerID:   customer.ID,
		Type:         "overdue",
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      "sms",
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&notificationLog).Error; err != nil {
		log.Printf("Failed to log reminder for rental %s: %v", rental.ID, err)
	}
}
