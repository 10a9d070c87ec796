package services

import (
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// Job kinds understood by the notification workers. Each kind maps to a
// durable queue of the same name.
const (
	JobLowStock         = "low_stock_notification"
	JobDailySalesReport = "daily_sales_report"
)

// JobQueue submits asynchronous jobs to the external notification/mail
// subsystem. pkg/rabbitmq implements it; tests substitute a recorder.
type JobQueue interface {
	Enqueue(kind string, payload interface{}) error
}

// LowStockPayload is the body of a low-stock job.
type LowStockPayload struct {
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentStock int       `json:"current_stock"`
	Recipient    string    `json:"recipient"`
	Timestamp    time.Time `json:"timestamp"`
}

// DailySalesReportPayload is the body of a daily sales report job.
type DailySalesReportPayload struct {
	Summary   repositories.SalesSummary `json:"summary"`
	Recipient string                    `json:"recipient"`
	Timestamp time.Time                 `json:"timestamp"`
}

type notificationJob struct {
	kind    string
	payload interface{}
}

// NotificationService decouples job submission from the transactional cart
// and checkout paths. Dispatch never blocks the caller and never reports an
// error back: a full buffer or a failed enqueue is logged and dropped.
// Delivery downstream is at-least-once, so receivers must tolerate
// duplicates. The admin recipient is injected at construction instead of
// being looked up at dispatch time.
type NotificationService struct {
	queue      JobQueue
	adminEmail string
	jobs       chan notificationJob
	done       chan struct{}
}

// NewNotificationService creates a NotificationService and starts its
// worker goroutine.
func NewNotificationService(queue JobQueue, adminEmail string, buffer int) *NotificationService {
	if buffer <= 0 {
		buffer = 64
	}
	s := &NotificationService{
		queue:      queue,
		adminEmail: adminEmail,
		jobs:       make(chan notificationJob, buffer),
		done:       make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *NotificationService) run() {
	defer close(s.done)
	for job := range s.jobs {
		if err := s.queue.Enqueue(job.kind, job.payload); err != nil {
			log.Printf("Failed to enqueue %s job: %v", job.kind, err)
		}
	}
}

// Close stops accepting jobs and waits for the worker to drain the buffer.
func (s *NotificationService) Close() {
	close(s.jobs)
	<-s.done
}

func (s *NotificationService) submit(kind string, payload interface{}) {
	select {
	case s.jobs <- notificationJob{kind: kind, payload: payload}:
	default:
		log.Printf("Notification buffer full, dropping %s job", kind)
	}
}

// DispatchLowStock signals that the product's stock is at or below the
// low-stock threshold. currentStock is the value observed by the mutation
// that crossed the threshold, not a fresh read.
func (s *NotificationService) DispatchLowStock(product *models.Product, currentStock int) {
	s.submit(JobLowStock, LowStockPayload{
		ProductID:    product.ID,
		ProductName:  product.Name,
		CurrentStock: currentStock,
		Recipient:    s.adminEmail,
		Timestamp:    time.Now(),
	})
}

// DispatchDailySalesReport submits a sales report job for the admin.
func (s *NotificationService) DispatchDailySalesReport(summary *repositories.SalesSummary) {
	s.submit(JobDailySalesReport, DailySalesReportPayload{
		Summary:   *summary,
		Recipient: s.adminEmail,
		Timestamp: time.Now(),
	})
}
