package consumer

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vivario/reservation-service/internal/models"
	"github.com/vivario/reservation-service/internal/repository"
)

// ExperienceConsumer syncs catalog changes published by the admin service
// into the local experiences table.
type ExperienceConsumer struct {
	repo repository.ExperienceRepository
}

func NewExperienceConsumer(repo repository.ExperienceRepository) *ExperienceConsumer {
	return &ExperienceConsumer{repo: repo}
}

// Start listens for messages and upserts experiences into the local catalog.
func (ec *ExperienceConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			ec.handleMessage(msg)
		}
		log.Println("[ExperienceConsumer] channel closed, stopping consumer")
	}()
}

func (ec *ExperienceConsumer) handleMessage(msg amqp.Delivery) {
	var experience models.Experience
	if err := json.Unmarshal(msg.Body, &experience); err != nil {
		log.Printf("[ExperienceConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := ec.repo.Upsert(context.Background(), &experience); err != nil {
		log.Printf("[ExperienceConsumer] failed to upsert experience %d: %v", experience.ID, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[ExperienceConsumer] synced experience %d: %s", experience.ID, experience.Name)
	msg.Ack(false)
}
