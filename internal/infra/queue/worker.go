package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/justtry/crm/internal/entity"
)

// followUpDue is how long after approval the agent should call back.
const followUpDue = 48 * time.Hour

// Worker consumes follow-up events and materializes Task rows. It runs beside
// the API process; losing a follow-up task never affects the lead aggregate.
type Worker struct {
	Channel *amqp.Channel
	Tasks   entity.TaskRepositoryInterface
}

func NewWorker(ch *amqp.Channel, tasks entity.TaskRepositoryInterface) *Worker {
	return &Worker{Channel: ch, Tasks: tasks}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register follow-up consumer")
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload FollowUpPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Error().Err(err).Msg("follow-up message is not valid JSON, dropping")
				// Malformed message: reject without requeue so it dead-letters.
				d.Nack(false, false)
				continue
			}

			if err := w.handle(context.Background(), payload); err != nil {
				log.Error().Err(err).Str("lead_id", payload.LeadID).Msg("follow-up task creation failed")
				d.Nack(false, false)
			} else {
				log.Info().Str("lead_id", payload.LeadID).Msg("follow-up task created")
				d.Ack(false)
			}
		}
	}()

	log.Info().Str("queue", queueName).Msg("follow-up worker running")
	<-forever
}

func (w *Worker) handle(ctx context.Context, payload FollowUpPayload) error {
	assignee := payload.AssignedTo
	if assignee == "" {
		assignee = entity.SystemUserID
	}
	task := entity.NewFollowUpTask(payload.LeadID, payload.LeadName, assignee, time.Now().Add(followUpDue))
	return w.Tasks.Create(ctx, task)
}
