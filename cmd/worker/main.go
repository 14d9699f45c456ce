package main

import (
    "encoding/json"
    "log"

    "github.com/joho/godotenv"
    "github.com/streadway/amqp"

    "github.com/unclebandit/donorpulse-backend/internal/config"
    "github.com/unclebandit/donorpulse-backend/internal/queue"
)

func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("No .env file found, relying on OS environment variables")
    }

    cfg, err := config.Load()
    if err != nil {
        log.Fatal("Invalid configuration: ", err)
    }

    // Connect to RabbitMQ
    conn, err := amqp.Dial(cfg.AMQPURL)
    if err != nil {
        log.Fatal("Failed to connect to RabbitMQ:", err)
    }
    defer conn.Close()

    ch, err := conn.Channel()
    if err != nil {
        log.Fatal("Failed to open a channel:", err)
    }
    defer ch.Close()

    q, err := ch.QueueDeclare(
        queue.TopicOutreachSends, // name
        true,                     // durable
        false,                    // delete when unused
        false,                    // exclusive
        false,                    // no-wait
        nil,                      // arguments
    )
    if err != nil {
        log.Fatal("Failed to declare queue:", err)
    }

    msgs, err := ch.Consume(
        q.Name,
        "",
        false, // autoAck = false for reliability
        false,
        false,
        false,
        nil,
    )
    if err != nil {
        log.Fatal("Failed to register consumer:", err)
    }

    forever := make(chan bool)

    go func() {
        for d := range msgs {
            var job queue.OutreachJob
            if err := json.Unmarshal(d.Body, &job); err != nil {
                log.Println("Invalid job:", err)
                d.Ack(false)
                continue
            }

            if err := queue.MockSend(job); err != nil {
                log.Println("Failed to deliver outreach:", err)
                // Retry by republishing with an incremented attempt header;
                // a plain requeue would keep the old count and loop forever.
                retryCount := retryCountFrom(d.Headers)
                if retryCount < maxDeliveryAttempts {
                    if err := republish(ch, q.Name, d.Body, retryCount+1); err != nil {
                        log.Println("Failed to republish outreach:", err)
                    }
                } else {
                    log.Printf("Outreach permanently failed after %d attempts: donor %d (launch %s)", maxDeliveryAttempts, job.DonorID, job.LaunchID)
                }
            } else {
                log.Printf("Delivered %s outreach to %s (launch %s)", job.CampaignType, job.Name, job.LaunchID)
            }

            d.Ack(false)
        }
    }()

    log.Println("Worker running, waiting for outreach sends...")
    <-forever
}

const maxDeliveryAttempts = 3

// retryCountFrom reads the attempt counter off the delivery headers. AMQP
// table integers may come back as int32 or int64 depending on the encoder.
func retryCountFrom(headers amqp.Table) int32 {
    switch v := headers["x-retry-count"].(type) {
    case int32:
        return v
    case int64:
        return int32(v)
    }
    return 0
}

func republish(ch *amqp.Channel, queueName string, body []byte, retryCount int32) error {
    return ch.Publish(
        "",        // exchange
        queueName, // routing key
        false,
        false,
        amqp.Publishing{
            ContentType: "application/json",
            Headers:     amqp.Table{"x-retry-count": retryCount},
            Body:        body,
        },
    )
}
