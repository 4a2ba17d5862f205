package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"

	"gitlab.ozon.dev/ecom/returns/internal/config"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Starting return-events consumer...")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        cfg.KafkaGroupID,
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Println("Closing Kafka reader...")
		if err := r.Close(); err != nil {
			log.Printf("Error closing Kafka reader: %v", err)
		}
	}()

	log.Printf("Consumer connected to topic %q on brokers %v", cfg.KafkaTopic, cfg.KafkaBrokers)

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping consumer.")
			return
		default:
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting message loop.")
					return
				}
				log.Printf("Error reading message: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			printEvent(m)
		}
	}
}

func printEvent(m kafka.Message) {
	var event repository.ReturnEventPayload
	if err := jsoniter.ConfigFastest.Unmarshal(m.Value, &event); err != nil {
		log.Printf("Skipping undecodable message at offset %d: %v", m.Offset, err)
		return
	}

	fmt.Printf("\n--- RETURN EVENT ---\n")
	fmt.Printf("Offset:    %d (partition %d)\n", m.Offset, m.Partition)
	fmt.Printf("Return:    %s (%s)\n", event.ReturnNumber, event.ReturnID)
	fmt.Printf("Order:     %s\n", event.OrderID)
	fmt.Printf("Event:     %s\n", event.EventType)
	if event.PreviousStatus != "" || event.NewStatus != "" {
		fmt.Printf("Status:    %s -> %s\n", event.PreviousStatus, event.NewStatus)
	}
	fmt.Printf("Actor:     %s (%s)\n", event.Actor, event.ActorRole)
	if event.RefundID != "" {
		fmt.Printf("Refund:    %s (%d minor units)\n", event.RefundID, event.RefundAmount)
	}
	if event.ReplacementOrderID != "" {
		fmt.Printf("Replaces:  order %s\n", event.ReplacementOrderID)
	}
	fmt.Printf("At:        %s\n", event.OccurredAt.Format(time.RFC3339))
	fmt.Printf("--- END EVENT ---\n")
}
