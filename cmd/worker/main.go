package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"rc-building-model/internal/assess"
	"rc-building-model/internal/config"
	"rc-building-model/internal/influxdb"
	"rc-building-model/internal/kafka"
	"rc-building-model/internal/logging"
	"rc-building-model/internal/model"
	"rc-building-model/internal/version"

	"go.uber.org/zap"
)

func main() {
	svc := config.LoadService()

	log, err := logging.New(svc.API.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	modelCfg, err := svc.LoadModel()
	if err != nil {
		log.Fatal("failed to load model config", zap.String("path", svc.ModelConfigPath), zap.Error(err))
	}

	engine, err := assess.New(modelCfg.Params(), assess.Options{
		ChunkSize: modelCfg.Engine.ChunkSize,
		Workers:   modelCfg.Engine.Workers,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("invalid model parameters", zap.Error(err))
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	influxClient, err := influxdb.NewClient(startCtx, svc.InfluxDB)
	startCancel()
	if err != nil {
		log.Fatal("failed to create InfluxDB client", zap.Error(err))
	}
	// closed explicitly once the consumers have stopped

	process := func(ctx context.Context, batchID string, b model.Buildings) error {
		res, err := engine.Run(ctx, b)
		if err != nil {
			return err
		}
		return influxClient.WriteResults(ctx, batchID, res.Rows, time.Now())
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	consumers := make([]*kafka.Consumer, svc.Kafka.ConsumerCount)

	log.Info("starting survey worker",
		zap.String("version", version.String()),
		zap.Int("consumers", svc.Kafka.ConsumerCount),
		zap.Strings("brokers", svc.Kafka.Brokers),
		zap.String("topic", svc.Kafka.Topic),
	)

	for i := 0; i < svc.Kafka.ConsumerCount; i++ {
		consumer, err := kafka.NewConsumer(fmt.Sprintf("consumer-%d", i), svc.Kafka, process, log)
		if err != nil {
			log.Fatal("failed to create consumer", zap.Int("consumer", i), zap.Error(err))
		}
		consumers[i] = consumer

		wg.Add(1)
		go func(c *kafka.Consumer, id int) {
			defer wg.Done()
			if err := c.Consume(ctx); err != nil {
				log.Error("consumer stopped with error", zap.Int("consumer", id), zap.Error(err))
				return
			}
			log.Info("consumer stopped", zap.Int("consumer", id))
		}(consumer, i)
	}

	<-sigChan
	log.Info("received termination signal, shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("all consumers stopped")
	case <-shutdownCtx.Done():
		log.Warn("shutdown timed out, forcing exit")
	}

	for _, c := range consumers {
		if err := c.Close(); err != nil {
			log.Warn("closing consumer", zap.Error(err))
		}
	}
	influxClient.Close()
	log.Info("shutdown complete")
}
