package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/repository/cache"
	redisRepo "github.com/georef-api/internal/repository/redis"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a place resolution event",
	Long: `Publish puts a PlaceResolveEvent on stream:place:resolve. With --wait it
then follows stream:place:resolved until the matching result arrives and
prints it as JSON.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().Float64("lat", 0, "latitude of the point")
	publishCmd.Flags().Float64("lon", 0, "longitude of the point")
	publishCmd.Flags().StringSlice("fields", nil, "fields to keep in the result")
	publishCmd.Flags().Bool("flatten", false, "flatten nested entities")
	publishCmd.Flags().Duration("wait", 0, "wait this long for the resolved event (0 = do not wait)")
	_ = publishCmd.MarkFlagRequired("lat")
	_ = publishCmd.MarkFlagRequired("lon")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	fields, _ := cmd.Flags().GetStringSlice("fields")
	flatten, _ := cmd.Flags().GetBool("flatten")
	wait, _ := cmd.Flags().GetDuration("wait")

	log := zap.NewNop()
	client, err := cache.NewRedisStreams(&cfg.Redis, log)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	streams := redisRepo.NewStreamRepository(client, cfg.Worker.StreamReadTimeout, log)
	event := newResolveEvent(lat, lon, fields, flatten)

	// position in the result stream before publishing, so the answer cannot be missed
	from, err := lastEntryID(ctx, client, domain.StreamPlaceResolved)
	if err != nil {
		return err
	}

	if err := streams.PublishToStream(ctx, domain.StreamPlaceResolve, event); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Published request %s to %s\n", event.RequestID, domain.StreamPlaceResolve)

	if wait <= 0 {
		return nil
	}

	resolved, err := awaitResolved(ctx, client, event.RequestID, from, wait)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resolved)
}

func newResolveEvent(lat, lon float64, fields []string, flatten bool) domain.PlaceResolveEvent {
	return domain.PlaceResolveEvent{
		RequestID: uuid.New(),
		Lat:       &lat,
		Lon:       &lon,
		Fields:    fields,
		Flatten:   flatten,
	}
}

func lastEntryID(ctx context.Context, client *redis.Client, stream string) (string, error) {
	entries, err := client.XRevRangeN(ctx, stream, "+", "-", 1).Result()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", stream, err)
	}
	if len(entries) == 0 {
		return "0-0", nil
	}
	return entries[0].ID, nil
}

// awaitResolved follows the result stream from the given id until the event with requestID shows up.
func awaitResolved(ctx context.Context, client *redis.Client, requestID uuid.UUID, from string, timeout time.Duration) (*domain.PlaceResolvedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamPlaceResolved, from},
			Count:   100,
			Block:   timeout,
		}).Result()
		if err != nil {
			if ctx.Err() != nil || err == redis.Nil {
				return nil, fmt.Errorf("no result for request %s within %s", requestID, timeout)
			}
			return nil, fmt.Errorf("read %s: %w", domain.StreamPlaceResolved, err)
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				from = msg.ID
				if resolved, ok := matchResolved(msg.Values, requestID); ok {
					return resolved, nil
				}
			}
		}
	}
}

func matchResolved(values map[string]interface{}, requestID uuid.UUID) (*domain.PlaceResolvedEvent, bool) {
	data, ok := values["data"].(string)
	if !ok {
		return nil, false
	}
	var resolved domain.PlaceResolvedEvent
	if err := json.Unmarshal([]byte(data), &resolved); err != nil {
		return nil, false
	}
	if resolved.RequestID != requestID {
		return nil, false
	}
	return &resolved, true
}
