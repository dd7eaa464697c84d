package influxdb

import (
	"context"
	"fmt"
	"time"

	"rc-building-model/internal/assess"
	"rc-building-model/internal/config"
	"rc-building-model/internal/metrics"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Client writes assessment results to InfluxDB v2.
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	config   config.InfluxDBConfig
}

// NewClient initializes the InfluxDB v2 client and verifies connectivity.
func NewClient(ctx context.Context, cfg config.InfluxDBConfig) (*Client, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	if _, err := client.Health(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}

	return &Client{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		config:   cfg,
	}, nil
}

// Points converts a ledger into one point per building. Buildings are tagged with their id
// (or row index) and the batch they came from.
func Points(measurement, batch string, rows []assess.ResultRow, ts time.Time) []*write.Point {
	points := make([]*write.Point, 0, len(rows))
	for _, r := range rows {
		id := r.ID
		if id == "" {
			id = fmt.Sprint(r.Index)
		}
		points = append(points, write.NewPoint(
			measurement,
			map[string]string{
				"building_id": id,
				"batch":       batch,
			},
			map[string]interface{}{
				"fabric_heat_loss_coefficient":      r.FabricHeatLossCoefficient,
				"infiltration_rate":                 r.InfiltrationRate,
				"effective_air_change_rate":         r.EffectiveAirChangeRate,
				"ventilation_heat_loss_coefficient": r.VentilationHeatLossCoefficient,
				"heat_loss_coefficient":             r.HeatLossCoefficient,
				"heat_loss_parameter":               r.HeatLossParameter,
				"annual_heat_demand_kwh":            r.AnnualHeatDemand,
			},
			ts,
		))
	}
	return points
}

// WriteResults writes a batch's ledger in a single blocking request.
func (c *Client) WriteResults(ctx context.Context, batch string, rows []assess.ResultRow, ts time.Time) error {
	if len(rows) == 0 {
		return nil
	}
	points := Points(c.config.Measurement, batch, rows, ts)
	if err := c.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("write %d points: %w", len(points), err)
	}
	metrics.RecordPointsWritten(len(points))
	return nil
}

// Close closes the InfluxDB client.
func (c *Client) Close() {
	c.client.Close()
}
