package metrics

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	defaultNamespace         = "Songsmith/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// putter is the slice of the CloudWatch API the client uses.
type putter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client wraps CloudWatch client for custom metrics. A nil or disabled
// Client silently drops every metric.
type Client struct {
	client      putter
	enabled     bool
	environment string
	namespace   string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment, namespace string, enabled bool) (*Client, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if !enabled {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{environment: environment, namespace: namespace}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{environment: environment, namespace: namespace}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
		namespace:   namespace,
	}, nil
}

// Enabled reports whether metrics are actually being sent
func (m *Client) Enabled() bool {
	return m.active()
}

func (m *Client) active() bool {
	return m != nil && m.enabled && m.client != nil
}

func (m *Client) envDimension() types.Dimension {
	return types.Dimension{Name: aws.String("Environment"), Value: aws.String(m.environment)}
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.active() {
		return
	}

	go func() {
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}

		dimensions := []types.Dimension{
			{Name: aws.String("Endpoint"), Value: aws.String(endpoint)},
			m.envDimension(),
		}

		m.send(metricName, 1, types.StandardUnitCount, dimensions)
		m.send("APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
	}()
}

// RecordComposition records the size and cost of one generated song
func (m *Client) RecordComposition(noteCount, byteSize, trackCount int, duration time.Duration, truncated bool) {
	if !m.active() {
		return
	}

	go func() {
		dimensions := []types.Dimension{
			{Name: aws.String("Truncated"), Value: aws.String(strconv.FormatBool(truncated))},
			m.envDimension(),
		}

		m.send("Compositions", 1, types.StandardUnitCount, dimensions)
		m.send("CompositionNotes", float64(noteCount), types.StandardUnitCount, dimensions)
		m.send("CompositionTracks", float64(trackCount), types.StandardUnitCount, dimensions)
		m.send("CompositionBytes", float64(byteSize), types.StandardUnitBytes, dimensions)
		m.send("CompositionDuration", float64(duration.Microseconds())/1000, types.StandardUnitMilliseconds, dimensions)
	}()
}

// RecordTokenUsage records interpreter token usage per provider model
func (m *Client) RecordTokenUsage(provider, model string, inputTokens, outputTokens int) {
	if !m.active() {
		return
	}

	go func() {
		dimensions := []types.Dimension{
			{Name: aws.String("Provider"), Value: aws.String(provider)},
			{Name: aws.String("Model"), Value: aws.String(model)},
			m.envDimension(),
		}

		m.send("InterpreterTokens/Input", float64(inputTokens), types.StandardUnitCount, dimensions)
		m.send("InterpreterTokens/Output", float64(outputTokens), types.StandardUnitCount, dimensions)
	}()
}

func (m *Client) send(name string, value float64, unit types.StandardUnit, dimensions []types.Dimension) {
	if err := m.putMetric(name, value, unit, dimensions); err != nil {
		log.Printf("Failed to record %s metric: %v", name, err)
	}
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(metricName string, value float64, unit types.StandardUnit, dimensions []types.Dimension) error {
	if !m.active() {
		return nil
	}

	cwCtx, cancel := context.WithTimeout(context.Background(), cloudwatchTimeoutSeconds*time.Second)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})
	return err
}
