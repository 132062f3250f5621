package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"recommendation-backend/internal/llm"
)

// Client implements llm.Invoker using the Amazon Bedrock runtime.
type Client struct {
	client *bedrockruntime.Client
}

// New creates a Bedrock-backed model client. An empty endpointURL uses the
// default regional endpoint; a non-empty one targets a custom endpoint
// (localstack or a VPC endpoint).
func New(ctx context.Context, region, endpointURL string) (*Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	clientOpts := []func(*bedrockruntime.Options){}
	if endpointURL != "" {
		clientOpts = append(clientOpts, func(o *bedrockruntime.Options) {
			o.BaseEndpoint = aws.String(endpointURL)
		})
	}

	return &Client{client: bedrockruntime.NewFromConfig(cfg, clientOpts...)}, nil
}

// Invoke sends the request body to the given model and returns the raw
// response envelope.
func (c *Client) Invoke(ctx context.Context, modelID string, body llm.Request) (json.RawMessage, error) {
	if modelID == "" {
		return nil, fmt.Errorf("model id is required")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal model request: %w", err)
	}

	out, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock invoke model=%s: %w", modelID, err)
	}
	return json.RawMessage(out.Body), nil
}

var _ llm.Invoker = (*Client)(nil)
