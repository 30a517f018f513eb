//go:generate go run github.com/golang/mock/mockgen -destination=./mocks/predictor.go -package=mocks . Predictor

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxResponseBytes bounds how much of a model response is read.
const maxResponseBytes = 1 << 20

var (
	ErrPredictRequest = errors.New("error making prediction request")
	ErrPredictStatus  = errors.New("error status from prediction service")
	ErrPredictDecode  = errors.New("error decoding prediction response")
)

// Predictor asks an external model service for a prediction.
type Predictor interface {
	Predict(ctx context.Context, input string) (*structpb.Value, error)
}

type predictRequest struct {
	Input string `json:"input"`
}

// PredictionClient posts inputs to a /predict endpoint.
type PredictionClient struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewPredictionClient(endpoint string, timeout time.Duration, logger *logrus.Logger) *PredictionClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PredictionClient{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// Predict sends {"input": input} and returns the "prediction" field of the
// response. The field may hold any JSON value.
func (c *PredictionClient) Predict(ctx context.Context, input string) (*structpb.Value, error) {
	body, err := json.Marshal(predictRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictRequest, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"endpoint": c.endpoint,
			"status":   resp.StatusCode,
		}).Warn("Prediction service returned an error status")
		return nil, fmt.Errorf("%w: got %d", ErrPredictStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictDecode, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictDecode, err)
	}
	raw, ok := fields["prediction"]
	if !ok {
		return nil, fmt.Errorf("%w: missing prediction field", ErrPredictDecode)
	}

	prediction := &structpb.Value{}
	if err := protojson.Unmarshal(raw, prediction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictDecode, err)
	}
	return prediction, nil
}

var _ Predictor = (*PredictionClient)(nil)
