package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/metrics"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

// TokenSource supplies the bearer token for each request.
// It returns apperr.ErrAuthenticationRequired when no token is stored.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Ensure Client implements API
var _ API = (*Client)(nil)

// Client implements API as GraphQL over HTTP.
//
// Read queries are retried with exponential backoff on recoverable failures.
// Mutations are sent exactly once per call; the core does not promise
// exactly-once delivery, so it never resends them on its own.
type Client struct {
	endpoint string
	http     *resty.Client
	tokens   TokenSource
	logger   *slog.Logger

	readAttempts    uint64
	initialInterval time.Duration
}

// New constructs a Client posting to endpoint.
func New(endpoint string, tokens TokenSource, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("remote: endpoint cannot be empty")
	}
	if tokens == nil {
		return nil, errors.New("remote: token source cannot be nil")
	}

	c := &Client{
		endpoint: endpoint,
		http: resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
		tokens:          tokens,
		logger:          slog.Default(),
		readAttempts:    3,
		initialInterval: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// --------------------------------------------------------------------
// Houses
// --------------------------------------------------------------------

// Houses lists the user's houses.
func (c *Client) Houses(ctx context.Context) ([]models.House, error) {
	var out struct {
		Houses []models.House `json:"houses"`
	}
	if err := c.query(ctx, OpHouses, queryHouses, nil, &out); err != nil {
		return nil, err
	}
	return out.Houses, nil
}

// CreateHouse creates a house.
func (c *Client) CreateHouse(ctx context.Context, in CreateHouseInput) (*models.House, error) {
	var out struct {
		CreateHouse *models.House `json:"createHouse"`
	}
	if err := c.mutate(ctx, OpCreateHouse, mutationCreateHouse, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	if out.CreateHouse == nil {
		return nil, emptyPayload(OpCreateHouse)
	}
	return out.CreateHouse, nil
}

// --------------------------------------------------------------------
// Households and kitchens
// --------------------------------------------------------------------

// Households lists households with their kitchens.
func (c *Client) Households(ctx context.Context) ([]models.Household, error) {
	var out struct {
		Households []models.Household `json:"households"`
	}
	if err := c.query(ctx, OpHouseholds, queryHouseholds, nil, &out); err != nil {
		return nil, err
	}
	return out.Households, nil
}

// CreateHousehold creates a household.
func (c *Client) CreateHousehold(ctx context.Context, in CreateHouseholdInput) (*models.Household, error) {
	var out struct {
		CreateHousehold *models.Household `json:"createHousehold"`
	}
	if err := c.mutate(ctx, OpCreateHousehold, mutationCreateHousehold, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	if out.CreateHousehold == nil {
		return nil, emptyPayload(OpCreateHousehold)
	}
	return out.CreateHousehold, nil
}

// CreateKitchen creates a kitchen inside a household.
func (c *Client) CreateKitchen(ctx context.Context, in CreateKitchenInput) (*models.Kitchen, error) {
	var out struct {
		CreateKitchen *models.Kitchen `json:"createKitchen"`
	}
	if err := c.mutate(ctx, OpCreateKitchen, mutationCreateKitchen, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	if out.CreateKitchen == nil {
		return nil, emptyPayload(OpCreateKitchen)
	}
	if out.CreateKitchen.HouseholdID == "" {
		out.CreateKitchen.HouseholdID = in.HouseholdID
	}
	return out.CreateKitchen, nil
}

// --------------------------------------------------------------------
// Inventory
// --------------------------------------------------------------------

// InventoryItems lists the items of a kitchen with their batches and aggregates.
func (c *Client) InventoryItems(ctx context.Context, kitchenID string) ([]models.InventoryItem, error) {
	var out struct {
		InventoryItems []models.InventoryItem `json:"inventoryItems"`
	}
	if err := c.query(ctx, OpInventoryItems, queryInventoryItems, map[string]any{"kitchenId": kitchenID}, &out); err != nil {
		return nil, err
	}
	return out.InventoryItems, nil
}

// InventoryItem fetches one item; nil, nil when it does not exist.
func (c *Client) InventoryItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	var out struct {
		InventoryItem *models.InventoryItem `json:"inventoryItem"`
	}
	err := c.query(ctx, OpInventoryItem, queryInventoryItem, map[string]any{"id": id}, &out)
	if apperr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out.InventoryItem, nil
}

// CreateInventoryItem creates an item without quantity.
func (c *Client) CreateInventoryItem(ctx context.Context, in CreateItemInput) (*models.InventoryItem, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	var out struct {
		CreateInventoryItem *models.InventoryItem `json:"createInventoryItem"`
	}
	if err := c.mutate(ctx, OpCreateInventoryItem, mutationCreateInventoryItem, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	if out.CreateInventoryItem == nil {
		return nil, emptyPayload(OpCreateInventoryItem)
	}
	return out.CreateInventoryItem, nil
}

// CreateInventoryBatch records a quantity lot for an item.
func (c *Client) CreateInventoryBatch(ctx context.Context, in CreateBatchInput) (*models.InventoryBatch, error) {
	var out struct {
		CreateInventoryBatch *models.InventoryBatch `json:"createInventoryBatch"`
	}
	if err := c.mutate(ctx, OpCreateInventoryBatch, mutationCreateInventoryBatch, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	if out.CreateInventoryBatch == nil {
		return nil, emptyPayload(OpCreateInventoryBatch)
	}
	return out.CreateInventoryBatch, nil
}

// UpdateInventoryItem changes the supplied fields of an item.
func (c *Client) UpdateInventoryItem(ctx context.Context, id string, in UpdateItemInput) (*models.InventoryItem, error) {
	var out struct {
		UpdateInventoryItem *models.InventoryItem `json:"updateInventoryItem"`
	}
	vars := map[string]any{"id": id, "input": in}
	if err := c.mutate(ctx, OpUpdateInventoryItem, mutationUpdateInventoryItem, vars, &out); err != nil {
		return nil, err
	}
	if out.UpdateInventoryItem == nil {
		return nil, emptyPayload(OpUpdateInventoryItem)
	}
	return out.UpdateInventoryItem, nil
}

// DeleteInventoryItem removes an item and its batches.
func (c *Client) DeleteInventoryItem(ctx context.Context, id string) error {
	var out struct {
		DeleteInventoryItem bool `json:"deleteInventoryItem"`
	}
	if err := c.mutate(ctx, OpDeleteInventoryItem, mutationDeleteInventoryItem, map[string]any{"id": id}, &out); err != nil {
		return err
	}
	if !out.DeleteInventoryItem {
		return &apperr.RemoteError{Op: OpDeleteInventoryItem, Code: apperr.CodeNotFound, Message: "item was not deleted"}
	}
	return nil
}

// --------------------------------------------------------------------
// Interpretation and classification
// --------------------------------------------------------------------

// ProcessVoiceCommand interprets a transcript into an Intent.
func (c *Client) ProcessVoiceCommand(ctx context.Context, transcript string) (*models.Intent, error) {
	var out struct {
		ProcessVoiceCommand *models.Intent `json:"processVoiceCommand"`
	}
	vars := map[string]any{"transcript": transcript}
	if err := c.mutate(ctx, OpProcessVoiceCommand, mutationProcessVoiceCommand, vars, &out); err != nil {
		return nil, err
	}
	if out.ProcessVoiceCommand == nil {
		return nil, emptyPayload(OpProcessVoiceCommand)
	}
	return out.ProcessVoiceCommand, nil
}

// CategorizeProduct asks the AI classifier for a category.
func (c *Client) CategorizeProduct(ctx context.Context, productName string) (*models.ClassificationResult, error) {
	var out struct {
		CategorizeProduct *models.ClassificationResult `json:"categorizeProduct"`
	}
	vars := map[string]any{"productName": productName}
	if err := c.query(ctx, OpCategorizeProduct, queryCategorizeProduct, vars, &out); err != nil {
		return nil, err
	}
	if out.CategorizeProduct == nil {
		return nil, emptyPayload(OpCategorizeProduct)
	}
	return out.CategorizeProduct, nil
}

// --------------------------------------------------------------------
// Transport
// --------------------------------------------------------------------

// query sends a read, retrying recoverable failures.
func (c *Client) query(ctx context.Context, op, doc string, vars map[string]any, out any) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialInterval
	exp.Multiplier = 2
	exp.Reset()

	retries := uint64(0)
	if c.readAttempts > 1 {
		retries = c.readAttempts - 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(exp, retries), ctx)

	return backoff.Retry(func() error {
		err := c.do(ctx, op, doc, vars, out)
		if err != nil && !apperr.IsRecoverable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}

// mutate sends a write once.
func (c *Client) mutate(ctx context.Context, op, doc string, vars map[string]any, out any) error {
	return c.do(ctx, op, doc, vars, out)
}

func (c *Client) do(ctx context.Context, op, doc string, vars map[string]any, out any) (err error) {
	defer func() { metrics.ObserveRemoteRequest(op, err) }()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetBody(Request{Query: doc, OperationName: op, Variables: vars}).
		Post(c.endpoint)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &apperr.NetworkError{Op: op, Err: err}
	}

	var envelope Response
	decodeErr := json.Unmarshal(resp.Body(), &envelope)

	if resp.StatusCode() != http.StatusOK {
		remoteErr := &apperr.RemoteError{Op: op, StatusCode: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
		if decodeErr == nil && len(envelope.Errors) > 0 {
			remoteErr.Code = envelope.Errors[0].Extensions.Code
			remoteErr.Message = envelope.Errors[0].Message
		}
		return remoteErr
	}
	if decodeErr != nil {
		return &apperr.RemoteError{Op: op, Code: apperr.CodeInternal, Message: fmt.Sprintf("malformed response: %v", decodeErr)}
	}
	if len(envelope.Errors) > 0 {
		first := envelope.Errors[0]
		return &apperr.RemoteError{Op: op, Code: first.Extensions.Code, Message: first.Message}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return emptyPayload(op)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &apperr.RemoteError{Op: op, Code: apperr.CodeInternal, Message: fmt.Sprintf("decode %s: %v", op, err)}
	}
	return nil
}

func emptyPayload(op string) error {
	return &apperr.RemoteError{Op: op, Code: apperr.CodeInternal, Message: "empty response payload"}
}
