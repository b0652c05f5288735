package fake

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
)

type request struct {
	Query         string                     `json:"query"`
	OperationName string                     `json:"operationName"`
	Variables     map[string]json.RawMessage `json:"variables"`
}

// Handler serves the backend as a GraphQL endpoint. Documents are not parsed;
// requests are dispatched on operationName, which the client always sets.
func (b *Backend) Handler(logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, apperr.CodeBadInput, "method not allowed")
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, apperr.CodeBadInput, fmt.Sprintf("invalid request body: %v", err))
			return
		}

		data, err := b.dispatch(r, req)
		if err != nil {
			logger.Debug("Fake operation failed", "operation", req.OperationName, "error", err)
			status, code, msg := classify(err)
			writeError(w, status, code, msg)
			return
		}

		raw, err := json.Marshal(data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, apperr.CodeInternal, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, remote.Response{Data: raw})
	})
}

func (b *Backend) dispatch(r *http.Request, req request) (map[string]any, error) {
	ctx := r.Context()
	vars := req.Variables

	switch req.OperationName {
	case remote.OpHouses:
		v, err := b.Houses(ctx)
		return wrap("houses", v, err)

	case remote.OpCreateHouse:
		var in remote.CreateHouseInput
		if err := decodeVar(vars, "input", &in); err != nil {
			return nil, err
		}
		v, err := b.CreateHouse(ctx, in)
		return wrap("createHouse", v, err)

	case remote.OpHouseholds:
		v, err := b.Households(ctx)
		return wrap("households", v, err)

	case remote.OpCreateHousehold:
		var in remote.CreateHouseholdInput
		if err := decodeVar(vars, "input", &in); err != nil {
			return nil, err
		}
		v, err := b.CreateHousehold(ctx, in)
		return wrap("createHousehold", v, err)

	case remote.OpCreateKitchen:
		var in remote.CreateKitchenInput
		if err := decodeVar(vars, "input", &in); err != nil {
			return nil, err
		}
		v, err := b.CreateKitchen(ctx, in)
		return wrap("createKitchen", v, err)

	case remote.OpInventoryItems:
		var kitchenID string
		if err := decodeVar(vars, "kitchenId", &kitchenID); err != nil {
			return nil, err
		}
		v, err := b.InventoryItems(ctx, kitchenID)
		return wrap("inventoryItems", v, err)

	case remote.OpInventoryItem:
		var id string
		if err := decodeVar(vars, "id", &id); err != nil {
			return nil, err
		}
		v, err := b.InventoryItem(ctx, id)
		return wrap("inventoryItem", v, err)

	case remote.OpCreateInventoryItem:
		var in remote.CreateItemInput
		if err := decodeVar(vars, "input", &in); err != nil {
			return nil, err
		}
		v, err := b.CreateInventoryItem(ctx, in)
		return wrap("createInventoryItem", v, err)

	case remote.OpCreateInventoryBatch:
		var in remote.CreateBatchInput
		if err := decodeVar(vars, "input", &in); err != nil {
			return nil, err
		}
		v, err := b.CreateInventoryBatch(ctx, in)
		return wrap("createInventoryBatch", v, err)

	case remote.OpUpdateInventoryItem:
		var id string
		var in remote.UpdateItemInput
		if err := decodeVar(vars, "id", &id); err != nil {
			return nil, err
		}
		if err := decodeVar(vars, "input", &in); err != nil {
			return nil, err
		}
		v, err := b.UpdateInventoryItem(ctx, id, in)
		return wrap("updateInventoryItem", v, err)

	case remote.OpDeleteInventoryItem:
		var id string
		if err := decodeVar(vars, "id", &id); err != nil {
			return nil, err
		}
		err := b.DeleteInventoryItem(ctx, id)
		return wrap("deleteInventoryItem", err == nil, err)

	case remote.OpProcessVoiceCommand:
		var transcript string
		if err := decodeVar(vars, "transcript", &transcript); err != nil {
			return nil, err
		}
		v, err := b.ProcessVoiceCommand(ctx, transcript)
		return wrap("processVoiceCommand", v, err)

	case remote.OpCategorizeProduct:
		var name string
		if err := decodeVar(vars, "productName", &name); err != nil {
			return nil, err
		}
		v, err := b.CategorizeProduct(ctx, name)
		return wrap("categorizeProduct", v, err)

	default:
		return nil, &apperr.RemoteError{
			Op:      req.OperationName,
			Code:    apperr.CodeBadInput,
			Message: fmt.Sprintf("unknown operation %q", req.OperationName),
		}
	}
}

func wrap(field string, v any, err error) (map[string]any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]any{field: v}, nil
}

func decodeVar(vars map[string]json.RawMessage, name string, out any) error {
	raw, ok := vars[name]
	if !ok {
		return &apperr.RemoteError{Code: apperr.CodeBadInput, Message: fmt.Sprintf("variable %q is required", name)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &apperr.RemoteError{Code: apperr.CodeBadInput, Message: fmt.Sprintf("variable %q: %v", name, err)}
	}
	return nil
}

// classify maps a backend error to an HTTP status and error code. Errors
// carrying an HTTP status keep it; GraphQL errors travel in a 200 response.
func classify(err error) (int, string, string) {
	var remoteErr *apperr.RemoteError
	if errors.As(err, &remoteErr) {
		status := http.StatusOK
		if remoteErr.StatusCode > 0 {
			status = remoteErr.StatusCode
		}
		return status, remoteErr.Code, remoteErr.Message
	}
	var netErr *apperr.NetworkError
	if errors.As(err, &netErr) {
		return http.StatusServiceUnavailable, apperr.CodeInternal, netErr.Error()
	}
	return http.StatusOK, apperr.CodeInternal, err.Error()
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, remote.Response{Errors: []remote.ErrorPayload{{
		Message:    msg,
		Extensions: remote.ErrorExtensions{Code: code},
	}}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
