package items

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Lelo88/inventory-api-golang/internal/httpx"
)

// Mensajes fijos de respuesta. El cliente los muestra tal cual.
const (
	messageCreated      = "item created"
	messageUpdated      = "item updated"
	messageDeleted      = "item deleted"
	messageInvalidJSON  = "invalid JSON body"
	messageListFailed   = "failed to list items"
	messageCreateFailed = "failed to create item"
	messageUpdateFailed = "failed to update item"
	messageDeleteFailed = "failed to delete item"
)

// Límite del body: un item ocupa unos pocos cientos de bytes.
const maxBodyBytes = 1 << 20

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, in CreateItemInput) error
	Update(ctx context.Context, id string, in UpdateItemInput) error
	Delete(ctx context.Context, id string) error
}

// Handler HTTP para items.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
	logger  *zap.Logger
}

// NewHandler crea un handler de items.
func NewHandler(service ServiceAPI, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// List maneja GET /items. Siempre devuelve un array, nunca null.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.List(request.Context())
	if err != nil {
		handler.persistenceError(request, "failed to list items", err)
		httpx.Text(writer, http.StatusInternalServerError, messageListFailed)
		return
	}

	httpx.Encode(writer, http.StatusOK, items)
}

// Create maneja POST /items.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var itemInput CreateItemInput
	if err := decodeBody(writer, request, &itemInput); err != nil {
		httpx.Text(writer, http.StatusBadRequest, messageInvalidJSON)
		return
	}

	err := handler.service.Create(request.Context(), itemInput)
	if err != nil {
		if handler.validationError(writer, err) {
			return
		}
		if errors.Is(err, ErrorDuplicateID) {
			httpx.Text(writer, http.StatusConflict, ErrorDuplicateID.Error())
			return
		}
		handler.persistenceError(request, "failed to create item", err, zap.String("item_id", itemInput.ID))
		httpx.Text(writer, http.StatusInternalServerError, messageCreateFailed)
		return
	}

	httpx.Text(writer, http.StatusCreated, messageCreated)
}

// Update maneja PUT /items/{id}. No distingue "no existe" de "actualizado".
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	var itemInput UpdateItemInput
	if err := decodeBody(writer, request, &itemInput); err != nil {
		httpx.Text(writer, http.StatusBadRequest, messageInvalidJSON)
		return
	}

	err := handler.service.Update(request.Context(), id, itemInput)
	if err != nil {
		if handler.validationError(writer, err) {
			return
		}
		handler.persistenceError(request, "failed to update item", err, zap.String("item_id", id))
		httpx.Text(writer, http.StatusInternalServerError, messageUpdateFailed)
		return
	}

	httpx.Text(writer, http.StatusOK, messageUpdated)
}

// Delete maneja DELETE /items/{id}. Es idempotente.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	err := handler.service.Delete(request.Context(), id)
	if err != nil {
		if handler.validationError(writer, err) {
			return
		}
		handler.persistenceError(request, "failed to delete item", err, zap.String("item_id", id))
		httpx.Text(writer, http.StatusInternalServerError, messageDeleteFailed)
		return
	}

	httpx.Text(writer, http.StatusOK, messageDeleted)
}

// validationError responde 400 si err es un error de validación.
func (handler *Handler) validationError(writer http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, ErrorMissingFields):
		httpx.Text(writer, http.StatusBadRequest, ErrorMissingFields.Error())
	case errors.Is(err, ErrorInvalidID):
		httpx.Text(writer, http.StatusBadRequest, ErrorInvalidID.Error())
	case errors.Is(err, ErrorInvalidPrice):
		httpx.Text(writer, http.StatusBadRequest, ErrorInvalidPrice.Error())
	default:
		return false
	}
	return true
}

// persistenceError deja el detalle en el log; al cliente no le llega.
func (handler *Handler) persistenceError(request *http.Request, message string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.Error(err),
		zap.String("request_id", httpx.RequestIDFrom(request)),
	)
	handler.logger.Error(message, fields...)
}

// decodeBody exige la forma exacta del payload: sin claves extra ni basura al final.
func decodeBody(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
