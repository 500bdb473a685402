package items

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorMissingFields = errors.New("all fields required")
	ErrorInvalidID     = errors.New("id must be a valid UUID")
	ErrorInvalidPrice  = errors.New("precio must be a number")
	ErrorDuplicateID   = errors.New("item id already exists")
)

// Largo de un UUID en forma canónica (8-4-4-4-12).
const canonicalUUIDLength = 36

// Límites de precio. Con un exponente enorme ("1e2000000000") normalizar
// el decimal arma el número dígito por dígito, así que se corta antes.
const (
	maxPrecioLength = 64
	maxPrecioDigits = 38
)

var validate = validator.New()

// RepositoryAPI define lo que el service necesita de la persistencia.
type RepositoryAPI interface {
	List(ctx context.Context) ([]Item, error)
	Insert(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id string) error
}

// Service contiene las reglas de validación de items.
// Ninguna escritura llega al repositorio si la validación falla.
type Service struct {
	repository RepositoryAPI
}

// NewService crea un service de items.
func NewService(repository RepositoryAPI) *Service {
	return &Service{repository: repository}
}

// List devuelve la tabla completa, en el orden que la entregue la DB.
func (service *Service) List(ctx context.Context) ([]Item, error) {
	items, err := service.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Create valida presencia, UUID y precio (en ese orden) e inserta.
func (service *Service) Create(ctx context.Context, itemInput CreateItemInput) error {
	itemInput.ID = strings.TrimSpace(itemInput.ID)
	itemInput.Name = strings.TrimSpace(itemInput.Name)
	itemInput.Marca = strings.TrimSpace(itemInput.Marca)
	itemInput.Color = strings.TrimSpace(itemInput.Color)
	itemInput.Precio = Precio(strings.TrimSpace(string(itemInput.Precio)))

	if err := validate.Struct(itemInput); err != nil {
		return ErrorMissingFields
	}

	item, err := buildItem(itemInput.ID, itemInput.Name, itemInput.Marca, itemInput.Color, itemInput.Precio)
	if err != nil {
		return err
	}

	return service.repository.Insert(ctx, item)
}

// Update reemplaza los cuatro campos del item id.
// Si el id no existe la DB no hace nada y tampoco es error.
func (service *Service) Update(ctx context.Context, id string, itemInput UpdateItemInput) error {
	id = strings.TrimSpace(id)
	itemInput.Name = strings.TrimSpace(itemInput.Name)
	itemInput.Marca = strings.TrimSpace(itemInput.Marca)
	itemInput.Color = strings.TrimSpace(itemInput.Color)
	itemInput.Precio = Precio(strings.TrimSpace(string(itemInput.Precio)))

	if id == "" {
		return ErrorMissingFields
	}
	if err := validate.Struct(itemInput); err != nil {
		return ErrorMissingFields
	}

	item, err := buildItem(id, itemInput.Name, itemInput.Marca, itemInput.Color, itemInput.Precio)
	if err != nil {
		return err
	}

	return service.repository.Update(ctx, item)
}

// Delete borra por id. Borrar un id inexistente no es error.
func (service *Service) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return ErrorInvalidID
	}
	return service.repository.Delete(ctx, id)
}

// ValidID acepta solo UUIDs en forma canónica.
// uuid.Parse también acepta "urn:uuid:", llaves y hex sin guiones; esas formas se rechazan.
func ValidID(id string) bool {
	if len(id) != canonicalUUIDLength {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func buildItem(id, name, marca, color string, precio Precio) (Item, error) {
	if !ValidID(id) {
		return Item{}, ErrorInvalidID
	}

	amount, err := parsePrecio(precio)
	if err != nil {
		return Item{}, err
	}

	return Item{
		ID:     strings.ToLower(id),
		Name:   name,
		Marca:  marca,
		Color:  color,
		Precio: Precio(amount.String()),
	}, nil
}

// parsePrecio acepta números de hasta maxPrecioDigits dígitos enteros y la
// misma cantidad de decimales. Todo lo demás es ErrorInvalidPrice.
func parsePrecio(precio Precio) (decimal.Decimal, error) {
	if len(precio) > maxPrecioLength {
		return decimal.Decimal{}, ErrorInvalidPrice
	}

	amount, err := decimal.NewFromString(string(precio))
	if err != nil {
		return decimal.Decimal{}, ErrorInvalidPrice
	}

	exponent := int64(amount.Exponent())
	if exponent < -maxPrecioDigits || int64(amount.NumDigits())+exponent > maxPrecioDigits {
		return decimal.Decimal{}, ErrorInvalidPrice
	}
	return amount, nil
}
