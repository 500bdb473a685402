package items

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Item representa una fila de la tabla items.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Marca  string `json:"marca"`
	Color  string `json:"color"`
	Precio Precio `json:"precio"`
}

// CreateItemInput es el payload de POST /items. El id lo genera el cliente.
type CreateItemInput struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Marca  string `json:"marca" validate:"required"`
	Color  string `json:"color" validate:"required"`
	Precio Precio `json:"precio" validate:"required"`
}

// UpdateItemInput es el payload de PUT /items/{id}. Reemplaza los cuatro campos juntos.
type UpdateItemInput struct {
	Name   string `json:"name" validate:"required"`
	Marca  string `json:"marca" validate:"required"`
	Color  string `json:"color" validate:"required"`
	Precio Precio `json:"precio" validate:"required"`
}

var errPrecioType = errors.New("precio must be a JSON number or string")

// Precio guarda el texto del número tal como llegó (o como lo devolvió la DB).
// Acepta número JSON o string; null equivale a ausente.
type Precio string

// UnmarshalJSON acepta 49.99, "49.99" y null.
func (precio *Precio) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*precio = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*precio = Precio(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return errPrecioType
	}
	*precio = Precio(number.String())
	return nil
}

// MarshalJSON emite el precio como número JSON.
func (precio Precio) MarshalJSON() ([]byte, error) {
	text := strings.TrimSpace(string(precio))
	if text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(json.Number(text))
}
