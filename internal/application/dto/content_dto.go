package dto

import "encoding/json"

// ContentListResponse lista paginada de cualquier colección de contenido.
type ContentListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// ContactStatusRequest cambio de estado de un mensaje de contacto.
type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read archived"`
}

// Backup volcado de todas las colecciones: clave → valor persistido (sobre versionado).
type Backup struct {
	Collections map[string]json.RawMessage `json:"collections"`
}
