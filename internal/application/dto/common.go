package dto

// ErrorResponse respuesta de error estructurada para la capa HTTP:
// Code distingue el tipo de fallo y Message lleva el detalle para UI.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
