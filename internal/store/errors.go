package store

import "errors"

var (
	// ErrVacanteNoEncontrada señala que el id consultado no existe;
	// la capa HTTP lo traduce a 404.
	ErrVacanteNoEncontrada = errors.New("vacante no encontrada")
)
