package repository

import "github.com/jcastellanos/pos-ventas-api/internal/domain/entity"

// UsuarioRepository puerto de persistencia para usuarios (directorio de cajeros).
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	// Exists verifica existencia referencial del actor de una venta.
	Exists(id string) (bool, error)
}
