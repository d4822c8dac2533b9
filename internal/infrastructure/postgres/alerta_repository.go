package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jcastellanos/pos-ventas-api/internal/domain"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
)

var _ repository.AlertaRepository = (*AlertaRepo)(nil)

// AlertaRepo implementación de AlertaRepository sobre PostgreSQL (usable con pool o tx).
type AlertaRepo struct {
	q Querier
}

// NewAlertaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertaRepository(q Querier) *AlertaRepo {
	return &AlertaRepo{q: q}
}

// Create persiste una alerta nueva (no atendida).
func (r *AlertaRepo) Create(alerta *entity.Alerta) error {
	if alerta.ID == "" {
		alerta.ID = uuid.New().String()
	}
	query := `
		INSERT INTO alertas (id, producto_id, tipo, mensaje, atendida, fecha_atendida, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		alerta.ID, alerta.ProductoID, string(alerta.Tipo), alerta.Mensaje,
		alerta.Atendida, alerta.FechaAtendida, alerta.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert alerta: %w", err)
	}
	return nil
}

func scanAlerta(row pgx.Row) (*entity.Alerta, error) {
	var a entity.Alerta
	var tipo string
	err := row.Scan(&a.ID, &a.ProductoID, &tipo, &a.Mensaje, &a.Atendida, &a.FechaAtendida, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Tipo = entity.TipoAlerta(tipo)
	return &a, nil
}

const alertaColumns = `id, producto_id, tipo, mensaje, atendida, fecha_atendida, created_at`

// GetByID obtiene una alerta por ID. Devuelve nil si no existe.
func (r *AlertaRepo) GetByID(id string) (*entity.Alerta, error) {
	query := `SELECT ` + alertaColumns + ` FROM alertas WHERE id = $1`
	a, err := scanAlerta(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alerta: %w", err)
	}
	return a, nil
}

// GetPendiente devuelve la alerta no atendida del producto y tipo, o nil.
// La unicidad de pendientes se aplica aquí, en la capa de aplicación, no con
// constraint de BD.
func (r *AlertaRepo) GetPendiente(productoID string, tipo entity.TipoAlerta) (*entity.Alerta, error) {
	query := `SELECT ` + alertaColumns + ` FROM alertas
		WHERE producto_id = $1 AND tipo = $2 AND atendida = false
		LIMIT 1`
	a, err := scanAlerta(r.q.QueryRow(context.Background(), query, productoID, string(tipo)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alerta pendiente: %w", err)
	}
	return a, nil
}

// MarkAttended transiciona atendida=false -> true. La condición en el WHERE hace
// la transición idempotente-segura: cero filas afectadas = ya atendida o inexistente.
func (r *AlertaRepo) MarkAttended(id string, fecha time.Time) error {
	query := `UPDATE alertas SET atendida = true, fecha_atendida = $2 WHERE id = $1 AND atendida = false`
	tag, err := r.q.Exec(context.Background(), query, id, fecha)
	if err != nil {
		return fmt.Errorf("mark attended: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List devuelve alertas; con soloPendientes filtra las no atendidas.
func (r *AlertaRepo) List(soloPendientes bool) ([]*entity.Alerta, error) {
	query := `SELECT ` + alertaColumns + ` FROM alertas`
	if soloPendientes {
		query += ` WHERE atendida = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list alertas: %w", err)
	}
	defer rows.Close()

	var alertas []*entity.Alerta
	for rows.Next() {
		a, err := scanAlerta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alerta: %w", err)
		}
		alertas = append(alertas, a)
	}
	return alertas, rows.Err()
}

// Stats conteos agregados en una sola pasada.
func (r *AlertaRepo) Stats() (*repository.AlertaStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE atendida = false),
		       COUNT(*) FILTER (WHERE atendida = true),
		       COUNT(*) FILTER (WHERE tipo = 'stock_bajo'),
		       COUNT(*) FILTER (WHERE tipo = 'caducidad')
		FROM alertas`
	var s repository.AlertaStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.Total, &s.Pendientes, &s.Atendidas, &s.StockBajo, &s.Caducidad,
	)
	if err != nil {
		return nil, fmt.Errorf("stats alertas: %w", err)
	}
	return &s, nil
}
