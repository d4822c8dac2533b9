package alertas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jcastellanos/pos-ventas-api/internal/domain"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/entity"
	"github.com/jcastellanos/pos-ventas-api/internal/domain/repository"
	"github.com/jcastellanos/pos-ventas-api/pkg/logger"
)

// ErrSinCaducidadProxima rechazo explícito de la evaluación de caducidad cuando
// el producto no vence dentro de la ventana configurada.
var ErrSinCaducidadProxima = fmt.Errorf("producto sin caducidad próxima: %w", domain.ErrSufficientStock)

// AlertaUseCase deriva alertas de stock bajo y caducidad del estado actual de
// productos, deduplicando contra las alertas aún pendientes. Corre de forma
// independiente del motor de ventas; solo lee el stock (con la fila bloqueada
// durante la evaluación para no competir con una venta en curso).
type AlertaUseCase struct {
	txRunner      TxRunner
	alertaRepo    repository.AlertaRepository   // lecturas y transiciones de una sola fila
	productoRepo  repository.ProductoRepository // lecturas fuera de tx
	umbralStock   decimal.Decimal
	diasCaducidad int
	log           *logger.Logger
}

// NewAlertaUseCase construye el reconciliador. umbralStock y diasCaducidad son
// los valores por defecto configurados (5 unidades / 30 días).
func NewAlertaUseCase(
	txRunner TxRunner,
	alertaRepo repository.AlertaRepository,
	productoRepo repository.ProductoRepository,
	umbralStock decimal.Decimal,
	diasCaducidad int,
	log *logger.Logger,
) *AlertaUseCase {
	return &AlertaUseCase{
		txRunner:      txRunner,
		alertaRepo:    alertaRepo,
		productoRepo:  productoRepo,
		umbralStock:   umbralStock,
		diasCaducidad: diasCaducidad,
		log:           log.Component("alertas"),
	}
}

// EvaluateStockBajo evalúa el stock del producto contra el umbral (nil = umbral
// configurado). Con stock > umbral retorna ErrSufficientStock sin crear nada;
// si ya existe una alerta stock_bajo pendiente para el producto retorna
// ErrConflict; en caso contrario inserta la alerta y la devuelve.
func (uc *AlertaUseCase) EvaluateStockBajo(ctx context.Context, productoID string, umbral *decimal.Decimal) (*entity.Alerta, error) {
	if productoID == "" {
		return nil, domain.ErrInvalidInput
	}
	limite := uc.umbralStock
	if umbral != nil {
		if umbral.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		limite = *umbral
	}

	var alerta *entity.Alerta
	err := uc.txRunner.RunAlertas(ctx, func(
		productoRepo repository.ProductoRepository,
		alertaRepo repository.AlertaRepository,
	) error {
		producto, err := productoRepo.GetForUpdate(productoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrNotFound
		}
		if producto.Stock.GreaterThan(limite) {
			return domain.ErrSufficientStock
		}
		pendiente, err := alertaRepo.GetPendiente(productoID, entity.TipoAlertaStockBajo)
		if err != nil {
			return err
		}
		if pendiente != nil {
			return domain.ErrConflict
		}
		alerta = &entity.Alerta{
			ID:         uuid.New().String(),
			ProductoID: productoID,
			Tipo:       entity.TipoAlertaStockBajo,
			Mensaje: fmt.Sprintf("stock bajo: %s unidades disponibles (umbral %s) — %s",
				producto.Stock.String(), limite.String(), producto.Nombre),
			CreatedAt: time.Now(),
		}
		return alertaRepo.Create(alerta)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("producto_id", productoID).Str("alerta_id", alerta.ID).Msg("alerta stock_bajo creada")
	return alerta, nil
}

// EvaluateCaducidad evalúa la fecha de caducidad del producto contra la ventana
// configurada. Sin fecha o fuera de ventana retorna ErrSinCaducidadProxima;
// con una alerta caducidad pendiente retorna ErrConflict.
func (uc *AlertaUseCase) EvaluateCaducidad(ctx context.Context, productoID string) (*entity.Alerta, error) {
	if productoID == "" {
		return nil, domain.ErrInvalidInput
	}
	limite := time.Now().AddDate(0, 0, uc.diasCaducidad)

	var alerta *entity.Alerta
	err := uc.txRunner.RunAlertas(ctx, func(
		productoRepo repository.ProductoRepository,
		alertaRepo repository.AlertaRepository,
	) error {
		producto, err := productoRepo.GetForUpdate(productoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrNotFound
		}
		if producto.FechaCaducidad == nil || producto.FechaCaducidad.After(limite) {
			return ErrSinCaducidadProxima
		}
		pendiente, err := alertaRepo.GetPendiente(productoID, entity.TipoAlertaCaducidad)
		if err != nil {
			return err
		}
		if pendiente != nil {
			return domain.ErrConflict
		}
		alerta = &entity.Alerta{
			ID:         uuid.New().String(),
			ProductoID: productoID,
			Tipo:       entity.TipoAlertaCaducidad,
			Mensaje: fmt.Sprintf("caducidad próxima: %s vence el %s",
				producto.Nombre, producto.FechaCaducidad.Format("2006-01-02")),
			CreatedAt: time.Now(),
		}
		return alertaRepo.Create(alerta)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("producto_id", productoID).Str("alerta_id", alerta.ID).Msg("alerta caducidad creada")
	return alerta, nil
}

// MarkAttended transiciona la alerta de pendiente a atendida con timestamp.
// ErrConflict si ya estaba atendida.
func (uc *AlertaUseCase) MarkAttended(ctx context.Context, alertaID string) error {
	if alertaID == "" {
		return domain.ErrInvalidInput
	}
	alerta, err := uc.alertaRepo.GetByID(alertaID)
	if err != nil {
		return err
	}
	if alerta == nil {
		return domain.ErrNotFound
	}
	if alerta.Atendida {
		return domain.ErrConflict
	}
	if err := uc.alertaRepo.MarkAttended(alertaID, time.Now()); err != nil {
		return err
	}
	uc.log.Info().Str("alerta_id", alertaID).Msg("alerta atendida")
	return nil
}

// Reconcile recorre los productos bajo umbral y los próximos a caducar y crea
// las alertas que falten. Los rechazos esperados (duplicado pendiente, stock
// repuesto entre la lectura y la evaluación) se omiten. Devuelve cuántas creó.
func (uc *AlertaUseCase) Reconcile(ctx context.Context) (int, error) {
	creadas := 0

	bajos, err := uc.productoRepo.ListStockBajo(uc.umbralStock)
	if err != nil {
		return 0, err
	}
	for _, p := range bajos {
		if _, err := uc.EvaluateStockBajo(ctx, p.ID, nil); err != nil {
			if esRechazoEsperado(err) {
				continue
			}
			return creadas, err
		}
		creadas++
	}

	porCaducar, err := uc.productoRepo.ListPorCaducar(time.Now().AddDate(0, 0, uc.diasCaducidad))
	if err != nil {
		return creadas, err
	}
	for _, p := range porCaducar {
		if _, err := uc.EvaluateCaducidad(ctx, p.ID); err != nil {
			if esRechazoEsperado(err) {
				continue
			}
			return creadas, err
		}
		creadas++
	}

	uc.log.Info().Int("creadas", creadas).Msg("reconciliación de alertas completada")
	return creadas, nil
}

func esRechazoEsperado(err error) bool {
	return errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrSufficientStock) || errors.Is(err, domain.ErrNotFound)
}

// List devuelve las alertas; con soloPendientes filtra las no atendidas.
func (uc *AlertaUseCase) List(ctx context.Context, soloPendientes bool) ([]*entity.Alerta, error) {
	return uc.alertaRepo.List(soloPendientes)
}

// Stats devuelve los conteos agregados de alertas.
func (uc *AlertaUseCase) Stats(ctx context.Context) (*repository.AlertaStats, error) {
	return uc.alertaRepo.Stats()
}
