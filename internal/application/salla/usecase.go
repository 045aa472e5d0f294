package salla

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/orders"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
	"github.com/jhoicas/Ganancias-api/internal/domain/sallacsv"
	"github.com/jhoicas/Ganancias-api/pkg/logger"
)

// TxRunner ejecuta el alta del lote en una transacción con un repositorio de pedidos atado a ella.
type TxRunner interface {
	RunImport(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// ImportUseCase máquina de estados de la importación de Salla.
type ImportUseCase struct {
	sessions   SessionStore
	reconciler *Reconciler
	orders     *orders.UseCase
	tx         TxRunner
	loc        *time.Location
	now        func() time.Time
	log        *logger.Logger
}

// NewImportUseCase construye el caso de uso. loc es la zona de las fechas del archivo.
func NewImportUseCase(sessions SessionStore, reconciler *Reconciler, orderUC *orders.UseCase, tx TxRunner, loc *time.Location, log *logger.Logger) *ImportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ImportUseCase{
		sessions:   sessions,
		reconciler: reconciler,
		orders:     orderUC,
		tx:         tx,
		loc:        loc,
		now:        time.Now,
		log:        log.Component("salla_import"),
	}
}

// Upload lee el archivo y deja la sesión en preview. sessionID vacío crea una sesión nueva;
// si no, la sesión debe estar en upload (tras Reset).
func (uc *ImportUseCase) Upload(ctx context.Context, sessionID, fileName, content string) (*dto.ImportSessionResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	now := uc.now()
	var s *Session
	if sessionID == "" {
		s = &Session{ID: uuid.New().String(), State: StateUpload, CreatedAt: now, UpdatedAt: now}
	} else {
		var err error
		if s, err = uc.get(ctx, sessionID); err != nil {
			return nil, err
		}
		if s.State != StateUpload {
			return nil, fmt.Errorf("%w: la sesión está en %s", domain.ErrImportState, s.State)
		}
	}

	s.FileName = fileName
	s.Parsed = sallacsv.ParseWithLog(content, sallacsv.Options{Location: uc.loc, Now: uc.now})
	s.Preview, _ = uc.reconciler.Reconcile(ctx, s.Parsed.Rows)
	s.Outcome = nil
	if err := s.moveTo(StatePreview, now); err != nil {
		return nil, err
	}
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}

	sum := s.Parsed.Summary
	uc.log.Info().
		Str("session_id", s.ID).
		Str("file", fileName).
		Int("rows", sum.TotalRows).
		Int("parsed", sum.ParsedRows).
		Int("errors", sum.ErrorRows).
		Int("warnings", sum.Warnings).
		Int("importable", s.Preview.ImportableCount).
		Bool("blocked", s.Preview.Blocked).
		Msg("archivo de Salla leído")
	return toSessionResponse(s), nil
}

// Get devuelve el estado de la sesión.
func (uc *ImportUseCase) Get(ctx context.Context, id string) (*dto.ImportSessionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// Refresh vuelve a conciliar (tras agregar mapeos) sin releer el archivo. Solo en preview.
func (uc *ImportUseCase) Refresh(ctx context.Context, id string) (*dto.ImportSessionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.State != StatePreview {
		return nil, fmt.Errorf("%w: la sesión está en %s", domain.ErrImportState, s.State)
	}
	if err := s.moveTo(StatePreview, uc.now()); err != nil {
		return nil, err
	}
	s.Preview, _ = uc.reconciler.Reconcile(ctx, s.Parsed.Rows)
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	return toSessionResponse(s), nil
}

// Confirm importa las filas válidas. Si hay nombres sin mapear no importa nada (ErrImportBlocked).
// Los totales se recalculan con el orquestador; el total de Salla queda como referencia.
// Los pedidos cuyo número ya existe se omiten.
func (uc *ImportUseCase) Confirm(ctx context.Context, id string) (*dto.ImportSessionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.State != StatePreview {
		return nil, fmt.Errorf("%w: la sesión está en %s", domain.ErrImportState, s.State)
	}

	preview, rows := uc.reconciler.Reconcile(ctx, s.Parsed.Rows)
	s.Preview = preview
	if preview.Blocked {
		if err := uc.sessions.Save(ctx, s); err != nil {
			uc.log.Error().Err(err).Str("session_id", s.ID).Msg("no se pudo guardar la sesión bloqueada")
		}
		return nil, fmt.Errorf("%w: %d productos, %d envíos, %d pagos", domain.ErrImportBlocked,
			len(preview.UnmappedProducts), len(preview.UnmappedShipping), len(preview.UnmappedPayments))
	}

	if err := s.moveTo(StateImporting, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}

	var outcome *Outcome
	err = uc.tx.RunImport(ctx, func(repo repository.OrderRepository) error {
		outcome = &Outcome{Imported: []string{}, Skipped: []string{}, Failed: []string{}}
		saver := uc.orders.WithOrders(repo)
		for _, r := range rows {
			if !r.check.Importable {
				outcome.Failed = append(outcome.Failed, label(r))
				continue
			}
			total := r.row.Total
			_, err := saver.Save(ctx, r.draft, entity.OrderSourceSalla, &total)
			switch {
			case err == nil:
				outcome.Imported = append(outcome.Imported, r.row.OrderNumber)
			case errors.Is(err, domain.ErrDuplicate):
				outcome.Skipped = append(outcome.Skipped, r.row.OrderNumber)
			case orders.IsValidation(err):
				outcome.Failed = append(outcome.Failed, label(r))
			default:
				return fmt.Errorf("pedido %s: %w", r.row.OrderNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Str("session_id", s.ID).Msg("importación revertida")
		s.Error = err.Error()
		s.UpdatedAt = uc.now()
		if sErr := uc.sessions.Save(ctx, s); sErr != nil {
			uc.log.Error().Err(sErr).Str("session_id", s.ID).Msg("no se pudo guardar la sesión revertida")
		}
		return nil, err
	}

	s.Outcome = outcome
	if err := s.moveTo(StateComplete, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	uc.log.Info().
		Str("session_id", s.ID).
		Int("imported", len(outcome.Imported)).
		Int("skipped", len(outcome.Skipped)).
		Int("failed", len(outcome.Failed)).
		Msg("importación de Salla completada")
	return toSessionResponse(s), nil
}

// Reset descarta el archivo y deja la sesión en upload.
func (uc *ImportUseCase) Reset(ctx context.Context, id string) (*dto.ImportSessionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.moveTo(StateUpload, uc.now()); err != nil {
		return nil, err
	}
	s.FileName = ""
	s.Parsed = sallacsv.Result{}
	s.Preview = Preview{}
	s.Outcome = nil
	s.Error = ""
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	return toSessionResponse(s), nil
}

func (uc *ImportUseCase) get(ctx context.Context, id string) (*Session, error) {
	s, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func label(r resolved) string {
	if r.row.OrderNumber != "" {
		return r.row.OrderNumber
	}
	return fmt.Sprintf("línea %d", r.row.Line)
}

func toSessionResponse(s *Session) *dto.ImportSessionResponse {
	out := &dto.ImportSessionResponse{
		ID:       s.ID,
		State:    string(s.State),
		FileName: s.FileName,
		Summary: dto.ImportSummaryDTO{
			TotalRows:  s.Parsed.Summary.TotalRows,
			ParsedRows: s.Parsed.Summary.ParsedRows,
			ErrorRows:  s.Parsed.Summary.ErrorRows,
			Warnings:   s.Parsed.Summary.Warnings,
			Delimiter:  s.Parsed.Summary.Delimiter,
		},
		Log:              make([]dto.ImportLogEntryDTO, 0, len(s.Parsed.Log)),
		Rows:             make([]dto.ImportRowDTO, 0, len(s.Preview.Rows)),
		UnmappedProducts: nonNil(s.Preview.UnmappedProducts),
		UnmappedShipping: nonNil(s.Preview.UnmappedShipping),
		UnmappedPayments: nonNil(s.Preview.UnmappedPayments),
		Blocked:          s.Preview.Blocked,
		ImportableCount:  s.Preview.ImportableCount,
		Error:            s.Error,
		UpdatedAt:        s.UpdatedAt,
	}
	for _, e := range s.Parsed.Log {
		out.Log = append(out.Log, dto.ImportLogEntryDTO{
			Level:       string(e.Level),
			Row:         e.Line,
			Message:     e.Message,
			Raw:         e.Raw,
			ColumnCount: e.ColumnCount,
		})
	}
	for _, r := range s.Preview.Rows {
		out.Rows = append(out.Rows, dto.ImportRowDTO{
			Row:          r.Line,
			OrderNumber:  r.OrderNumber,
			CustomerName: r.CustomerName,
			Total:        r.Total,
			Products:     r.Products,
			Importable:   r.Importable,
			Problems:     r.Problems,
		})
	}
	if s.Outcome != nil {
		out.Result = &dto.ImportResultDTO{Imported: s.Outcome.Imported, Skipped: s.Outcome.Skipped, Failed: s.Outcome.Failed}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
