package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

// Operaciones del motor (etiquetas de métricas y logs).
const (
	OpCreateLineItem = "create_line_item"
	OpEditLineItem   = "edit_line_item"
	OpDeleteLineItem = "delete_line_item"
	OpCreateEntry    = "create_entry"
	OpEditEntry      = "edit_entry"
	OpDeleteEntry    = "delete_entry"
	OpCreateExit     = "create_exit"
	OpEditExit       = "edit_exit"
	OpDeleteExit     = "delete_exit"
	OpDeletePackage  = "delete_package"
)

// Signo de una entrada (+1, suma stock) y de una salida (-1, resta stock).
const (
	signEntry = 1
	signExit  = -1
)

// Engine mantiene Product.QuantityOnHand consistente con los detalles de bultos que tienen
// entrada (suman) o salida (restan). Cada operación corre en una transacción:
// primero proyecta el efecto neto y valida que ningún saldo quede negativo, después escribe.
type Engine struct {
	tx  TxRunner
	rec Recorder
	now func() time.Time
}

// NewEngine construye el motor. rec puede ser nil.
func NewEngine(tx TxRunner, rec Recorder) *Engine {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Engine{tx: tx, rec: rec, now: time.Now}
}

// LineItemInput datos de un detalle de bulto. En EditLineItem un PackageID vacío conserva el bulto actual.
type LineItemInput struct {
	PackageID string
	ProductID string
	Quantity  int
	Lot       string
	ExpiresAt *time.Time
}

func (in LineItemInput) validate(requirePackage bool) error {
	if requirePackage && in.PackageID == "" {
		return domain.NewValidationError("bulto_id", "es requerido")
	}
	if in.ProductID == "" {
		return domain.NewValidationError("producto_id", "es requerido")
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("cantidad", "debe ser mayor que cero")
	}
	return nil
}

// RecordInput datos de una entrada o salida. En ediciones, los campos vacíos conservan el valor actual.
type RecordInput struct {
	PackageID string
	UserID    string
	Date      time.Time
}

func (in RecordInput) validate() error {
	if in.PackageID == "" {
		return domain.NewValidationError("bulto_id", "es requerido")
	}
	if in.UserID == "" {
		return domain.NewValidationError("usuario_id", "es requerido")
	}
	return nil
}

// session agrupa los componentes atados a la transacción en curso.
type session struct {
	r          TxRepos
	ledger     Ledger
	contents   Contents
	classifier Classifier
}

func newSession(r TxRepos) *session {
	return &session{
		r:          r,
		ledger:     NewLedger(r.Products),
		contents:   NewContents(r.LineItems),
		classifier: NewClassifier(r.Entries, r.Exits),
	}
}

func (s *session) requirePackage(ctx context.Context, id string) (*entity.Package, error) {
	pkg, err := s.r.Packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.NewNotFound("bulto", id)
	}
	return pkg, nil
}

// settle valida la proyección contra los saldos actuales y, si pasa, la aplica.
func (s *session) settle(ctx context.Context, proj *inventory.Projection) error {
	if err := s.ledger.Check(ctx, proj); err != nil {
		return err
	}
	return s.ledger.Commit(ctx, proj)
}

// guardRecord verifica que el bulto pueda recibir una entrada (sign>0) o salida (sign<0).
// skipID excluye el registro que se está editando.
func (s *session) guardRecord(ctx context.Context, packageID string, sign int, skipID string) error {
	entry, err := s.r.Entries.GetByPackage(ctx, packageID)
	if err != nil {
		return err
	}
	exit, err := s.r.Exits.GetByPackage(ctx, packageID)
	if err != nil {
		return err
	}
	if sign == signEntry {
		if entry != nil && entry.ID != skipID {
			return &domain.PackageRuleError{Rule: domain.ErrDuplicateMovement, PackageID: packageID,
				Message: "Este bulto ya tiene una entrada registrada."}
		}
		if exit != nil {
			return &domain.PackageRuleError{Rule: domain.ErrMovementConflict, PackageID: packageID,
				Message: "Este bulto tiene una salida registrada. Elimínela antes de registrar una entrada."}
		}
		return nil
	}
	if exit != nil && exit.ID != skipID {
		return &domain.PackageRuleError{Rule: domain.ErrDuplicateMovement, PackageID: packageID,
			Message: "Este bulto ya tiene una salida registrada."}
	}
	if entry != nil {
		return &domain.PackageRuleError{Rule: domain.ErrMovementConflict, PackageID: packageID,
			Message: "Este bulto tiene una entrada registrada. Elimínela antes de registrar una salida."}
	}
	return nil
}

// packageLines devuelve las líneas del bulto y rechaza bultos vacíos.
func (s *session) packageLines(ctx context.Context, packageID string, sign int) ([]inventory.Line, error) {
	lines, err := s.contents.Lines(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		msg := "No se puede crear una entrada sin detalles."
		if sign == signExit {
			msg = "No se puede crear una salida sin detalles."
		}
		return nil, &domain.PackageRuleError{Rule: domain.ErrEmptyPackage, PackageID: packageID, Message: msg}
	}
	return lines, nil
}

func (e *Engine) run(ctx context.Context, op string, fn func(s *session) error) (err error) {
	defer func() { e.rec.Record(op, err) }()
	err = e.tx.Run(ctx, func(r TxRepos) error {
		return fn(newSession(r))
	})
	return domain.Persistence(op, err)
}

func (e *Engine) reject(op string, err error) error {
	e.rec.Record(op, err)
	return err
}

// ── Detalles de bulto ─────────────────────────────────────────────────────────

// CreateLineItem crea un detalle. Si el bulto ya tiene entrada suma la cantidad al producto;
// si tiene salida la resta (rechazando con stock insuficiente); si no tiene ninguna, no toca stock.
func (e *Engine) CreateLineItem(ctx context.Context, in LineItemInput) (*entity.LineItem, error) {
	if err := in.validate(true); err != nil {
		return nil, e.reject(OpCreateLineItem, err)
	}
	var item *entity.LineItem
	err := e.run(ctx, OpCreateLineItem, func(s *session) error {
		if _, err := s.requirePackage(ctx, in.PackageID); err != nil {
			return err
		}
		if _, err := s.ledger.GetByID(ctx, in.ProductID); err != nil {
			return err
		}
		cls, err := s.classifier.ClassifyPackage(ctx, in.PackageID)
		if err != nil {
			return err
		}
		proj := inventory.NewProjection()
		proj.Apply([]inventory.Line{{ProductID: in.ProductID, Quantity: in.Quantity}}, cls.Effect())
		if err := s.ledger.Check(ctx, proj); err != nil {
			return err
		}

		now := e.now()
		item = &entity.LineItem{
			ID:        uuid.New().String(),
			PackageID: in.PackageID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Lot:       in.Lot,
			ExpiresAt: in.ExpiresAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.r.LineItems.Create(ctx, item); err != nil {
			return err
		}
		return s.ledger.Commit(ctx, proj)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// EditLineItem revierte el efecto del detalle anterior (según la clasificación de su bulto)
// y aplica el del nuevo. La validación de stock se hace sobre el saldo ya revertido.
func (e *Engine) EditLineItem(ctx context.Context, id string, in LineItemInput) (*entity.LineItem, error) {
	if err := in.validate(false); err != nil {
		return nil, e.reject(OpEditLineItem, err)
	}
	var item *entity.LineItem
	err := e.run(ctx, OpEditLineItem, func(s *session) error {
		existing, err := s.r.LineItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.NewNotFound("detalle de bulto", id)
		}
		packageID := in.PackageID
		if packageID == "" {
			packageID = existing.PackageID
		}
		if packageID != existing.PackageID {
			if _, err := s.requirePackage(ctx, packageID); err != nil {
				return err
			}
		}
		if _, err := s.ledger.GetByID(ctx, in.ProductID); err != nil {
			return err
		}

		oldCls, err := s.classifier.ClassifyPackage(ctx, existing.PackageID)
		if err != nil {
			return err
		}
		newCls := oldCls
		if packageID != existing.PackageID {
			if newCls, err = s.classifier.ClassifyPackage(ctx, packageID); err != nil {
				return err
			}
		}

		proj := inventory.NewProjection()
		proj.Revert([]inventory.Line{{ProductID: existing.ProductID, Quantity: existing.Quantity}}, oldCls.Effect())
		proj.Apply([]inventory.Line{{ProductID: in.ProductID, Quantity: in.Quantity}}, newCls.Effect())
		if err := s.ledger.Check(ctx, proj); err != nil {
			return err
		}

		existing.PackageID = packageID
		existing.ProductID = in.ProductID
		existing.Quantity = in.Quantity
		existing.Lot = in.Lot
		existing.ExpiresAt = in.ExpiresAt
		existing.UpdatedAt = e.now()
		if err := s.r.LineItems.Update(ctx, existing); err != nil {
			return err
		}
		item = existing
		return s.ledger.Commit(ctx, proj)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteLineItem revierte el efecto del detalle y lo elimina.
func (e *Engine) DeleteLineItem(ctx context.Context, id string) error {
	return e.run(ctx, OpDeleteLineItem, func(s *session) error {
		existing, err := s.r.LineItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.NewNotFound("detalle de bulto", id)
		}
		cls, err := s.classifier.ClassifyPackage(ctx, existing.PackageID)
		if err != nil {
			return err
		}
		proj := inventory.NewProjection()
		proj.Revert([]inventory.Line{{ProductID: existing.ProductID, Quantity: existing.Quantity}}, cls.Effect())
		if err := s.ledger.Check(ctx, proj); err != nil {
			return err
		}
		if err := s.r.LineItems.Delete(ctx, id); err != nil {
			return err
		}
		return s.ledger.Commit(ctx, proj)
	})
}

// ── Entradas ──────────────────────────────────────────────────────────────────

// CreateEntry registra la entrada del bulto y suma cada detalle al stock de su producto.
func (e *Engine) CreateEntry(ctx context.Context, in RecordInput) (*entity.Entry, error) {
	if err := in.validate(); err != nil {
		return nil, e.reject(OpCreateEntry, err)
	}
	var entry *entity.Entry
	err := e.run(ctx, OpCreateEntry, func(s *session) error {
		if _, err := s.requirePackage(ctx, in.PackageID); err != nil {
			return err
		}
		if err := s.guardRecord(ctx, in.PackageID, signEntry, ""); err != nil {
			return err
		}
		lines, err := s.packageLines(ctx, in.PackageID, signEntry)
		if err != nil {
			return err
		}
		proj := inventory.NewProjection()
		proj.Apply(lines, signEntry)
		if err := s.settle(ctx, proj); err != nil {
			return err
		}

		now := e.now()
		entry = &entity.Entry{
			ID:        uuid.New().String(),
			PackageID: in.PackageID,
			UserID:    in.UserID,
			Date:      dateOr(in.Date, now),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.r.Entries.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// EditEntry actualiza la entrada, permitiendo cambiar de bulto. Simula el saldo final de
// todos los productos afectados (revertir el bulto anterior, aplicar el nuevo) y rechaza
// la operación completa si alguno quedaría negativo.
func (e *Engine) EditEntry(ctx context.Context, id string, in RecordInput) (*entity.Entry, error) {
	var entry *entity.Entry
	err := e.run(ctx, OpEditEntry, func(s *session) error {
		existing, err := s.r.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.NewNotFound("entrada", id)
		}
		proj, packageID, err := e.planEdit(ctx, s, existing.ID, existing.PackageID, in.PackageID, signEntry)
		if err != nil {
			return err
		}
		if err := s.settle(ctx, proj); err != nil {
			return err
		}

		existing.PackageID = packageID
		if in.UserID != "" {
			existing.UserID = in.UserID
		}
		existing.Date = dateOr(in.Date, existing.Date)
		existing.UpdatedAt = e.now()
		if err := s.r.Entries.Update(ctx, existing); err != nil {
			return err
		}
		entry = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry resta del stock cada detalle del bulto y elimina la entrada.
func (e *Engine) DeleteEntry(ctx context.Context, id string) error {
	return e.run(ctx, OpDeleteEntry, func(s *session) error {
		existing, err := s.r.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.NewNotFound("entrada", id)
		}
		lines, err := s.contents.Lines(ctx, existing.PackageID)
		if err != nil {
			return err
		}
		proj := inventory.NewProjection()
		proj.Revert(lines, signEntry)
		if err := s.settle(ctx, proj); err != nil {
			return err
		}
		return s.r.Entries.Delete(ctx, id)
	})
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// CreateExit registra la salida del bulto y resta cada detalle del stock de su producto.
// Si algún producto no tiene stock suficiente no se escribe nada.
func (e *Engine) CreateExit(ctx context.Context, in RecordInput) (*entity.Exit, error) {
	if err := in.validate(); err != nil {
		return nil, e.reject(OpCreateExit, err)
	}
	var exit *entity.Exit
	err := e.run(ctx, OpCreateExit, func(s *session) error {
		if _, err := s.requirePackage(ctx, in.PackageID); err != nil {
			return err
		}
		if err := s.guardRecord(ctx, in.PackageID, signExit, ""); err != nil {
			return err
		}
		lines, err := s.packageLines(ctx, in.PackageID, signExit)
		if err != nil {
			return err
		}
		proj := inventory.NewProjection()
		proj.Apply(lines, signExit)
		if err := s.settle(ctx, proj); err != nil {
			return err
		}

		now := e.now()
		exit = &entity.Exit{
			ID:        uuid.New().String(),
			PackageID: in.PackageID,
			UserID:    in.UserID,
			Date:      dateOr(in.Date, now),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.r.Exits.Create(ctx, exit)
	})
	if err != nil {
		return nil, err
	}
	return exit, nil
}

// EditExit es simétrico a EditEntry: devuelve al stock el bulto anterior y descuenta el nuevo.
func (e *Engine) EditExit(ctx context.Context, id string, in RecordInput) (*entity.Exit, error) {
	var exit *entity.Exit
	err := e.run(ctx, OpEditExit, func(s *session) error {
		existing, err := s.r.Exits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.NewNotFound("salida", id)
		}
		proj, packageID, err := e.planEdit(ctx, s, existing.ID, existing.PackageID, in.PackageID, signExit)
		if err != nil {
			return err
		}
		if err := s.settle(ctx, proj); err != nil {
			return err
		}

		existing.PackageID = packageID
		if in.UserID != "" {
			existing.UserID = in.UserID
		}
		existing.Date = dateOr(in.Date, existing.Date)
		existing.UpdatedAt = e.now()
		if err := s.r.Exits.Update(ctx, existing); err != nil {
			return err
		}
		exit = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exit, nil
}

// DeleteExit devuelve al stock cada detalle del bulto y elimina la salida.
func (e *Engine) DeleteExit(ctx context.Context, id string) error {
	return e.run(ctx, OpDeleteExit, func(s *session) error {
		existing, err := s.r.Exits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.NewNotFound("salida", id)
		}
		lines, err := s.contents.Lines(ctx, existing.PackageID)
		if err != nil {
			return err
		}
		proj := inventory.NewProjection()
		proj.Revert(lines, signExit)
		if err := s.settle(ctx, proj); err != nil {
			return err
		}
		return s.r.Exits.Delete(ctx, id)
	})
}

// planEdit proyecta el cambio de una entrada/salida de oldPackageID a newPackageID
// (vacío = mismo bulto). Devuelve la proyección y el bulto final.
func (e *Engine) planEdit(ctx context.Context, s *session, recordID, oldPackageID, newPackageID string, sign int) (*inventory.Projection, string, error) {
	if newPackageID == "" {
		newPackageID = oldPackageID
	}
	oldLines, err := s.contents.Lines(ctx, oldPackageID)
	if err != nil {
		return nil, "", err
	}
	newLines := oldLines
	if newPackageID != oldPackageID {
		if _, err := s.requirePackage(ctx, newPackageID); err != nil {
			return nil, "", err
		}
		if err := s.guardRecord(ctx, newPackageID, sign, recordID); err != nil {
			return nil, "", err
		}
		if newLines, err = s.packageLines(ctx, newPackageID, sign); err != nil {
			return nil, "", err
		}
	}
	proj := inventory.NewProjection()
	proj.Revert(oldLines, sign)
	proj.Apply(newLines, sign)
	return proj, newPackageID, nil
}

// ── Bultos ────────────────────────────────────────────────────────────────────

// DeletePackage elimina el bulto en cascada: revierte su entrada y/o salida, elimina
// ambas, sus movimientos y sus detalles, y por último el bulto.
func (e *Engine) DeletePackage(ctx context.Context, id string) error {
	return e.run(ctx, OpDeletePackage, func(s *session) error {
		if _, err := s.requirePackage(ctx, id); err != nil {
			return err
		}
		entry, err := s.r.Entries.GetByPackage(ctx, id)
		if err != nil {
			return err
		}
		exit, err := s.r.Exits.GetByPackage(ctx, id)
		if err != nil {
			return err
		}
		lines, err := s.contents.Lines(ctx, id)
		if err != nil {
			return err
		}

		proj := inventory.NewProjection()
		if entry != nil {
			proj.Revert(lines, signEntry)
		}
		if exit != nil {
			proj.Revert(lines, signExit)
		}
		if err := s.settle(ctx, proj); err != nil {
			return err
		}

		if entry != nil {
			if err := s.r.Entries.Delete(ctx, entry.ID); err != nil {
				return err
			}
		}
		if exit != nil {
			if err := s.r.Exits.Delete(ctx, exit.ID); err != nil {
				return err
			}
		}
		if err := s.r.Movements.DeleteByPackage(ctx, id); err != nil {
			return err
		}
		if err := s.r.LineItems.DeleteByPackage(ctx, id); err != nil {
			return err
		}
		return s.r.Packages.Delete(ctx, id)
	})
}

func dateOr(d, fallback time.Time) time.Time {
	if d.IsZero() {
		return fallback
	}
	return d
}
