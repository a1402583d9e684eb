// Package audit despacha registros de auditoría en modo "fire-and-forget":
// los casos de uso nunca dependen del éxito del registro.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
	"github.com/jhoicas/Alojamientos-api/pkg/logger"
)

// Recorder es el contrato que consumen los casos de uso.
type Recorder interface {
	Record(ctx context.Context, table, recordID, operation, actorID string, before, after any)
}

// Dispatcher implementa Recorder enviando cada registro a un sink en segundo plano.
// Los fallos del sink se registran en el log y se descartan.
type Dispatcher struct {
	sink    repository.AuditRepository
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ Recorder = (*Dispatcher)(nil)

// NewDispatcher construye el despachador. sink nil desactiva la auditoría.
func NewDispatcher(sink repository.AuditRepository, log *logger.Logger) *Dispatcher {
	return &Dispatcher{sink: sink, log: log, timeout: 5 * time.Second}
}

// Record serializa before/after y los envía al sink sin bloquear al llamador.
func (d *Dispatcher) Record(ctx context.Context, table, recordID, operation, actorID string, before, after any) {
	if d == nil || d.sink == nil {
		return
	}
	entry := entity.AuditEntry{
		Table:     table,
		RecordID:  recordID,
		Operation: operation,
		Before:    snapshot(before),
		After:     snapshot(after),
		ActorID:   actorID,
		At:        time.Now().UTC(),
	}
	// El registro sobrevive a la cancelación de la petición HTTP.
	bg := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		sendCtx, cancel := context.WithTimeout(bg, d.timeout)
		defer cancel()
		if err := d.sink.Record(sendCtx, entry); err != nil && d.log != nil {
			d.log.Warn().Err(err).
				Str("table", entry.Table).
				Str("record_id", entry.RecordID).
				Str("operation", entry.Operation).
				Msg("auditoría descartada")
		}
	}()
}

// Wait bloquea hasta que todos los registros en vuelo terminen (apagado y tests).
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// Nop descarta todos los registros.
type Nop struct{}

// Record no hace nada.
func (Nop) Record(context.Context, string, string, string, string, any, any) {}
