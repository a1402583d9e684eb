package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	idem "github.com/jhoicas/Alojamientos-api/internal/infrastructure/redis"
	"github.com/jhoicas/Alojamientos-api/pkg/logger"
)

const (
	localLogger       = "logger"
	headerRequestID   = "X-Request-ID"
	headerIdempotency = "Idempotency-Key"
	headerReplayed    = "Idempotent-Replayed"
)

// RequestLogger registra cada petición con zerolog y deja un sublogger con request_id en Locals.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(headerRequestID, reqID)
		sub := log.With().Str("request_id", reqID).Logger()
		c.Locals(localLogger, &sub)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := sub.Info()
		if status >= fiber.StatusInternalServerError {
			ev = sub.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return err
	}
}

func requestLogger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(*zerolog.Logger); ok && l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

// IdempotencyStore reserva claves de idempotencia y guarda la respuesta final.
// Lo implementa *redis.IdempotencyStore.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (*idem.StoredResponse, bool, error)
	Complete(ctx context.Context, key string, resp idem.StoredResponse) error
	Release(ctx context.Context, key string) error
}

// Idempotency hace que un POST con Idempotency-Key se ejecute como máximo una vez por
// unidad: la repetición devuelve la respuesta guardada. Sin store o sin cabecera no hace nada.
// Debe usarse DESPUÉS de AuthMiddleware.
func Idempotency(store IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(headerIdempotency)
		if store == nil || key == "" {
			return c.Next()
		}
		key = GetUnitID(c) + ":" + c.Path() + ":" + key
		ctx := c.UserContext()

		stored, reserved, err := store.Reserve(ctx, key)
		if err != nil {
			if errors.Is(err, idem.ErrInFlight) {
				return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_IN_FLIGHT", Message: "la petición con esta clave sigue en curso"})
			}
			requestLogger(c).Error().Err(err).Msg("idempotency: reserva fallida")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TRANSIENT_IO", Message: "fallo transitorio, intente de nuevo"})
		}
		if !reserved && stored != nil {
			c.Set(headerReplayed, "true")
			if stored.ContentType != "" {
				c.Set(fiber.HeaderContentType, stored.ContentType)
			}
			return c.Status(stored.Status).Send(stored.Body)
		}

		release := func() {
			if err := store.Release(context.WithoutCancel(ctx), key); err != nil {
				requestLogger(c).Warn().Err(err).Msg("idempotency: no se pudo liberar la clave")
			}
		}

		if err := c.Next(); err != nil {
			// Error no mapeado: el resultado de la escritura es desconocido y la reserva
			// se deja vencer en lugar de liberarla.
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
				release()
			}
			return err
		}
		status := c.Response().StatusCode()
		// Un 4xx es un rechazo: no se escribió nada y el cliente puede reintentar.
		if status >= fiber.StatusMultipleChoices && status < fiber.StatusInternalServerError {
			release()
			return nil
		}
		// 2xx se fija para repetirlo. Un 5xx también: la transacción pudo confirmarse
		// (fallo en el commit) y un reintento con la misma clave no debe volver a escribir.
		body := append([]byte(nil), c.Response().Body()...)
		resp := idem.StoredResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        body,
		}
		// Sin respuesta guardada la reserva vence sola (pendingTTL): liberarla ya permitiría
		// repetir una escritura confirmada.
		if err := store.Complete(context.WithoutCancel(ctx), key, resp); err != nil {
			requestLogger(c).Warn().Err(err).Msg("idempotency: no se pudo guardar la respuesta")
		}
		return nil
	}
}
