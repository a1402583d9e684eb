// Package redis implementa el almacén de claves de idempotencia sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "idem:"
	pendingValue = "pending"

	// Vida máxima de una reserva sin respuesta (proceso caído a mitad de la petición).
	defaultPendingTTL = 5 * time.Minute
)

// ErrInFlight indica que otra petición con la misma clave todavía se está procesando.
var ErrInFlight = errors.New("idempotency: petición en curso")

// StoredResponse respuesta guardada para repetirla ante reintentos del cliente.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore reserva claves con SET NX y guarda la respuesta final con TTL.
type IdempotencyStore struct {
	client     *goredis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore construye el almacén. ttl es la vida de una respuesta guardada;
// la reserva en curso vence antes (como mucho defaultPendingTTL).
func NewIdempotencyStore(client *goredis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl, pendingTTL: min(ttl, defaultPendingTTL)}
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// Reserve intenta tomar la clave. Devuelve (nil, true) si la petición es nueva;
// (resp, false) si ya se procesó; ErrInFlight si otra petición la tiene tomada.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (*StoredResponse, bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, pendingValue, s.pendingTTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis: setnx: %w", err)
	}
	if ok {
		return nil, true, nil
	}
	raw, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		// Expiró entre SETNX y GET: se reintenta una vez.
		ok, err = s.client.SetNX(ctx, keyPrefix+key, pendingValue, s.pendingTTL).Result()
		if err != nil {
			return nil, false, fmt.Errorf("redis: setnx: %w", err)
		}
		if ok {
			return nil, true, nil
		}
		return nil, false, ErrInFlight
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get: %w", err)
	}
	if raw == pendingValue {
		return nil, false, ErrInFlight
	}
	var resp StoredResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false, fmt.Errorf("redis: respuesta guardada inválida: %w", err)
	}
	return &resp, false, nil
}

// Complete guarda la respuesta final de una clave reservada.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp StoredResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set: %w", err)
	}
	return nil
}

// Release libera la clave (la petición falló y el cliente puede reintentar).
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis: del: %w", err)
	}
	return nil
}
