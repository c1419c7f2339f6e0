// Package middleware aporta request_id y log de acceso para correlacionar
// peticiones en los logs.
package middleware

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-Id"

const requestIDKey = "request_id"

var contadorRespaldo atomic.Uint64

// RequestID respeta el id que venga del cliente o genera uno nuevo, lo
// expone en la respuesta y lo deja en el contexto de gin.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = nuevoRequestID()
		}
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Set(requestIDKey, rid)
		c.Next()
	}
}

// GetRequestID recupera el id asignado por el middleware; cadena vacía
// si no corre en esta petición.
func GetRequestID(c *gin.Context) string {
	v, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func nuevoRequestID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	// Si crypto/rand no está disponible, tiempo + contador evita que
	// todos los ids colapsen en ceros.
	binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint64(b[8:], contadorRespaldo.Add(1))
	return hex.EncodeToString(b[:])
}
