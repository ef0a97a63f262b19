package session

import "github.com/gin-gonic/gin"

const ginKey = "session_envelope"

// IntoGin stores the request's touched envelope for downstream handlers.
func IntoGin(c *gin.Context, env Envelope) {
	c.Set(ginKey, env)
}

// FromGin pulls the envelope placed by the session middleware.
func FromGin(c *gin.Context) (Envelope, bool) {
	v, ok := c.Get(ginKey)
	if !ok {
		return Envelope{}, false
	}
	env, ok := v.(Envelope)
	return env, ok
}
