package utils

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash message categories, matching the keys templates read.
const (
	FlashErrorKey   = "error"
	FlashSuccessKey = "success"
)

// FlashError queues a one-shot error message for the next rendered page.
func FlashError(c *gin.Context, message string) {
	addFlash(c, FlashErrorKey, message)
}

// FlashSuccess queues a one-shot success message for the next rendered page.
func FlashSuccess(c *gin.Context, message string) {
	addFlash(c, FlashSuccessKey, message)
}

func addFlash(c *gin.Context, key, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, key)
	session.Save()
}

// DrainFlashes removes and returns all queued flash messages by category.
func DrainFlashes(c *gin.Context) map[string][]string {
	session := sessions.Default(c)
	messages := make(map[string][]string)

	for _, key := range []string{FlashErrorKey, FlashSuccessKey} {
		for _, raw := range session.Flashes(key) {
			if msg, ok := raw.(string); ok {
				messages[key] = append(messages[key], msg)
			}
		}
	}

	session.Save()
	return messages
}
