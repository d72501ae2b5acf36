package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/services"
)

// TriggerController is the surface the external cron infrastructure
// calls once per minute to run a reminder tick.
type TriggerController struct {
	Dispatcher *services.Dispatcher
	Secret     string

	now func() time.Time // wall clock, overridable in tests
}

func NewTriggerController(d *services.Dispatcher, secret string) *TriggerController {
	return &TriggerController{Dispatcher: d, Secret: secret, now: time.Now}
}

// GET /internal/cron/reminders?secret=...
//
// 200 when the tick completed, even with individual delivery failures;
// 401 on a bad or missing secret; 500 only for an infrastructure fault
// (rule store unreachable). No in-process retry: recovery is the next
// scheduled invocation.
func (tc *TriggerController) RunReminderTick(c *gin.Context) {
	if tc.Secret == "" || subtle.ConstantTimeCompare([]byte(c.Query("secret")), []byte(tc.Secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	outcomes, err := tc.Dispatcher.RunTick(c.Request.Context(), tc.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	delivered, failed := services.SummarizeOutcomes(outcomes)
	c.JSON(http.StatusOK, gin.H{
		"message":   "reminder tick completed",
		"delivered": delivered,
		"failed":    failed,
	})
}
