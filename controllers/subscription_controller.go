package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/services"
)

type SubscriptionController struct {
	Subs           *services.SubscriptionService
	VAPIDPublicKey string
}

func NewSubscriptionController(subs *services.SubscriptionService, vapidPublicKey string) *SubscriptionController {
	return &SubscriptionController{Subs: subs, VAPIDPublicKey: vapidPublicKey}
}

// subscribeReq mirrors the browser's PushSubscription.toJSON() shape.
type subscribeReq struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

// POST /push/subscribe
func (sc *SubscriptionController) Subscribe(c *gin.Context) {
	uid := c.GetUint("userID")

	var req subscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := sc.Subs.Register(uid, req.Endpoint, req.Keys.P256dh, req.Keys.Auth, c.GetHeader("User-Agent"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sub.ID})
}

type unsubscribeReq struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DELETE /push/subscribe
func (sc *SubscriptionController) Unsubscribe(c *gin.Context) {
	uid := c.GetUint("userID")

	var req unsubscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.Subs.Remove(uid, req.Endpoint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// GET /push/vapid-public-key
//
// Public by design: the client needs the key before it can subscribe.
func (sc *SubscriptionController) VAPIDKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publicKey": sc.VAPIDPublicKey})
}
