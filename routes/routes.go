package routes

import (
    "net/http"

    "github.com/gin-contrib/cors"
    "github.com/gin-gonic/gin"
    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/zeeshansheikh0001/calorie-tracker-sub001/config"
    "github.com/zeeshansheikh0001/calorie-tracker-sub001/controllers"
    "github.com/zeeshansheikh0001/calorie-tracker-sub001/middlewares"
    "github.com/zeeshansheikh0001/calorie-tracker-sub001/services"
)

// Deps carries the wired services into the router.
type Deps struct {
    Cfg        config.Config
    DB         *gorm.DB
    Dispatcher *services.Dispatcher
    Subs       *services.SubscriptionService
    Reminders  *services.ReminderService
    Hub        *services.RealtimeHub
    Log        *zap.Logger
}

func SetupRouter(d Deps) *gin.Engine {
    r := gin.Default()
    r.Use(cors.Default())

    r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

    trigger := controllers.NewTriggerController(d.Dispatcher, d.Cfg.CronSecret)
    subs := controllers.NewSubscriptionController(d.Subs, d.Cfg.VAPIDPublicKey)
    reminders := controllers.NewReminderController(d.Reminders, d.Dispatcher, d.Log)
    realtime := controllers.NewRealtimeController(d.Hub)

    // Cron trigger, authenticated by shared secret rather than a user token.
    r.GET("/internal/cron/reminders", trigger.RunReminderTick)

    r.GET("/push/vapid-public-key", subs.VAPIDKey)

    auth := middlewares.AuthMiddleware([]byte(d.Cfg.JWTSecret), d.DB)

    push := r.Group("/push")
    push.Use(auth)
    {
        push.POST("/subscribe", subs.Subscribe)
        push.DELETE("/subscribe", subs.Unsubscribe)
    }

    user := r.Group("/user")
    user.Use(auth)
    {
        user.GET("/reminders", reminders.GetReminders)
        user.PUT("/reminders", reminders.UpdateReminders)
    }

    ws := r.Group("/ws")
    ws.Use(auth)
    {
        ws.GET("/reminders", realtime.RemindersWS)
    }

    return r
}
