package main

import (
	"github.com/Kumaravel655/loan-backend/config"
	"github.com/Kumaravel655/loan-backend/controllers"
	"github.com/Kumaravel655/loan-backend/middlewares"
	"github.com/Kumaravel655/loan-backend/repository"
	"github.com/Kumaravel655/loan-backend/routes"
	"github.com/Kumaravel655/loan-backend/service"
	"github.com/Kumaravel655/loan-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := config.NewLogger(cfg.LogLevel)
	utils.SetSecret(cfg.JWTSecret)

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	if err := config.Seed(db, cfg, log); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}

	policy, err := service.ParseConflictPolicy(cfg.DueSyncPolicy)
	if err != nil {
		log.WithError(err).Fatal("invalid due sync policy")
	}

	store := repository.NewGormStore(db)
	sync := service.NewDueSynchronizer(store, policy, log)
	loans := service.NewLoanService(store, sync, log)

	var notifier service.Notifier
	if cfg.SMTPEnabled() {
		notifier = utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail, log)
	}
	reminder := service.NewReminder(store, notifier, log)
	scheduler := cron.New()
	if _, err := reminder.Schedule(scheduler, cfg.ReminderCron); err != nil {
		log.WithError(err).Fatal("invalid REMINDER_CRON")
	}
	scheduler.Start()
	defer scheduler.Stop()

	controllers.Init(controllers.Deps{
		Loans:     loans,
		Assigner:  service.NewAssigner(store, cfg.AssignRequireAgentRole, log),
		Reports:   service.NewReportService(db),
		Log:       log,
		UploadDir: cfg.UploadDir,
	})

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(log))
	routes.SetupRoutes(r)

	log.WithFields(logrus.Fields{"port": cfg.Port, "due_sync_policy": policy}).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
