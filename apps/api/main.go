package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shulehub/shule/apps/api/echo"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/classroom"
	"github.com/shulehub/shule/core/subject"
	"github.com/shulehub/shule/core/user"
	"github.com/shulehub/shule/services/email"
	"github.com/shulehub/shule/services/logger"
	"github.com/shulehub/shule/storage/database"
	"github.com/shulehub/shule/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logSvc core.Logger
	if conf.Debug {
		logSvc = logsvc.NewStdLogger(std)
	} else {
		logSvc = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logSvc.Fatal(err.Error(), err)
	}
	defer db.Close()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logSvc, conf)
	}
	tokenSvc := auth.NewTokenService(conf)
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	roomSvc := classroom.NewService(sqlxrepos.NewClassroomRepository(db))
	subSvc := subject.NewService(sqlxrepos.NewSubjectRepository(db))

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Conf:           conf,
			Logger:         logSvc,
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },
			TokenSvc:       tokenSvc,
			UserSvc:        usrSvc,
			ClassroomSvc:   roomSvc,
			SubjectSvc:     subSvc,
		},
	)
	go app.Start()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logSvc.Error("stopping server", err)
	}
}
