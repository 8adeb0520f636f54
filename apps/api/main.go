package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/edunexus/apps/api/echo"
	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/attendance"
	"github.com/trezcool/edunexus/core/batch"
	"github.com/trezcool/edunexus/core/institute"
	"github.com/trezcool/edunexus/core/payment"
	"github.com/trezcool/edunexus/core/record"
	"github.com/trezcool/edunexus/core/student"
	"github.com/trezcool/edunexus/core/teacher"
	"github.com/trezcool/edunexus/core/user"
	emailsvc "github.com/trezcool/edunexus/services/email"
	logsvc "github.com/trezcool/edunexus/services/logger"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the record store
	slot, err := record.NewFileSlot(conf.Store.DataDir)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage slot: %v", err), err)
	}
	store := record.NewStore(slot)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var verifier user.Verifier = user.PlainVerifier{}
	if conf.HashPasswords {
		verifier = user.BcryptVerifier{}
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			Store:         store,
			UserSvc:       user.NewService(store, verifier),
			StudentSvc:    student.NewService(store),
			TeacherSvc:    teacher.NewService(store),
			BatchSvc:      batch.NewService(store),
			PaymentSvc:    payment.NewService(store, mailSvc),
			AttendanceSvc: attendance.NewService(store),
			InstituteSvc:  institute.NewService(store),
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
