package controllers

import (
	"github.com/Kumaravel655/loan-backend/service"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators the handlers need besides config.DB.
type Deps struct {
	Loans     *service.LoanService
	Assigner  *service.Assigner
	Reports   service.ReportService
	Log       *logrus.Logger
	UploadDir string
}

var deps Deps

// Init must be called once before the routes are served.
func Init(d Deps) {
	deps = d
}
