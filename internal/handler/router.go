package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anilaldemir-collab/certificate-checker/internal/service"
)

func RegisterRoutes(app *fiber.App,
	analysisSvc service.AnalysisService,
	consultSvc service.ConsultService,
	councilSvc service.CouncilService,
	lensSvc service.LensService,
) {
	v1 := app.Group("/api/v1")
	NewAnalyzeHandler(analysisSvc).Register(v1)
	NewConsultHandler(consultSvc).Register(v1)
	NewCouncilHandler(councilSvc).Register(v1)
	NewLensHandler(lensSvc).Register(v1)
}
